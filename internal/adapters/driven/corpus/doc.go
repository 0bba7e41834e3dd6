// Package corpus reads exported tweet files and writes merged characters
// back into the pipeline tree as source corpora.
package corpus
