// Package migrations holds the numbered schema migrations of the corpus
// store. Files are named NNN_name.up.sql and NNN_name.down.sql.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
