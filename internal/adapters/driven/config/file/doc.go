// Package file keeps corpusforge settings in a TOML file.
//
// ConfigStore reads <config-dir>/config.toml into flat dot-notation keys
// and writes it back as nested tables on every Set.
package file
