// Package domain defines the core entities for corpusforge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceRecord / TargetRecord: one line of a corpus before and after conversion
//   - ConversionResult / BatchReport: per-file and per-run conversion accounting
//   - Tweet: a stored record of a source account
//   - MergeOptions / MergeConfig / MergeDecision: the merge workflow values
//   - Prompt / Stepper: the interaction model shared by every prompt driver
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
