// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ConfigStore: Application configuration (TOML)
//   - TweetStore: Per-account records and merged characters (SQLite)
//   - TweetReader: Parses exported tweet files for import
//   - CorpusExporter: Writes a committed merge back into the pipeline tree
//   - TrainingValidator: Checks converted files against the provider schema
//   - Interactor: Asks the operator questions (terminal UI or plain lines)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
