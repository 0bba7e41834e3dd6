// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - Discovery, Converter, ConversionService: corpus discovery and conversion
//   - MergeConfigurator, ReviewGate: the prompt steppers of a merge
//   - MergeService: the merge workflow state machine
//   - ImportService, ValidationService, SettingsService: supporting operations
//
// Services are pure Go with no CGO or external dependencies.
package services
