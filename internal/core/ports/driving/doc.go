// Package driving defines the interfaces that infrastructure calls IN to core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI, HTTP API and MCP server depend on these interfaces; the
// services package implements them.
//
// # Interfaces
//
//   - ApplicantService: The applicant store contract
//   - ReviewService: The visible dashboard state and the decision action
//   - SettingsService: Application settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
