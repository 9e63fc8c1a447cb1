// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The filter, sort and paginate pipeline is a set of pure functions.
// ApplicantStore.Load and ApplicantStore.ApplyDecision are the only
// operations that reach the backing source.
package services
