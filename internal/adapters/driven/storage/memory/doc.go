// Package memory provides in-memory implementations of the driven ports.
// They are used by tests and by the demo mode of the CLI.
package memory
