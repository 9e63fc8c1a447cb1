// Package domain defines the core business entities for reviewdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ApplicantRecord: One reviewable case with identity, status and metadata
//   - RecordSet: The ordered collection of records plus the source column order
//   - ActivityFeed: The stage progression of an application
//   - Session: The selection and decision state of a reviewer
//   - Page: A bounded, filtered and sorted slice of records
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
