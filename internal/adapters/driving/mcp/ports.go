package mcp

import (
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Applicants owns the loaded record set.
	Applicants driving.ApplicantService

	// Review runs the list pipeline and applies decisions.
	Review driving.ReviewService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Applicants == nil {
		return ErrMissingApplicantService
	}
	if p.Review == nil {
		return ErrMissingReviewService
	}
	return nil
}
