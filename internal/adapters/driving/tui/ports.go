// Package tui provides an interactive terminal user interface for reviewdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Applicants owns the loaded records and reloads them on request.
	Applicants driving.ApplicantService

	// Review computes the dashboard and applies decisions.
	Review driving.ReviewService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Watcher reports changes to the backing source made by other programs.
	// Optional.
	Watcher driven.SourceWatcher
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(applicants driving.ApplicantService, review driving.ReviewService) *Ports {
	return &Ports{
		Applicants: applicants,
		Review:     review,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Applicants == nil {
		return ErrMissingApplicantService
	}
	if p.Review == nil {
		return ErrMissingReviewService
	}
	return nil
}
