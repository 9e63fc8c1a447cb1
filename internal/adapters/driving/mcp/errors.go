// Package mcp provides an MCP (Model Context Protocol) server adapter for reviewdesk.
// It lets AI assistants read the applicant dashboard and record review decisions.
package mcp

import "errors"

var (
	// ErrMissingApplicantService is returned when the applicant service is not provided.
	ErrMissingApplicantService = errors.New("mcp: applicant service is required")

	// ErrMissingReviewService is returned when the review service is not provided.
	ErrMissingReviewService = errors.New("mcp: review service is required")
)
