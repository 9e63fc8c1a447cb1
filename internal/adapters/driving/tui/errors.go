package tui

import "errors"

// ErrMissingApplicantService is returned when the applicant service is not provided.
var ErrMissingApplicantService = errors.New("tui: applicant service is required")

// ErrMissingReviewService is returned when the review service is not provided.
var ErrMissingReviewService = errors.New("tui: review service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
