package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingApplicantService,
		ErrMissingReviewService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingApplicantService.Error(), "applicant service")
	assert.Contains(t, ErrMissingReviewService.Error(), "review service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
