package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrNoSelection", ErrNoSelection},
		{"ErrUnknownStatus", ErrUnknownStatus},
		{"ErrUnsupportedSource", ErrUnsupportedSource},
		{"ErrNotLoaded", ErrNotLoaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct ensures no two sentinel errors match each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrNotImplemented, ErrNoSelection,
		ErrUnknownStatus, ErrUnsupportedSource, ErrNotLoaded,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v matched %v", a, b)
			}
		}
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	wrapped := fmt.Errorf("applicant APP001: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestLoadError(t *testing.T) {
	err := &LoadError{Path: "data.xlsx", Missing: []string{ColumnStatus, ColumnDetails}}

	assert.Equal(t, "load data.xlsx: missing required columns: Status, Details", err.Error())

	var target *LoadError
	assert.True(t, errors.As(fmt.Errorf("opening: %w", err), &target))
	assert.Equal(t, []string{ColumnStatus, ColumnDetails}, target.Missing)
}

func TestPersistError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &PersistError{Path: "data.csv", Err: cause}

	assert.Equal(t, "persist data.csv: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPersistError(err))
	assert.True(t, IsPersistError(fmt.Errorf("deciding: %w", err)))
	assert.False(t, IsPersistError(cause))
	assert.False(t, IsPersistError(nil))
}
