package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the review dashboard", tuiCmd.Short)
}

func TestTUICmd_NoBackend(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	backendFactory = nil

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, ErrNoBackend)
}
