package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Path: "+domain.DefaultSourcePath)
	assert.Contains(t, out, "Page size: 5")
	assert.Contains(t, out, "Include approved: yes")
	assert.Contains(t, out, "Address: :8080")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_BareShows(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsCmd_Set(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "set", "review.page_size", "12")

	require.NoError(t, err)
	assert.Contains(t, out, "Set review.page_size to 12")
	assert.Equal(t, 12, env.config.GetInt("review.page_size"))

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Page size: 12")
}

func TestSettingsCmd_SetRejectsBadValues(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "settings", "set", "review.page_size", "zero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	settingsService = nil

	_, err := execute(t, "settings", "show")
	assert.ErrorIs(t, err, ErrNoSettingsService)

	_, err = execute(t, "settings", "set", "server.addr", ":9000")
	assert.ErrorIs(t, err, ErrNoSettingsService)
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
