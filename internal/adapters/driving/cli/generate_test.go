package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

func TestGenerateCmd_WritesRows(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	path := filepath.Join(t.TempDir(), "demo.csv")

	out, err := execute(t, "generate", path, "--rows", "4", "--seed", "9")

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 applicants to "+path+" (seed 9)")
	assert.Equal(t, []string{path}, env.opened)

	saved := env.source.Records()
	require.Equal(t, 4, saved.Len())
	assert.Equal(t, "APP001", saved.Records[0].ID)
	assert.Equal(t, domain.DefaultColumns, saved.Columns)
}

func TestGenerateCmd_SameSeedSameRecords(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	dir := t.TempDir()

	_, err := execute(t, "generate", filepath.Join(dir, "a.csv"), "--rows", "3", "--seed", "42")
	require.NoError(t, err)
	first := env.source.Records()

	_, err = execute(t, "generate", filepath.Join(dir, "b.csv"), "--rows", "3", "--seed", "42")
	require.NoError(t, err)

	assert.Equal(t, first, env.source.Records())
}

func TestGenerateCmd_DefaultsToSourceFlag(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	path := filepath.Join(t.TempDir(), "applicants.db")

	_, err := execute(t, "--source", path, "generate", "--rows", "2")

	require.NoError(t, err)
	assert.Equal(t, []string{path}, env.opened)
}

func TestGenerateCmd_RefusesExistingFile(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	path := filepath.Join(t.TempDir(), "demo.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o600))

	_, err := execute(t, "generate", path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.opened)

	_, err = execute(t, "generate", path, "--force", "--rows", "1")
	require.NoError(t, err)
	records := env.source.Records()
	assert.Equal(t, 1, records.Len())
}

func TestGenerateCmd_InvalidRows(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "x.csv"), "--rows", "0")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateCmd_NoOpener(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	sourceOpener = nil

	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "x.csv"))

	assert.ErrorIs(t, err, ErrNoBackend)
}
