package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCmd_Text(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "summary")

	require.NoError(t, err)
	assert.Regexp(t, `Pending Approval\s+2`, out)
	assert.Regexp(t, `Approved\s+2`, out)
	assert.Regexp(t, `Alerts\s+1`, out)
	assert.Regexp(t, `In Progress\s+1`, out)
	assert.Regexp(t, `Rejected\s+1`, out)
	assert.Regexp(t, `Total\s+7`, out)
	assert.Contains(t, out, "Source:       :memory:")
}

func TestSummaryCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "summary", "--json")
	require.NoError(t, err)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, ":memory:", got.Source)
	assert.NotEmpty(t, got.LastUpdated)

	sum := 0
	for _, n := range got.Counts {
		sum += n
	}
	assert.Equal(t, 7, sum)
	assert.Len(t, got.Counts, 5)
}
