package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

func TestShowCmd_Text(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "show", "APP003")

	require.NoError(t, err)
	assert.Contains(t, out, "APP003  Applicant C")
	assert.Contains(t, out, "Status:  Alerts")
	assert.Contains(t, out, "Rating:  3")
	assert.Regexp(t, `Nationality\s+Malaysian`, out)
	assert.Regexp(t, `Occupation\s+N/A`, out)
	assert.Regexp(t, `Referral\s+walk-in`, out)
	assert.Regexp(t, `PHOTO MATCHED\s+matched`, out)
	assert.Regexp(t, `IC VERIFIED\s+N/A`, out)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "not_reached")
}

func TestShowCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "show", "APP999")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowCmd_RequiresID(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "show")

	assert.Error(t, err)
}

func TestShowCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "show", "APP001", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "APP001", got["id"])
}

func TestAttributeColumns_ExtrasLast(t *testing.T) {
	r := &domain.ApplicantRecord{Attributes: map[string]string{"Zeta": "1", "Alpha": "2"}}

	columns := attributeColumns(r)

	assert.Equal(t, domain.ColumnAdditionalRemarks, columns[0])
	assert.Equal(t, []string{"Alpha", "Zeta"}, columns[len(columns)-2:])
	assert.NotContains(t, columns, domain.ColumnID)
	assert.NotContains(t, columns, domain.ColumnActivityFeed)
}
