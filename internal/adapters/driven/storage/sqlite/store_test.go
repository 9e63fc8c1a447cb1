package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func sampleSet() domain.RecordSet {
	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	return domain.RecordSet{
		Columns: []string{
			domain.ColumnID, domain.ColumnApplicationDate, domain.ColumnFullName,
			domain.ColumnStatus, domain.ColumnRatingScore, domain.ColumnDetails,
			domain.ColumnRiskLevel, domain.ColumnActivityFeed,
		},
		Records: []domain.ApplicantRecord{
			{
				ID:                 "APP002",
				ApplicationDate:    date,
				ApplicationDateRaw: "2024-03-01 09:00",
				FullName:           "Bob Tan",
				Status:             domain.StatusAlerts,
				RatingScore:        64,
				Details:            "",
				Activity:           domain.NewActivityFeed(date, 3),
				Attributes:         map[string]string{domain.ColumnRiskLevel: "High"},
			},
			{
				ID:                 "APP001",
				ApplicationDate:    date.Add(time.Hour),
				ApplicationDateRaw: "2024-03-01 10:00",
				FullName:           "Ann Lee",
				Status:             domain.StatusPendingApproval,
				RatingScore:        80,
				Details:            "needs payslip",
				Activity:           domain.NewActivityFeed(date, 1),
				Attributes:         map[string]string{domain.ColumnRiskLevel: "Low"},
			},
		},
	}
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	// Running again is a no-op.
	require.NoError(t, store.migrate(migrations.FS))
}

func TestNewStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "applicants.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Save(context.Background(), sampleSet()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	set, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, set.Records, 2)
}

func TestNewStore_BadPath(t *testing.T) {
	_, err := NewStore("/dev/null/nope/applicants.db")
	assert.Error(t, err)
}

func TestStore_Load_Empty(t *testing.T) {
	store := setupTestStore(t)

	set, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, set.Records)
	assert.Equal(t, domain.DefaultColumns, set.Columns)
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	want := sampleSet()

	require.NoError(t, store.Save(context.Background(), want))
	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want.Columns, got.Columns)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "APP002", got.Records[0].ID, "stored order is kept")
	assert.Equal(t, want.Records[0].ApplicationDate, got.Records[0].ApplicationDate)
	assert.Equal(t, 64, got.Records[0].RatingScore)
	assert.Equal(t, "High", got.Records[0].Attribute(domain.ColumnRiskLevel))
	assert.Equal(t, want.Records[0].Activity, got.Records[0].Activity)
	assert.Equal(t, "needs payslip", got.Records[1].Details)
}

func TestStore_SaveReplacesEverything(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleSet()))

	smaller := domain.RecordSet{
		Columns: domain.RequiredColumns,
		Records: []domain.ApplicantRecord{{ID: "APP009", FullName: "Zed", Status: domain.StatusRejected}},
	}
	require.NoError(t, store.Save(context.Background(), smaller))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RequiredColumns, got.Columns)
	require.Len(t, got.Records, 1)
	assert.Equal(t, domain.StatusRejected, got.Records[0].Status)
}

func TestStore_Save_FailureRollsBack(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleSet()))

	dup := sampleSet()
	dup.Records[1].ID = dup.Records[0].ID
	err := store.Save(context.Background(), dup)

	require.Error(t, err)
	assert.True(t, domain.IsPersistError(err))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"APP002", "APP001"}, []string{got.Records[0].ID, got.Records[1].ID})
}

func TestStore_Save_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, sampleSet())

	assert.True(t, domain.IsPersistError(err))
}
