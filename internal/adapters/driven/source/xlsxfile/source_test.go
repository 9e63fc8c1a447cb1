package xlsxfile

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/services"
)

// writeWorkbook creates a workbook whose only sheet is called sheet.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != DefaultSheet {
		require.NoError(t, f.SetSheetName(DefaultSheet, sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "applicant_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func sampleRows() [][]any {
	return [][]any{
		{"Applicant ID", "Application Date", "Full Name", "Status", "Rating Score", "Details", "IC VERIFIED"},
		{"APP001", "2024-03-01 09:00", "Ann Lee", "Pending Approval", 82, "", 1},
		{"APP002", "2024-03-02 10:30", "Bob Tan", "In Progress", 47, "called twice", 0},
	}
}

func TestSource_Load(t *testing.T) {
	path := writeWorkbook(t, "Applicants", sampleRows())
	src := New(path)

	set, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, set.Records, 2)
	assert.Equal(t, "Applicants", src.Sheet())
	assert.Equal(t, 82, set.Records[0].RatingScore)
	assert.Equal(t, domain.StatusInProgress, set.Records[1].Status)
	matched, ok := set.Records[1].Verification(domain.ColumnICVerified)
	assert.True(t, ok)
	assert.False(t, matched)
	assert.NotEmpty(t, src.Fingerprint())
}

func TestSource_Load_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := New(path).Load(context.Background())

	assert.Error(t, err)
}

func TestSource_Load_MissingColumns(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, [][]any{{"Applicant ID", "Status"}, {"APP001", "Approved"}})

	_, err := New(path).Load(context.Background())

	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, []string{domain.ColumnApplicationDate, domain.ColumnFullName, domain.ColumnDetails}, le.Missing)
}

func TestSource_SaveRoundTrip(t *testing.T) {
	path := writeWorkbook(t, "Applicants", sampleRows())
	src := New(path)
	set, err := src.Load(context.Background())
	require.NoError(t, err)

	set.Records[0].Status = domain.StatusApproved
	set.Records[0].Details = "verified"
	require.NoError(t, src.Save(context.Background(), set))

	again := New(path)
	reloaded, err := again.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Applicants", again.Sheet(), "sheet name is kept")
	assert.Equal(t, set.Columns, reloaded.Columns)
	assert.Equal(t, domain.StatusApproved, reloaded.Records[0].Status)
	assert.Equal(t, "verified", reloaded.Records[0].Details)
	assert.Equal(t, set.Records[1], reloaded.Records[1])
}

func TestSource_Save_NewWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.xlsx")
	src := New(path)
	set := domain.RecordSet{
		Records: []domain.ApplicantRecord{{ID: "APP001", FullName: "Ann", Status: domain.StatusAlerts}},
	}

	require.NoError(t, src.Save(context.Background(), set))

	reloaded, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultColumns, reloaded.Columns)
	require.Len(t, reloaded.Records, 1)
	assert.Equal(t, "APP001", reloaded.Records[0].ID)
}

func TestSource_Save_FailureIsPersistError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "a.xlsx")

	err := New(path).Save(context.Background(), domain.RecordSet{})

	assert.True(t, domain.IsPersistError(err))
}

func TestSource_Decision_KeepsCellTypesAndOtherRows(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, [][]any{
		{"Applicant ID", "Application Date", "Full Name", "Status", "Rating Score", "Details", "PHOTO MATCHED"},
		{"APP001", "2024-03-01 09:00", "Ann Lee", "pending_approval", 82, "", 1},
		{"APP002", "2024-03-02 10:30", "Bob Tan", "In Progress", 47, "called twice", 0},
	})
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	_, err = f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "keep me"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	store := services.NewApplicantStore(New(path), nil)
	require.NoError(t, store.Load(context.Background()))
	_, err = store.ApplyDecision(context.Background(), "APP001", domain.DecisionReject, "blurred photo")
	require.NoError(t, err)

	f, err = excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"E2", "G2", "E3", "G3"} {
		typ, err := f.GetCellType(DefaultSheet, cell)
		require.NoError(t, err)
		assert.NotContains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ, cell)
	}

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"APP001", "2024-03-01 09:00", "Ann Lee", "Rejected", "82", "blurred photo", "1"}, rows[1])
	assert.Equal(t, []string{"APP002", "2024-03-02 10:30", "Bob Tan", "In Progress", "47", "called twice", "0"}, rows[2])

	note, err := f.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "keep me", note)
}

func TestSource_Save_TwiceAroundBlankRow(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, [][]any{
		{"Applicant ID", "Application Date", "Full Name", "Status", "Details"},
		{"APP001", "2024-03-01", "Ann", "Alerts", ""},
		{},
		{"APP002", "2024-03-02", "Bob", "Alerts", ""},
	})
	src := New(path)
	set, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Records, 2)

	set.Records[1].Status = domain.StatusApproved
	require.NoError(t, src.Save(context.Background(), set))
	set.Records[1].Details = "second pass"
	require.NoError(t, src.Save(context.Background(), set))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Empty(t, rows[2])
	assert.Equal(t, []string{"APP002", "2024-03-02", "Bob", "Approved", "second pass"}, rows[3])
}

func TestSource_Save_NewWorkbookStoresNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.xlsx")
	set := domain.RecordSet{
		Records: []domain.ApplicantRecord{{ID: "APP001", FullName: "Ann", Status: domain.StatusAlerts, RatingScore: 7}},
	}

	require.NoError(t, New(path).Save(context.Background(), set))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	col := slices.Index(domain.DefaultColumns, domain.ColumnRatingScore)
	require.GreaterOrEqual(t, col, 0)
	cell, err := excelize.CoordinatesToCellName(col+1, 2)
	require.NoError(t, err)
	typ, err := f.GetCellType(DefaultSheet, cell)
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
}
