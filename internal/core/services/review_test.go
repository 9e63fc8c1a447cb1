package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

func newReview(t *testing.T) (*ReviewService, *ApplicantStore, *memory.ApplicantSource) {
	t.Helper()
	store, src := loadedStore(t)
	review := NewReviewService(store)
	review.now = func() time.Time { return baseTime }
	return review, store, src
}

func TestReviewService_Query(t *testing.T) {
	review, _, _ := newReview(t)

	page := review.Query(domain.PageRequest{Search: "o", IncludeApproved: true, PageSize: 5})

	// Eve Lim (Rejected) is the only record without an "o" in id, name or status.
	assert.Equal(t, []string{"APP007", "APP004", "APP001", "APP002", "APP003"}, ids(page.Items))
	assert.Equal(t, 6, page.TotalItems)
}

func TestReviewService_Dashboard_ClampsPage(t *testing.T) {
	review, _, _ := newReview(t)
	session := domain.NewSession(5, true).GoToPage(1)

	dash := review.Dashboard(session)
	assert.Equal(t, 1, dash.Session.PageIndex)
	assert.Len(t, dash.Page.Items, 2)

	// Narrowing the filter shrinks the result to one page.
	dash = review.Dashboard(dash.Session.SetSearch("lee"))
	assert.Equal(t, 0, dash.Session.PageIndex)
	assert.Equal(t, []string{"APP001"}, ids(dash.Page.Items))
}

func TestReviewService_Dashboard_Selected(t *testing.T) {
	review, _, _ := newReview(t)

	dash := review.Dashboard(domain.NewSession(5, true).Select("APP005"))

	require.NotNil(t, dash.Selected)
	assert.Equal(t, "Eve Lim", dash.Selected.FullName)
	assert.Equal(t, 7, dash.Counts.Total())
	assert.Equal(t, ":memory:", dash.SourcePath)
	assert.False(t, dash.LastUpdated.IsZero())
}

func TestReviewService_Dashboard_SelectionOutsidePageStillShown(t *testing.T) {
	review, _, _ := newReview(t)
	session := domain.NewSession(5, false).Select("APP002")

	dash := review.Dashboard(session)

	assert.NotContains(t, ids(dash.Page.Items), "APP002")
	require.NotNil(t, dash.Selected)
	assert.Equal(t, "APP002", dash.Selected.ID)
}

func TestReviewService_Decide(t *testing.T) {
	review, store, _ := newReview(t)
	session := domain.NewSession(5, false).Select("APP006").SetComments("looks fine")

	next, err := review.Decide(context.Background(), session, domain.DecisionApprove)
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseConfirming, next.Phase)
	require.NotNil(t, next.Confirmation)
	assert.Equal(t, "APP006", next.Confirmation.ApplicantID)
	assert.Equal(t, domain.DecisionApprove, next.Confirmation.Decision)
	assert.Equal(t, baseTime, next.Confirmation.SavedAt)
	assert.Empty(t, next.SelectedID)
	assert.Empty(t, next.Comments)

	rec, err := store.FindByID("APP006")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, rec.Status)
	assert.Equal(t, "looks fine", rec.Details)
}

func TestReviewService_Decide_NoSelection(t *testing.T) {
	review, _, src := newReview(t)
	session := domain.NewSession(5, false)

	next, err := review.Decide(context.Background(), session, domain.DecisionReject)

	require.ErrorIs(t, err, domain.ErrNoSelection)
	assert.Equal(t, session, next)
	assert.Equal(t, 0, src.Saves())
}

func TestReviewService_Decide_InvalidDecision(t *testing.T) {
	review, _, _ := newReview(t)
	session := domain.NewSession(5, false).Select("APP001")

	_, err := review.Decide(context.Background(), session, domain.Decision(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReviewService_Decide_PersistFailureKeepsComments(t *testing.T) {
	review, _, src := newReview(t)
	src.FailSave(errors.New("read-only file"))
	session := domain.NewSession(5, false).Select("APP001").SetComments("need payslip")

	next, err := review.Decide(context.Background(), session, domain.DecisionReject)

	require.Error(t, err)
	assert.True(t, domain.IsPersistError(err))
	assert.Equal(t, domain.PhaseViewing, next.Phase)
	assert.Equal(t, "APP001", next.SelectedID)
	assert.Equal(t, "need payslip", next.Comments)
	assert.Nil(t, next.Confirmation)
	assert.Equal(t, err, next.Err)

	// Retrying once the file is writable confirms.
	src.FailSave(nil)
	next, err = review.Decide(context.Background(), next, domain.DecisionReject)
	require.NoError(t, err)
	assert.True(t, next.Confirming())
	assert.Nil(t, next.Err)
}

func TestReviewService_Decide_UnknownApplicant(t *testing.T) {
	review, _, _ := newReview(t)
	session := domain.NewSession(5, true).Select("APP404")

	next, err := review.Decide(context.Background(), session, domain.DecisionApprove)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, next.Confirming())
}

func TestReviewService_NilStore(t *testing.T) {
	review := NewReviewService(nil)

	page := review.Query(domain.PageRequest{PageSize: 5})
	assert.Empty(t, page.Items)

	dash := review.Dashboard(domain.NewSession(5, true))
	assert.Equal(t, 0, dash.Counts.Total())

	_, err := review.Decide(context.Background(), domain.NewSession(5, true).Select("x"), domain.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestReviewService_EndToEnd(t *testing.T) {
	set := domain.RecordSet{
		Columns: domain.RequiredColumns,
		Records: []domain.ApplicantRecord{
			applicant("A1", "Approved Person", domain.StatusApproved, 0),
			applicant("P1", "Pending Person", domain.StatusPendingApproval, 20),
			applicant("R1", "Rejected Person", domain.StatusRejected, 10),
		},
	}
	src := memory.NewApplicantSource(set)
	store := NewApplicantStore(src, nil)
	require.NoError(t, store.Load(context.Background()))
	review := NewReviewService(store)

	session := domain.NewSession(5, false)
	dash := review.Dashboard(session)
	assert.Equal(t, []string{"R1", "P1"}, ids(dash.Page.Items))

	session = dash.Session.Select("P1").SetComments("verified")
	session, err := review.Decide(context.Background(), session, domain.DecisionApprove)
	require.NoError(t, err)

	rec, err := store.FindByID("P1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, rec.Status)
	assert.Equal(t, "verified", rec.Details)

	dash = review.Dashboard(session)
	assert.Equal(t, 2, dash.Counts[domain.StatusApproved])
	assert.Equal(t, 0, dash.Counts[domain.StatusPendingApproval])
	assert.True(t, dash.Session.Confirming())
	require.NotNil(t, dash.Confirmation)
	assert.Equal(t, []string{"R1"}, ids(dash.Page.Items))

	persisted := src.Records()
	assert.Equal(t, domain.StatusApproved, persisted.Records[persisted.IndexOf("P1")].Status)

	session = session.Dismiss()
	assert.Equal(t, domain.PhaseNoSelection, session.Phase)
	assert.Nil(t, session.Confirmation)
}
