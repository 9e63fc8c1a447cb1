package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// ReviewService combines the applicant store, the list pipeline and the
// session state machine.
type ReviewService struct {
	applicants driving.ApplicantService
	now        func() time.Time
}

// NewReviewService creates a review service over applicants.
func NewReviewService(applicants driving.ApplicantService) *ReviewService {
	return &ReviewService{
		applicants: applicants,
		now:        time.Now,
	}
}

// Query runs the filter, sort and paginate pipeline over the current records.
func (s *ReviewService) Query(req domain.PageRequest) domain.Page {
	if s.applicants == nil {
		return Paginate(nil, 0, req.PageSize)
	}
	return BuildPage(s.applicants.All(), req)
}

// Dashboard computes the visible state for session. The returned session
// has its page index clamped to the filtered result.
func (s *ReviewService) Dashboard(session domain.Session) driving.Dashboard {
	page := s.Query(session.PageRequest())
	session = session.ClampPage(page.TotalPages)

	dash := driving.Dashboard{
		Page:         page,
		Session:      session,
		Confirmation: session.Confirmation,
	}
	if s.applicants == nil {
		dash.Counts = domain.CountStatuses(nil)
		return dash
	}

	dash.Counts = s.applicants.StatusCounts()
	dash.LastUpdated = s.applicants.LastUpdated()
	dash.SourcePath = s.applicants.Path()
	if session.Phase == domain.PhaseViewing {
		if rec, err := s.applicants.FindByID(session.SelectedID); err == nil {
			dash.Selected = rec
		}
	}
	return dash
}

// Decide applies decision to the selected applicant with the session's
// comments. The confirmation is only shown once the store reports the
// decision as saved.
func (s *ReviewService) Decide(
	ctx context.Context,
	session domain.Session,
	decision domain.Decision,
) (domain.Session, error) {
	if !decision.IsValid() {
		return session, fmt.Errorf("%w: decision %q", domain.ErrInvalidInput, decision)
	}
	if !session.CanDecide() {
		return session, domain.ErrNoSelection
	}
	if s.applicants == nil {
		return session, domain.ErrNotImplemented
	}

	if _, err := s.applicants.ApplyDecision(ctx, session.SelectedID, decision, session.Comments); err != nil {
		return session.DecisionFailed(err), err
	}
	return session.DecisionSaved(decision, s.now()), nil
}
