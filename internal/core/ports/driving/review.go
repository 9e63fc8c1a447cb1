package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// Dashboard is everything a presentation layer renders. It is computed by
// the core; renderers must not filter, sort, count or paginate themselves.
type Dashboard struct {
	// Counts holds the status card totals over the whole record set.
	Counts domain.StatusCounts

	// Page is the visible slice of the applicant list.
	Page domain.Page

	// Selected is the open applicant, nil when none is selected.
	Selected *domain.ApplicantRecord

	// Confirmation is set while a saved decision awaits acknowledgement.
	Confirmation *domain.Confirmation

	// Session is the state the dashboard was computed from, with its page
	// index clamped to the filtered result.
	Session domain.Session

	// LastUpdated is when records were last loaded or saved.
	LastUpdated time.Time

	// SourcePath identifies the backing source.
	SourcePath string
}

// ReviewService drives the review workflow.
type ReviewService interface {
	// Query runs the filter, sort and paginate pipeline.
	Query(req domain.PageRequest) domain.Page

	// Dashboard computes the visible state for a session.
	Dashboard(session domain.Session) Dashboard

	// Decide applies an approve or reject decision for the selected applicant
	// using the session's comments. On success the returned session is
	// confirming; on failure it keeps the selection and comments and
	// carries the error.
	Decide(ctx context.Context, session domain.Session, decision domain.Decision) (domain.Session, error)
}
