package domain

import "time"

// Phase is the selection and decision state of a review session.
type Phase int

// Session phases.
const (
	// PhaseNoSelection has no applicant open in the detail panel.
	PhaseNoSelection Phase = iota

	// PhaseViewing has one applicant open for review.
	PhaseViewing

	// PhaseConfirming shows the confirmation of a saved decision.
	PhaseConfirming
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseViewing:
		return "viewing"
	case PhaseConfirming:
		return "confirming"
	default:
		return "no_selection"
	}
}

// Confirmation describes the decision whose save is being acknowledged.
type Confirmation struct {
	ApplicantID string    `json:"applicant_id"`
	Decision    Decision  `json:"decision"`
	SavedAt     time.Time `json:"saved_at"`
}

// Session is the complete reviewer state. It is a value: every transition
// returns a new Session and never touches the store. Decisions themselves
// are applied by the review service, which feeds the outcome back through
// DecisionSaved or DecisionFailed.
type Session struct {
	Phase Phase

	// SelectedID is set only in PhaseViewing.
	SelectedID string

	// Comments is the in-progress comment for the selected applicant.
	Comments string

	// Search and IncludeApproved are the list filters.
	Search          string
	IncludeApproved bool

	// PageIndex is zero based; the review service clamps it whenever the
	// filtered result shrinks.
	PageIndex int
	PageSize  int

	// Confirmation is set only in PhaseConfirming.
	Confirmation *Confirmation

	// Err is the last decision failure, kept so the reviewer can retry.
	Err error
}

// NewSession returns an empty session with the given list settings.
func NewSession(pageSize int, includeApproved bool) Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Session{
		Phase:           PhaseNoSelection,
		IncludeApproved: includeApproved,
		PageSize:        pageSize,
	}
}

// PageRequest returns the pipeline inputs for the session.
func (s Session) PageRequest() PageRequest {
	return PageRequest{
		Search:          s.Search,
		IncludeApproved: s.IncludeApproved,
		PageIndex:       s.PageIndex,
		PageSize:        s.PageSize,
	}
}

// Select opens an applicant. Comments are cleared unless the same applicant
// is already open, so text never carries over to another applicant. Selecting
// while a confirmation shows acknowledges it.
func (s Session) Select(id string) Session {
	if s.Phase == PhaseViewing && s.SelectedID == id {
		return s
	}
	s.Phase = PhaseViewing
	s.SelectedID = id
	s.Comments = ""
	s.Confirmation = nil
	s.Err = nil
	return s
}

// CloseDetail returns to PhaseNoSelection without a decision.
func (s Session) CloseDetail() Session {
	if s.Phase != PhaseViewing {
		return s
	}
	s.Phase = PhaseNoSelection
	s.SelectedID = ""
	s.Comments = ""
	s.Err = nil
	return s
}

// SetComments replaces the comment text. It has no effect without a selection.
func (s Session) SetComments(text string) Session {
	if s.Phase != PhaseViewing {
		return s
	}
	s.Comments = text
	return s
}

// CanDecide reports whether Approve and Reject are available.
func (s Session) CanDecide() bool {
	return s.Phase == PhaseViewing && s.SelectedID != ""
}

// DecisionSaved moves to PhaseConfirming after the store has persisted the
// decision. Comments and selection are cleared.
func (s Session) DecisionSaved(d Decision, at time.Time) Session {
	if !s.CanDecide() {
		return s
	}
	s.Confirmation = &Confirmation{ApplicantID: s.SelectedID, Decision: d, SavedAt: at}
	s.Phase = PhaseConfirming
	s.SelectedID = ""
	s.Comments = ""
	s.Err = nil
	return s
}

// DecisionFailed records a failed decision. The selection and comments are
// kept so the same decision can be retried; no confirmation is shown.
func (s Session) DecisionFailed(err error) Session {
	s.Err = err
	return s
}

// Dismiss acknowledges the confirmation and returns to PhaseNoSelection.
func (s Session) Dismiss() Session {
	if s.Phase != PhaseConfirming {
		return s
	}
	s.Phase = PhaseNoSelection
	s.Confirmation = nil
	return s
}

// Confirming reports whether a decision confirmation is showing.
func (s Session) Confirming() bool {
	return s.Phase == PhaseConfirming
}

// SetSearch changes the search text.
func (s Session) SetSearch(text string) Session {
	s.Search = text
	return s
}

// SetIncludeApproved changes the approved filter.
func (s Session) SetIncludeApproved(include bool) Session {
	s.IncludeApproved = include
	return s
}

// SetPageSize changes the page size, keeping values below 1 at the default.
func (s Session) SetPageSize(size int) Session {
	if size < 1 {
		size = DefaultPageSize
	}
	s.PageSize = size
	return s
}

// GoToPage moves to a zero-based page. The index is clamped against the
// filtered result by ClampPage.
func (s Session) GoToPage(index int) Session {
	s.PageIndex = index
	return s
}

// NextPage moves one page forward.
func (s Session) NextPage() Session {
	return s.GoToPage(s.PageIndex + 1)
}

// PreviousPage moves one page back.
func (s Session) PreviousPage() Session {
	return s.GoToPage(s.PageIndex - 1)
}

// ClampPage keeps PageIndex within [0, totalPages-1].
func (s Session) ClampPage(totalPages int) Session {
	s.PageIndex = ClampPageIndex(s.PageIndex, totalPages)
	return s
}
