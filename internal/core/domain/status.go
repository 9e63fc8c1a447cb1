package domain

import (
	"fmt"
	"strings"
)

// Status is the review state of an application.
type Status int

// The five statuses an application can be in.
// The declaration order is the order the dashboard cards are shown in.
const (
	StatusApproved Status = iota + 1
	StatusInProgress
	StatusAlerts
	StatusPendingApproval
	StatusRejected
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusApproved,
	StatusInProgress,
	StatusAlerts,
	StatusPendingApproval,
	StatusRejected,
}

// String returns the label used in backing sources and on screen.
func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusInProgress:
		return "In Progress"
	case StatusAlerts:
		return "Alerts"
	case StatusPendingApproval:
		return "Pending Approval"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Key returns a stable snake_case identifier, used for metrics labels and JSON keys.
func (s Status) Key() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusInProgress:
		return "in_progress"
	case StatusAlerts:
		return "alerts"
	case StatusPendingApproval:
		return "pending_approval"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Description returns the dashboard card explanation for the status.
func (s Status) Description() string {
	switch s {
	case StatusApproved:
		return "Total number of approved applications"
	case StatusInProgress:
		return "Total number of applications currently being processed"
	case StatusAlerts:
		return "Total number of applications that are suspicious"
	case StatusPendingApproval:
		return "Total number of applications awaiting approval"
	case StatusRejected:
		return "Total number of rejected applications"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the status is one of the five known statuses.
func (s Status) IsValid() bool {
	return s >= StatusApproved && s <= StatusRejected
}

// MarshalText implements encoding.TextMarshaler using the display label.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts a label to a Status.
// Matching ignores case, spaces, hyphens and underscores, so
// "Pending Approval", "pending_approval" and "PENDINGAPPROVAL" are equal.
func ParseStatus(value string) (Status, error) {
	switch normaliseLabel(value) {
	case "approved":
		return StatusApproved, nil
	case "inprogress":
		return StatusInProgress, nil
	case "alerts", "alert":
		return StatusAlerts, nil
	case "pendingapproval":
		return StatusPendingApproval, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
}

func normaliseLabel(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch r {
		case ' ', '-', '_', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decision is the reviewer verdict on an application.
type Decision string

// Reviewer verdicts.
const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// IsValid returns true if the decision is approve or reject.
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Status returns the status a record takes after the decision.
func (d Decision) Status() Status {
	if d == DecisionReject {
		return StatusRejected
	}
	return StatusApproved
}

// PastTense returns "approved" or "rejected" for confirmation messages.
func (d Decision) PastTense() string {
	if d == DecisionReject {
		return "rejected"
	}
	return "approved"
}

// ParseDecision converts user input to a Decision.
func ParseDecision(value string) (Decision, error) {
	switch normaliseLabel(value) {
	case "approve", "approved":
		return DecisionApprove, nil
	case "reject", "rejected":
		return DecisionReject, nil
	default:
		return "", fmt.Errorf("%w: decision must be approve or reject, got %q", ErrInvalidInput, value)
	}
}
