package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ActivityStages is the fixed, ordered workflow every application moves through.
var ActivityStages = []string{
	"Application Submitted",
	"Verification Started",
	"Initial Review Completed",
	"Request for Additional Information",
	"User Responded with Additional Information",
	"Final Review Completed",
	"Verification Completed",
	"Notification Sent to User",
}

// StageState is how a stage is presented in the activity timeline.
type StageState int

// Stage states.
const (
	StageNotReached StageState = iota
	StageCurrent
	StageCompleted
)

// String returns the lower-case state name.
func (s StageState) String() string {
	switch s {
	case StageCompleted:
		return "completed"
	case StageCurrent:
		return "in_progress"
	default:
		return "not_reached"
	}
}

// ActivityEntry is one stage of the feed. A zero ReachedAt means the
// stage has not been reached.
type ActivityEntry struct {
	Stage     string    `json:"stage"`
	ReachedAt time.Time `json:"reached_at,omitzero"`
}

// Reached reports whether the stage has a timestamp.
func (e ActivityEntry) Reached() bool {
	return !e.ReachedAt.IsZero()
}

// ActivityFeed is the ordered stage log of one application.
type ActivityFeed []ActivityEntry

// activitySeparator splits "<stage> - <timestamp>" lines. The last
// occurrence is used so stage names may contain hyphens.
const activitySeparator = " - "

// ParseActivityFeed reads the newline separated "<stage> - <timestamp|N/A>"
// format. Blank lines are ignored.
func ParseActivityFeed(text string) (ActivityFeed, error) {
	var feed ActivityFeed
	for n, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.LastIndex(line, activitySeparator)
		if idx < 0 {
			return nil, fmt.Errorf("%w: activity line %d has no timestamp: %q", ErrInvalidInput, n+1, line)
		}
		stage := strings.TrimSpace(line[:idx])
		stamp := strings.TrimSpace(line[idx+len(activitySeparator):])

		entry := ActivityEntry{Stage: stage}
		if !strings.EqualFold(stamp, Placeholder) && stamp != "" {
			t, ok := ParseApplicationDate(stamp)
			if !ok {
				return nil, fmt.Errorf("%w: activity line %d has bad timestamp %q", ErrInvalidInput, n+1, stamp)
			}
			entry.ReachedAt = t
		}
		feed = append(feed, entry)
	}
	return feed, nil
}

// String renders the feed in the format ParseActivityFeed reads.
// Seconds are written only when set.
func (f ActivityFeed) String() string {
	lines := make([]string, len(f))
	for i, e := range f {
		stamp := Placeholder
		switch {
		case e.Reached() && e.ReachedAt.Second() != 0:
			stamp = e.ReachedAt.Format("2006-01-02 15:04:05")
		case e.Reached():
			stamp = e.ReachedAt.Format(DisplayDateLayout)
		}
		lines[i] = e.Stage + activitySeparator + stamp
	}
	return strings.Join(lines, "\n")
}

// Equal reports whether both feeds list the same stages reached at the
// same instants.
func (f ActivityFeed) Equal(other ActivityFeed) bool {
	return slices.EqualFunc(f, other, func(a, b ActivityEntry) bool {
		return a.Stage == b.Stage && a.ReachedAt.Equal(b.ReachedAt)
	})
}

// Validate checks that reached stages form a prefix of the feed: once a
// stage is unreached, no later stage may be reached.
func (f ActivityFeed) Validate() error {
	gap := -1
	for i, e := range f {
		if !e.Reached() {
			if gap < 0 {
				gap = i
			}
			continue
		}
		if gap >= 0 {
			return fmt.Errorf("%w: stage %q reached after unreached stage %q",
				ErrInvalidInput, e.Stage, f[gap].Stage)
		}
	}
	return nil
}

// LastReached returns the index of the furthest reached stage, or -1.
func (f ActivityFeed) LastReached() int {
	last := -1
	for i, e := range f {
		if e.Reached() {
			last = i
		}
	}
	return last
}

// State returns how stage i should be presented. Every reached stage before
// the furthest one is completed; the furthest is current unless it is the
// final stage of the feed.
func (f ActivityFeed) State(i int) StageState {
	if i < 0 || i >= len(f) {
		return StageNotReached
	}
	last := f.LastReached()
	switch {
	case i > last:
		return StageNotReached
	case i == last && last < len(f)-1:
		return StageCurrent
	default:
		return StageCompleted
	}
}

// NewActivityFeed returns the standard stages with the first reached stages
// stamped one hour apart from start.
func NewActivityFeed(start time.Time, reached int) ActivityFeed {
	feed := make(ActivityFeed, len(ActivityStages))
	for i, stage := range ActivityStages {
		feed[i] = ActivityEntry{Stage: stage}
		if i < reached {
			feed[i].ReachedAt = start.Add(time.Duration(i) * time.Hour)
		}
	}
	return feed
}
