package domain

import (
	"strconv"
	"strings"
	"time"
)

// DisplayDateLayout is how application dates are shown and written back.
const DisplayDateLayout = "2006-01-02 15:04"

// dateLayouts are tried in order when parsing application dates.
var dateLayouts = []string{
	DisplayDateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ApplicantRecord is one row of the backing source.
type ApplicantRecord struct {
	// ID is the unique, stable lookup key.
	ID string `json:"id"`

	// ApplicationDate is the parsed submission time. The zero value means
	// the source value could not be parsed; see HasApplicationDate.
	ApplicationDate time.Time `json:"application_date"`

	// ApplicationDateRaw is the source text the date was parsed from.
	// It is written back verbatim when the date is unparseable.
	ApplicationDateRaw string `json:"application_date_raw,omitempty"`

	// FullName is the applicant's name.
	FullName string `json:"full_name"`

	// Status is the review state.
	Status Status `json:"status"`

	// RatingScore is an opaque precomputed score; zero when absent.
	RatingScore int `json:"rating_score"`

	// Details holds the reviewer comments, overwritten by each decision.
	Details string `json:"details"`

	// Activity is the stage progression, empty when the source has no feed.
	Activity ActivityFeed `json:"activity,omitempty"`

	// Attributes holds every other column keyed by header name.
	Attributes map[string]string `json:"attributes,omitempty"`

	// Cells is the row text as read from the source, one entry per column.
	// Values that still match it are written back as it was.
	Cells []string `json:"-"`
}

// HasApplicationDate reports whether the application date was parsed.
func (r *ApplicantRecord) HasApplicationDate() bool {
	return !r.ApplicationDate.IsZero()
}

// ApplicationDateText returns the date for display, falling back to the raw
// source value, then to the placeholder.
func (r *ApplicantRecord) ApplicationDateText() string {
	if r.HasApplicationDate() {
		return r.ApplicationDate.Format(DisplayDateLayout)
	}
	if strings.TrimSpace(r.ApplicationDateRaw) != "" {
		return r.ApplicationDateRaw
	}
	return Placeholder
}

// Attribute returns an optional column value, or Placeholder when the
// source did not supply it.
func (r *ApplicantRecord) Attribute(column string) string {
	if r.Attributes == nil {
		return Placeholder
	}
	v, ok := r.Attributes[column]
	if !ok || strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}

// HasAttribute reports whether the source supplied a non-blank value.
func (r *ApplicantRecord) HasAttribute(column string) bool {
	return r.Attribute(column) != Placeholder
}

// Verification returns the state of a 1/0 verification column such as
// ColumnPhotoMatched. ok is false when the column is absent or unreadable.
func (r *ApplicantRecord) Verification(column string) (matched, ok bool) {
	if !r.HasAttribute(column) {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(r.Attributes[column])) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(r.Attributes[column]), 64); err == nil {
		return f == 1, true
	}
	return false, false
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (r ApplicantRecord) Clone() ApplicantRecord {
	out := r
	if r.Activity != nil {
		out.Activity = append(ActivityFeed(nil), r.Activity...)
	}
	if r.Cells != nil {
		out.Cells = append([]string(nil), r.Cells...)
	}
	if r.Attributes != nil {
		out.Attributes = make(map[string]string, len(r.Attributes))
		for k, v := range r.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// ParseApplicationDate parses a source date. ok is false for blank or
// unparseable input, which callers keep as a zero time that sorts last.
func ParseApplicationDate(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// RecordSet is the whole collection held by a backing source.
type RecordSet struct {
	// Columns is the header order of the source, preserved on write-back.
	Columns []string

	// Header is the header row as read, before column names were
	// normalised. Empty for sets not read from a file.
	Header []string

	// Records are the rows in load order.
	Records []ApplicantRecord
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	return len(s.Records)
}

// IndexOf returns the position of the record with id, or -1.
func (s *RecordSet) IndexOf(id string) int {
	for i := range s.Records {
		if s.Records[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the set.
func (s *RecordSet) Clone() RecordSet {
	out := RecordSet{
		Columns: append([]string(nil), s.Columns...),
		Header:  append([]string(nil), s.Header...),
		Records: make([]ApplicantRecord, len(s.Records)),
	}
	for i := range s.Records {
		out.Records[i] = s.Records[i].Clone()
	}
	return out
}

// StatusCounts holds the number of records per status.
type StatusCounts map[Status]int

// CountStatuses tallies records by status. Every known status is present,
// defaulting to zero.
func CountStatuses(records []ApplicantRecord) StatusCounts {
	counts := make(StatusCounts, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for i := range records {
		counts[records[i].Status]++
	}
	return counts
}

// Total returns the sum of all counts.
func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
