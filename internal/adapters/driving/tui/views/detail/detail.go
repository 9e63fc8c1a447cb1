// Package detail renders the full record of one applicant.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

const labelWidth = 24

// Profile columns in display order.
var profileColumns = []string{
	domain.ColumnDateOfBirth,
	domain.ColumnGender,
	domain.ColumnRace,
	domain.ColumnNationality,
	domain.ColumnAddress,
	domain.ColumnEmploymentStatus,
	domain.ColumnOccupation,
	domain.ColumnAnnualIncome,
	domain.ColumnNetWorth,
	domain.ColumnSourceOfFunds,
}

// Assessment columns in display order, after the rating score.
var assessmentColumns = []string{
	domain.ColumnRiskLevel,
	domain.ColumnComplianceProbability,
	domain.ColumnAttempts,
	domain.ColumnTimeTaken,
	domain.ColumnAdditionalRemarks,
}

var verificationColumns = []struct {
	column string
	label  string
}{
	{domain.ColumnPhotoMatched, "Photo"},
	{domain.ColumnICVerified, "IC"},
}

// Render returns the detail panel for r. Missing optional values show as N/A.
func Render(s *styles.Styles, r *domain.ApplicantRecord) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if r == nil {
		return s.Muted.Render("No applicant selected")
	}

	var b strings.Builder

	b.WriteString(s.Title.Render(r.FullName))
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(r.ID))
	b.WriteString("  ")
	b.WriteString(s.Status(r.Status))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Applied " + r.ApplicationDateText()))
	b.WriteString("\n\n")

	section(&b, s, "Profile")
	for _, c := range profileColumns {
		field(&b, s, c, r.Attribute(c))
	}

	section(&b, s, "Assessment")
	field(&b, s, domain.ColumnRatingScore, RatingText(r))
	for _, c := range assessmentColumns {
		field(&b, s, c, r.Attribute(c))
	}

	section(&b, s, "Verification")
	for _, v := range verificationColumns {
		field(&b, s, v.label, verificationText(s, r, v.column))
	}

	section(&b, s, "Activity Feed")
	b.WriteString(RenderActivity(s, r.Activity))

	section(&b, s, "Details")
	if strings.TrimSpace(r.Details) == "" {
		b.WriteString(s.Muted.Render("  " + domain.Placeholder))
	} else {
		b.WriteString(s.Normal.Render("  " + r.Details))
	}
	b.WriteString("\n")

	return b.String()
}

// RatingText returns the rating score, the raw source text when it was not
// a number, or N/A.
func RatingText(r *domain.ApplicantRecord) string {
	if r.RatingScore != 0 {
		return strconv.Itoa(r.RatingScore)
	}
	return r.Attribute(domain.ColumnRatingScore)
}

func verificationText(s *styles.Styles, r *domain.ApplicantRecord, column string) string {
	matched, ok := r.Verification(column)
	switch {
	case !ok:
		return s.Muted.Render(domain.Placeholder)
	case matched:
		return s.Success.Render("✓ matched")
	default:
		return s.Error.Render("✗ unmatched")
	}
}

// RenderActivity renders one line per stage with its state marker.
func RenderActivity(s *styles.Styles, feed domain.ActivityFeed) string {
	if len(feed) == 0 {
		return s.Muted.Render("  No activity recorded") + "\n"
	}

	var b strings.Builder
	for i, e := range feed {
		when := domain.Placeholder
		if e.Reached() {
			when = e.ReachedAt.Format(domain.DisplayDateLayout)
		}

		var line string
		switch feed.State(i) {
		case domain.StageCompleted:
			line = s.Success.Render(fmt.Sprintf("  ● %-44s %s", e.Stage, when))
		case domain.StageCurrent:
			line = s.Warning.Render(fmt.Sprintf("  ◐ %-44s %s", e.Stage, when))
		default:
			line = s.Muted.Render(fmt.Sprintf("  ○ %-44s %s", e.Stage, when))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func section(b *strings.Builder, s *styles.Styles, title string) {
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(title))
	b.WriteString("\n")
}

func field(b *strings.Builder, s *styles.Styles, label, value string) {
	b.WriteString(s.Muted.Render(fmt.Sprintf("  %-*s", labelWidth, label)))
	b.WriteString(value)
	b.WriteString("\n")
}
