// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// Column widths of the applicant table.
const (
	idWidth   = 10
	dateWidth = 17
)

// ApplicantList displays one page of applicants as a table with a cursor.
// It never filters or sorts; the page arrives ready from the review service.
type ApplicantList struct {
	page   domain.Page
	cursor int
	// openID marks the applicant shown in the detail panel.
	openID string
	styles *styles.Styles
	width  int
}

// NewApplicantList creates an empty applicant list.
func NewApplicantList(s *styles.Styles) *ApplicantList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ApplicantList{
		styles: s,
		width:  80,
	}
}

// Init initialises the list.
func (l *ApplicantList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement.
func (l *ApplicantList) Update(msg tea.Msg) (*ApplicantList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the table and the pagination footer.
func (l *ApplicantList) View() string {
	nameWidth := l.width - idWidth - dateWidth - 24
	if nameWidth < 12 {
		nameWidth = 12
	}

	lines := make([]string, 0, len(l.page.Items)+3)
	header := fmt.Sprintf("  %-*s %-*s %-*s %s",
		idWidth, "ID", dateWidth, "Application Date", nameWidth, "Full Name", "Status")
	lines = append(lines, l.styles.Subtitle.Render(header))

	if len(l.page.Items) == 0 {
		lines = append(lines, l.styles.Muted.Render("  No applicants match"))
	}

	for i := range l.page.Items {
		lines = append(lines, l.renderRow(i, &l.page.Items[i], nameWidth))
	}

	lines = append(lines, "", l.styles.Muted.Render(l.footer()))
	return strings.Join(lines, "\n")
}

func (l *ApplicantList) renderRow(index int, r *domain.ApplicantRecord, nameWidth int) string {
	indicator := "  "
	if r.ID == l.openID {
		indicator = "• "
	}
	if index == l.cursor {
		indicator = "> "
	}

	name := truncate(r.FullName, nameWidth)
	text := fmt.Sprintf("%s%-*s %-*s %-*s ",
		indicator, idWidth, r.ID, dateWidth, r.ApplicationDateText(), nameWidth, name)

	if index == l.cursor {
		return l.styles.Selected.Render(text + r.Status.String())
	}
	return l.styles.Normal.Render(text) + l.styles.Status(r.Status)
}

func (l *ApplicantList) footer() string {
	p := l.page
	if p.TotalItems == 0 {
		return "Showing 0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d · Page %d of %d",
		p.FirstItem(), p.LastItem(), p.TotalItems, p.PageIndex+1, p.TotalPages)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// SetPage replaces the visible page. The cursor returns to the top when a
// different page index arrives and is clamped otherwise.
func (l *ApplicantList) SetPage(page domain.Page) {
	if page.PageIndex != l.page.PageIndex {
		l.cursor = 0
	}
	l.page = page
	if l.cursor >= len(page.Items) {
		l.cursor = len(page.Items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Page returns the visible page.
func (l *ApplicantList) Page() domain.Page {
	return l.page
}

// SetOpenID marks the applicant shown in the detail panel.
func (l *ApplicantList) SetOpenID(id string) {
	l.openID = id
}

// Cursor returns the index of the highlighted row.
func (l *ApplicantList) Cursor() int {
	return l.cursor
}

// Current returns the highlighted applicant, or nil when the page is empty.
func (l *ApplicantList) Current() *domain.ApplicantRecord {
	if l.cursor < 0 || l.cursor >= len(l.page.Items) {
		return nil
	}
	return &l.page.Items[l.cursor]
}

// MoveUp moves the cursor up.
func (l *ApplicantList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *ApplicantList) MoveDown() {
	if l.cursor < len(l.page.Items)-1 {
		l.cursor++
	}
}

// SetWidth sets the component width.
func (l *ApplicantList) SetWidth(width int) {
	l.width = width
}

// IsEmpty returns whether the page has no applicants.
func (l *ApplicantList) IsEmpty() bool {
	return len(l.page.Items) == 0
}
