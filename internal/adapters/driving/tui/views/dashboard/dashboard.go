// Package dashboard provides the review dashboard: status cards, the
// filtered applicant list, the detail panel and the decision workflow.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// View is the review dashboard. It holds the reviewer session and renders
// the dashboard computed for it by the review service.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	applicants driving.ApplicantService
	review     driving.ReviewService

	session domain.Session
	dash    driving.Dashboard

	search   *input.TextInput
	comments *input.TextInput
	list     *list.ApplicantList
	bar      *status.Bar

	// saving is set while a decision is being persisted.
	saving    bool
	reloading bool
	// warning reports a change to the backing source made elsewhere.
	warning string

	width  int
	height int
}

// NewView creates the dashboard for an empty session.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	applicants driving.ApplicantService,
	review driving.ReviewService,
	pageSize int,
	includeApproved bool,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		ctx:        ctx,
		styles:     s,
		keymap:     km,
		applicants: applicants,
		review:     review,
		session:    domain.NewSession(pageSize, includeApproved),
		search:     input.NewSearchInput(s),
		comments:   input.NewCommentInput(s),
		list:       list.NewApplicantList(s),
		bar:        status.NewBar(s, km),
		width:      80,
		height:     24,
	}
}

// Init computes the first dashboard.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return nil
}

// refresh recomputes the dashboard and takes back the clamped session.
func (v *View) refresh() {
	if v.review == nil {
		return
	}
	v.dash = v.review.Dashboard(v.session)
	v.session = v.dash.Session
	v.list.SetPage(v.dash.Page)
	v.list.SetOpenID(v.session.SelectedID)
	v.bar.SetHints(v.hints())
}

func (v *View) hints() []key.Binding {
	switch {
	case v.search.Focused(), v.comments.Focused():
		return v.keymap.InputHelp()
	case v.session.Phase == domain.PhaseViewing:
		return v.keymap.DetailHelp()
	default:
		return v.keymap.ListHelp()
	}
}

// Update handles messages for the dashboard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DecisionCompleted:
		return v.handleDecision(msg), nil

	case messages.ReloadCompleted:
		v.reloading = false
		if msg.Err != nil {
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(fmt.Sprintf("reload failed: %v", msg.Err))
			return v, nil
		}
		v.warning = ""
		v.bar.Clear()
		v.refresh()
		return v, nil

	case messages.SourceChanged:
		if !v.saving {
			v.warning = fmt.Sprintf("%s was changed by another program. Press r to reload.", msg.Change.Path)
			if msg.Change.Removed {
				v.warning = fmt.Sprintf("%s was removed by another program.", msg.Change.Path)
			}
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleDecision(msg messages.DecisionCompleted) *View {
	v.saving = false
	v.session = msg.Session
	if msg.Err != nil {
		logger.Warn("Decision for %s failed: %v", msg.Session.SelectedID, msg.Err)
		v.bar.SetState(status.StateError)
		v.bar.SetMessage(fmt.Sprintf("could not save decision: %v", msg.Err))
		v.refresh()
		return v
	}

	v.bar.Clear()
	v.comments.Reset()
	v.comments.Blur()
	v.refresh()
	return v
}

//nolint:gocyclo // key dispatch for the whole dashboard
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.search.Focused() {
		return v.handleSearchKey(msg)
	}
	if v.comments.Focused() {
		return v.handleCommentKey(msg)
	}
	if v.saving {
		return v, nil
	}

	pressed := msg.String()

	if v.session.Confirming() {
		if keymap.Matches(pressed, v.keymap.Select) || keymap.Matches(pressed, v.keymap.Back) {
			v.session = v.session.Dismiss()
			v.refresh()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(pressed, v.keymap.Back):
		if v.session.Phase == domain.PhaseViewing {
			v.session = v.session.CloseDetail()
			v.comments.Reset()
			v.bar.Clear()
			v.refresh()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(pressed, v.keymap.Up), keymap.Matches(pressed, v.keymap.Down):
		v.list, _ = v.list.Update(msg)

	case keymap.Matches(pressed, v.keymap.Select):
		if cur := v.list.Current(); cur != nil {
			v.session = v.session.Select(cur.ID)
			v.comments.SetValue(v.session.Comments)
			v.bar.Clear()
			v.refresh()
		}

	case keymap.Matches(pressed, v.keymap.Search):
		cmd := v.search.Focus()
		v.bar.SetHints(v.hints())
		return v, cmd

	case keymap.Matches(pressed, v.keymap.ToggleApproved):
		v.session = v.session.SetIncludeApproved(!v.session.IncludeApproved)
		v.refresh()

	case keymap.Matches(pressed, v.keymap.NextPage):
		v.session = v.session.NextPage()
		v.refresh()

	case keymap.Matches(pressed, v.keymap.PrevPage):
		v.session = v.session.PreviousPage()
		v.refresh()

	case keymap.Matches(pressed, v.keymap.Comment):
		if v.session.CanDecide() {
			cmd := v.comments.Focus()
			v.bar.SetHints(v.hints())
			return v, cmd
		}

	case keymap.Matches(pressed, v.keymap.Approve):
		return v, v.decide(domain.DecisionApprove)

	case keymap.Matches(pressed, v.keymap.Reject):
		return v, v.decide(domain.DecisionReject)

	case keymap.Matches(pressed, v.keymap.Reload):
		return v, v.reload()
	}

	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Done) {
		v.search.Blur()
		v.bar.SetHints(v.hints())
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != v.session.Search {
		v.session = v.session.SetSearch(v.search.Value())
		v.refresh()
	}
	return v, cmd
}

func (v *View) handleCommentKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Done) {
		v.comments.Blur()
		v.bar.SetHints(v.hints())
		return v, nil
	}

	var cmd tea.Cmd
	v.comments, cmd = v.comments.Update(msg)
	v.session = v.session.SetComments(v.comments.Value())
	return v, cmd
}

// decide persists the decision in the background. The confirmation only
// appears once DecisionCompleted reports success.
func (v *View) decide(decision domain.Decision) tea.Cmd {
	if !v.session.CanDecide() || v.review == nil {
		return nil
	}

	v.saving = true
	v.bar.SetState(status.StateSaving)
	session := v.session
	ctx := v.ctx
	review := v.review

	return func() tea.Msg {
		next, err := review.Decide(ctx, session, decision)
		return messages.DecisionCompleted{Session: next, Decision: decision, Err: err}
	}
}

func (v *View) reload() tea.Cmd {
	if v.applicants == nil || v.reloading {
		return nil
	}

	v.reloading = true
	v.bar.SetState(status.StateLoading)
	ctx := v.ctx
	applicants := v.applicants

	return func() tea.Msg {
		return messages.ReloadCompleted{Err: applicants.Load(ctx)}
	}
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Applicant Review"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(v.updatedText()))
	b.WriteString("\n\n")

	if v.warning != "" {
		b.WriteString(v.styles.Warning.Render("! " + v.warning))
		b.WriteString("\n\n")
	}

	if c := v.dash.Confirmation; c != nil {
		b.WriteString(v.styles.Banner.Render(ConfirmationText(c)))
		b.WriteString("  ")
		b.WriteString(v.styles.Help.Render("[enter] dismiss"))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderCards())
	b.WriteString("\n\n")

	b.WriteString(v.search.View())
	b.WriteString("  ")
	b.WriteString(v.approvedText())
	b.WriteString("\n\n")

	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.session.Phase == domain.PhaseViewing {
		b.WriteString("\n")
		b.WriteString(v.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) updatedText() string {
	if v.dash.LastUpdated.IsZero() {
		return v.dash.SourcePath
	}
	return fmt.Sprintf("%s · last updated %s",
		v.dash.SourcePath, v.dash.LastUpdated.Format(domain.DisplayDateLayout))
}

func (v *View) approvedText() string {
	if v.session.IncludeApproved {
		return v.styles.Muted.Render("[a] approved: shown")
	}
	return v.styles.Muted.Render("[a] approved: hidden")
}

func (v *View) renderCards() string {
	cards := make([]string, 0, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		body := lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Status(st),
			v.styles.Title.Render(fmt.Sprintf("%d", v.dash.Counts[st])),
			v.styles.Muted.Render(st.Description()),
		)
		cards = append(cards, v.styles.Card.BorderForeground(v.styles.StatusColour(st)).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *View) renderDetail() string {
	var b strings.Builder

	if v.dash.Selected == nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Applicant %s is no longer available.", v.session.SelectedID)))
		b.WriteString("\n")
		return v.styles.Border.Padding(0, 1).Render(b.String())
	}

	b.WriteString(detail.Render(v.styles, v.dash.Selected))
	b.WriteString("\n")
	b.WriteString(v.comments.View())
	b.WriteString("\n")

	if v.session.Err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Save failed: %v. Press A or R to retry.", v.session.Err)))
		b.WriteString("\n")
	}
	if v.saving {
		b.WriteString(v.styles.Muted.Render("Saving decision..."))
	} else {
		b.WriteString(v.styles.Help.Render("[c] comment  [A] approve  [R] reject  [esc] close"))
	}

	return v.styles.Border.Padding(0, 1).Render(b.String())
}

// ConfirmationText is the banner shown once a decision has been saved.
func ConfirmationText(c *domain.Confirmation) string {
	return fmt.Sprintf("Application %s has been %s.", c.ApplicantID, c.Decision.PastTense())
}

// SetContext replaces the context used for decisions and reloads.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetListSettings applies the configured page size and approved filter.
func (v *View) SetListSettings(pageSize int, includeApproved bool) {
	v.session = v.session.SetPageSize(pageSize).SetIncludeApproved(includeApproved)
	v.refresh()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetWidth(width)
	v.bar.SetWidth(width)
	v.search.SetWidth(width / 2)
	v.comments.SetWidth(width - 6)
}

// Session returns the reviewer session.
func (v *View) Session() domain.Session {
	return v.session
}

// Dashboard returns the last computed dashboard.
func (v *View) Dashboard() driving.Dashboard {
	return v.dash
}

// Saving reports whether a decision is being persisted.
func (v *View) Saving() bool {
	return v.saving
}

// Warning returns the external change warning, empty when none.
func (v *View) Warning() string {
	return v.warning
}

// Capturing reports whether a text box has focus, so global keys must
// not be interpreted.
func (v *View) Capturing() bool {
	return v.search.Focused() || v.comments.Focused()
}
