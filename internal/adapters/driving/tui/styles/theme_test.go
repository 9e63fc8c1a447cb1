package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

func TestDefaultTheme_EveryStatusHasAnAccent(t *testing.T) {
	theme := DefaultTheme()

	require.Len(t, theme.Statuses, len(domain.AllStatuses))
	seen := make(map[lipgloss.Color]domain.Status)
	for _, st := range domain.AllStatuses {
		c, ok := theme.Statuses[st]
		require.True(t, ok, st.String())
		other, dup := seen[c]
		assert.False(t, dup, "%s shares its accent with %s", st, other)
		seen[c] = st
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles.Theme())
	assert.Equal(t, DefaultTheme().Primary, styles.Theme().Primary)
}

func TestNewStyles_KeepsTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = "#000000"

	assert.Same(t, theme, NewStyles(theme).Theme())
}

func TestStyles_StatusColour(t *testing.T) {
	styles := DefaultStyles()
	theme := styles.Theme()

	assert.Equal(t, theme.Success, styles.StatusColour(domain.StatusApproved))
	assert.Equal(t, theme.Secondary, styles.StatusColour(domain.StatusInProgress))
	assert.Equal(t, theme.Error, styles.StatusColour(domain.StatusAlerts))
	assert.Equal(t, theme.Warning, styles.StatusColour(domain.StatusPendingApproval))
	assert.Equal(t, theme.Muted, styles.StatusColour(domain.Status(0)))
}

func TestStyles_StatusRendersLabel(t *testing.T) {
	styles := DefaultStyles()

	for _, st := range domain.AllStatuses {
		assert.Contains(t, styles.Status(st), st.String())
	}
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	testCases := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", styles.Title},
		{"Subtitle", styles.Subtitle},
		{"Normal", styles.Normal},
		{"Selected", styles.Selected},
		{"Warning", styles.Warning},
		{"Card", styles.Card},
		{"Banner", styles.Banner},
		{"Border", styles.Border},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.style.Render("APP001"), "APP001")
		})
	}
}
