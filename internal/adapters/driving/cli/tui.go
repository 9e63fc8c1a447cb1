package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the review dashboard",
	Long: `Launch the interactive review dashboard.

The dashboard shows how many applications are in each status and lists
applicants by application date. Open an applicant to read their record,
write comments and approve or reject them.

Controls:
  ↑/k, ↓/j  - Move through the list
  ←/h, →/l  - Previous / next page
  Enter     - Open applicant
  /         - Search
  a         - Show / hide approved applications
  c         - Write comments
  A / R     - Approve / reject
  r         - Reload the source
  Esc       - Back
  ?         - Help`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	ports := tui.NewPorts(b.Applicants, b.Review)
	ports.Settings = settingsService
	if appSettings().Source.Watch {
		ports.Watcher = b.Watcher
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
