package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNoSettingsService is returned when no settings service has been wired.
var ErrNoSettingsService = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change reviewdesk settings.

Settings are stored in ~/.reviewdesk/config.toml. REVIEWDESK_SOURCE,
REVIEWDESK_PAGE_SIZE and REVIEWDESK_ADDR override the stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it.

Keys:
  source.path             backing source (.xlsx, .csv, .db)
  source.watch            warn when another program changes the source
  review.page_size        applicants per page
  review.include_approved list approved applications by default
  server.addr             listen address of 'reviewdesk serve'`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return ErrNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Source]")
	cmd.Printf("  Path: %s\n", settings.Source.Path)
	cmd.Printf("  Watch: %s\n", yesNo(settings.Source.Watch))
	cmd.Println()

	cmd.Println("[Review]")
	cmd.Printf("  Page size: %d\n", settings.Review.PageSize)
	cmd.Printf("  Include approved: %s\n", yesNo(settings.Review.IncludeApproved))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	if err := settingsService.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'reviewdesk settings set <key> <value>' to fix it.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return ErrNoSettingsService
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
