package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count applications per review status",
	Long: `Print the number of applications in each review status, the total,
the backing source and when records were last loaded or saved.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON")
	rootCmd.AddCommand(summaryCmd)
}

type summaryOutput struct {
	Counts      map[string]int `json:"counts"`
	Total       int            `json:"total"`
	Source      string         `json:"source"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

func runSummary(cmd *cobra.Command, _ []string) error {
	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	counts := b.Applicants.StatusCounts()
	updated := b.Applicants.LastUpdated()

	if summaryJSON {
		out := summaryOutput{
			Counts: make(map[string]int, len(domain.AllStatuses)),
			Total:  counts.Total(),
			Source: b.Applicants.Path(),
		}
		for _, st := range domain.AllStatuses {
			out.Counts[st.Key()] = counts[st]
		}
		if !updated.IsZero() {
			out.LastUpdated = updated.Format(time.RFC3339)
		}
		return writeJSON(cmd, out)
	}

	for _, st := range domain.AllStatuses {
		cmd.Printf("%-12s %4d  %s\n", st.String(), counts[st], st.Description())
	}
	cmd.Printf("%-12s %4d\n", "Total", counts.Total())
	cmd.Println()
	cmd.Printf("Source:       %s\n", b.Applicants.Path())
	cmd.Printf("Last updated: %s\n", formatUpdated(updated))
	return nil
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return domain.Placeholder
	}
	return t.Format(domain.DisplayDateLayout)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
