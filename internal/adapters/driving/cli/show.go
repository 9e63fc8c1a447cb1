package cli

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one applicant",
	Long:  `Show the full record of one applicant, including verification checks and the activity feed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	r, err := b.Applicants.FindByID(args[0])
	if err != nil {
		return err
	}
	if showJSON {
		return writeJSON(cmd, r)
	}

	cmd.Printf("%s  %s\n", r.ID, r.FullName)
	cmd.Printf("Status:  %s (%s)\n", r.Status, r.Status.Description())
	cmd.Printf("Applied: %s\n", r.ApplicationDateText())
	if r.RatingScore > 0 {
		cmd.Printf("Rating:  %d\n", r.RatingScore)
	} else {
		cmd.Printf("Rating:  %s\n", domain.Placeholder)
	}

	cmd.Println()
	for _, column := range attributeColumns(r) {
		if column == domain.ColumnPhotoMatched || column == domain.ColumnICVerified {
			continue
		}
		cmd.Printf("  %-24s %s\n", column, r.Attribute(column))
	}

	cmd.Println()
	cmd.Println("Verification")
	for _, column := range []string{domain.ColumnPhotoMatched, domain.ColumnICVerified} {
		cmd.Printf("  %-24s %s\n", column, verificationLabel(r, column))
	}

	cmd.Println()
	cmd.Println("Activity")
	if len(r.Activity) == 0 {
		cmd.Println("  No activity recorded")
	}
	for i, e := range r.Activity {
		at := domain.Placeholder
		if e.Reached() {
			at = e.ReachedAt.Format(domain.DisplayDateLayout)
		}
		cmd.Printf("  %-10s %-28s %s\n", r.Activity.State(i), e.Stage, at)
	}

	cmd.Println()
	cmd.Println("Details")
	if r.Details == "" {
		cmd.Printf("  %s\n", domain.Placeholder)
	} else {
		cmd.Printf("  %s\n", r.Details)
	}
	return nil
}

// attributeColumns lists the known optional columns in source order,
// followed by any extra columns the source carried.
func attributeColumns(r *domain.ApplicantRecord) []string {
	var columns []string
	known := make(map[string]bool, len(domain.DefaultColumns))
	for _, c := range domain.DefaultColumns {
		known[c] = true
		if !domain.IsCoreColumn(c) {
			columns = append(columns, c)
		}
	}
	for _, c := range slices.Sorted(maps.Keys(r.Attributes)) {
		if !known[c] {
			columns = append(columns, c)
		}
	}
	return columns
}

func verificationLabel(r *domain.ApplicantRecord, column string) string {
	matched, ok := r.Verification(column)
	switch {
	case !ok:
		return domain.Placeholder
	case matched:
		return "matched"
	default:
		return "unmatched"
	}
}
