package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

var decideComment string

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an application",
	Long: `Approve an application and write the decision to the backing source.

The comment replaces the applicant's details. Deciding an application that
was already decided overwrites the earlier verdict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecide(cmd, args[0], domain.DecisionApprove)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an application",
	Long: `Reject an application and write the decision to the backing source.

The comment replaces the applicant's details. Deciding an application that
was already decided overwrites the earlier verdict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecide(cmd, args[0], domain.DecisionReject)
	},
}

func init() {
	approveCmd.Flags().StringVarP(&decideComment, "comment", "c", "", "reviewer comments")
	rejectCmd.Flags().StringVarP(&decideComment, "comment", "c", "", "reviewer comments")
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
}

func runDecide(cmd *cobra.Command, id string, decision domain.Decision) error {
	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	if _, err := b.Applicants.FindByID(id); err != nil {
		return err
	}

	session := domain.NewSession(domain.DefaultPageSize, true).
		Select(id).
		SetComments(decideComment)
	session, err = b.Review.Decide(cmd.Context(), session, decision)
	if err != nil {
		return fmt.Errorf("saving decision for %s: %w", id, err)
	}

	cmd.Println(confirmationText(session.Confirmation))
	return nil
}

func confirmationText(c *domain.Confirmation) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("Application %s has been %s.", c.ApplicantID, c.Decision.PastTense())
}
