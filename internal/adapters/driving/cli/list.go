package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

var (
	listSearch          string
	listIncludeApproved bool
	listPage            int
	listPageSize        int
	listJSON            bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applicants",
	Long: `List applicants by application date, oldest first.

--search matches id, full name and status without regard to case.
Approved applications are listed unless --include-approved=false is given
or review.include_approved is false in the settings.

Examples:
  reviewdesk list
  reviewdesk list --search pending --page 2
  reviewdesk list --include-approved=false --page-size 20`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "filter by id, name or status")
	listCmd.Flags().BoolVar(&listIncludeApproved, "include-approved", true, "include approved applications")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number, starting at 1")
	listCmd.Flags().IntVarP(&listPageSize, "page-size", "n", 0, "applicants per page (0 = configured size)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if listPage < 1 {
		return fmt.Errorf("%w: page must be 1 or more, got %d", domain.ErrInvalidInput, listPage)
	}
	if listPageSize < 0 {
		return fmt.Errorf("%w: page size must not be negative, got %d", domain.ErrInvalidInput, listPageSize)
	}

	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	settings := appSettings()
	req := domain.PageRequest{
		Search:          listSearch,
		IncludeApproved: settings.Review.IncludeApproved,
		PageIndex:       listPage - 1,
		PageSize:        settings.Review.PageSize,
	}
	if cmd.Flags().Changed("include-approved") {
		req.IncludeApproved = listIncludeApproved
	}
	if listPageSize > 0 {
		req.PageSize = listPageSize
	}

	page := b.Review.Query(req)
	if listJSON {
		return writeJSON(cmd, page)
	}

	if len(page.Items) == 0 {
		cmd.Println("No applicants match.")
		cmd.Printf("Showing 0 of 0 (page %d of %d)\n", page.PageIndex+1, page.TotalPages)
		return nil
	}

	cmd.Printf("%-10s %-16s %-28s %s\n", "ID", "APPLIED", "NAME", "STATUS")
	for i := range page.Items {
		r := &page.Items[i]
		cmd.Printf("%-10s %-16s %-28s %s\n", r.ID, r.ApplicationDateText(), r.FullName, r.Status)
	}
	cmd.Printf("\nShowing %d-%d of %d (page %d of %d)\n",
		page.FirstItem(), page.LastItem(), page.TotalItems, page.PageIndex+1, page.TotalPages)
	return nil
}
