package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	var (
		patternID string
		userID    int
		from      string
		to        string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "viewHistory",
		Short: "Query generated rotation history for the tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter db.HistoryFilter

			if patternID != "" {
				filter.PatternID = &patternID
			}
			if cmd.Flags().Changed("user") {
				filter.UserID = &userID
			}
			if from != "" {
				fromDate, err := parseDate(from)
				if err != nil {
					return err
				}
				filter.From = &fromDate
			}
			if to != "" {
				toDate, err := parseDate(to)
				if err != nil {
					return err
				}
				filter.To = &toDate
			}
			if status != "" {
				filter.Status = &status
			}

			records, err := services.ViewHistory(app.Ctx, app.Database, app.Logger, app.TenantID, filter)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No rotation history found.")
				return nil
			}

			fmt.Printf("\nRotation history (tenant %d, %d records):\n\n", app.TenantID, len(records))
			for _, r := range records {
				fmt.Printf("  %s  week %2d  user %-6d %s  %s\n",
					r.ShiftDate.Format("2006-01-02"), r.WeekNumber, r.UserID, r.ShiftType, r.Status)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&patternID, "pattern", "", "Filter by pattern id")
	cmd.Flags().IntVar(&userID, "user", 0, "Filter by user id")
	cmd.Flags().StringVar(&from, "from", "", "Earliest shift date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Latest shift date YYYY-MM-DD")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}
