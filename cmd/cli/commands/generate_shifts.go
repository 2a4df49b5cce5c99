package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
)

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "generateShifts <pattern_id> <start> <end>",
		Short: "Generate concrete shifts for a pattern over a date range",
		Long: `Generates date-stamped shifts for every active assignment of the pattern
whose window overlaps the range. With --preview the result is printed without
being persisted; otherwise the whole batch is committed atomically.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[1])
			if err != nil {
				return err
			}
			end, err := parseDate(args[2])
			if err != nil {
				return err
			}

			result, err := services.GenerateShifts(app.Ctx, app.Database, app.Logger, services.GenerateShiftsInput{
				PatternID:    args[0],
				TenantID:     app.TenantID,
				StartDate:    start,
				EndDate:      end,
				Preview:      preview,
				HolidayRules: app.Cfg.HolidayRules,
			})
			if err != nil {
				return err
			}

			if result.Preview {
				fmt.Printf("\nPreview: %d shifts for %s to %s\n\n", len(result.Entries), args[1], args[2])
				for _, entry := range result.Entries {
					fmt.Printf("  %s  user %-6d %s\n", entry.Date.Format("2006-01-02 (Mon)"), entry.UserID, entry.ShiftType)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ Shifts committed!\n\n")
			fmt.Printf("Generated: %d\n", len(result.Entries))
			fmt.Printf("Inserted:  %d (already-existing dates skipped)\n\n", result.Inserted)

			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Print the shifts without persisting them")
	return cmd
}
