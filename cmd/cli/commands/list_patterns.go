package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListPatternsCmd creates the listPatterns command
func ListPatternsCmd(app *AppContext) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "listPatterns",
		Short: "List the tenant's rotation patterns, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := app.Database.ListPatterns(app.Ctx, app.TenantID, activeOnly)
			if err != nil {
				return err
			}

			if len(patterns) == 0 {
				fmt.Println("No rotation patterns found.")
				return nil
			}

			fmt.Printf("\nRotation patterns (tenant %d):\n\n", app.TenantID)
			for _, p := range patterns {
				active := " "
				if p.IsActive {
					active = "*"
				}
				fmt.Printf("  %s %-36s %-24s %-14s starts %s  team %s\n",
					active, p.ID, p.Name, p.PatternType,
					p.StartsAt.Format("2006-01-02"), formatTeam(p.TeamID))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list active patterns")
	return cmd
}
