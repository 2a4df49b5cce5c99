package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
)

// OffboardTeamCmd creates the offboardTeam command
func OffboardTeamCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "offboardTeam <team_id>",
		Short: "Remove all rotation data (history, assignments, patterns) for one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("team_id must be a number: %w", err)
			}

			counts, err := services.OffboardTeam(app.Ctx, app.Database, app.Logger, app.TenantID, teamID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Team %d rotation data removed!\n\n", teamID)
			fmt.Printf("History rows: %d\n", counts.History)
			fmt.Printf("Assignments:  %d\n", counts.Assignments)
			fmt.Printf("Patterns:     %d\n\n", counts.Patterns)

			return nil
		},
	}
}
