package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
)

// AssignUsersCmd creates the assignUsers command
func AssignUsersCmd(app *AppContext) *cobra.Command {
	var (
		starts  string
		ends    string
		teamID  int
		actorID int
	)

	cmd := &cobra.Command{
		Use:   "assignUsers <pattern_id> <user_id>:<F|S|N> [<user_id>:<F|S|N>...]",
		Short: "Bind users to a pattern with their shift-group labels",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userIDs, groups, err := parseUserGroups(args[1:])
			if err != nil {
				return err
			}

			startsAt, err := parseDate(starts)
			if err != nil {
				return err
			}

			input := services.AssignUsersInput{
				PatternID:   args[0],
				TenantID:    app.TenantID,
				UserIDs:     userIDs,
				ShiftGroups: groups,
				StartsAt:    startsAt,
				ActorID:     actorID,
			}
			if ends != "" {
				endsAt, err := parseDate(ends)
				if err != nil {
					return err
				}
				input.EndsAt = &endsAt
			}
			if cmd.Flags().Changed("team") {
				input.TeamID = &teamID
			}

			assignments, err := services.AssignUsers(app.Ctx, app.Database, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Users assigned!\n\nActive assignments for pattern %s:\n", args[0])
			for _, a := range assignments {
				fmt.Printf("  user %-6d group %s  from %s  team %s\n",
					a.UserID, a.ShiftGroup, a.StartsAt.Format("2006-01-02"), formatTeam(a.TeamID))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&starts, "starts", "", "Assignment start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&ends, "ends", "", "Optional assignment end date YYYY-MM-DD")
	cmd.Flags().IntVar(&teamID, "team", 0, "Optional team id")
	cmd.Flags().IntVar(&actorID, "actor", 0, "Acting user id")
	cmd.MarkFlagRequired("starts")

	return cmd
}
