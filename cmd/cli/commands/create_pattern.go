package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// CreatePatternCmd creates the createPattern command
func CreatePatternCmd(app *AppContext) *cobra.Command {
	var (
		name             string
		description      string
		patternType      string
		starts           string
		ends             string
		teamID           int
		cycleWeeks       int
		skipWeekends     bool
		ignoreNightShift bool
		actorID          int
	)

	cmd := &cobra.Command{
		Use:   "createPattern",
		Short: "Create a rotation pattern for the tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startsAt, err := parseDate(starts)
			if err != nil {
				return err
			}

			input := services.CreatePatternInput{
				TenantID:         app.TenantID,
				Name:             name,
				Description:      description,
				PatternType:      db.PatternType(patternType),
				CycleLengthWeeks: cycleWeeks,
				StartsAt:         startsAt,
				ActorID:          actorID,
				Config: &services.PatternConfigInput{
					SkipWeekends:     &skipWeekends,
					IgnoreNightShift: &ignoreNightShift,
				},
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

			pattern, err := services.CreatePattern(app.Ctx, app.Database, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Rotation pattern created!\n\n")
			fmt.Printf("Pattern ID:  %s\n", pattern.ID)
			fmt.Printf("Name:        %s\n", pattern.Name)
			fmt.Printf("Type:        %s\n", pattern.PatternType)
			fmt.Printf("Cycle Weeks: %d\n", pattern.CycleLengthWeeks)
			fmt.Printf("Starts:      %s\n\n", pattern.StartsAt.Format("2006-01-02"))

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pattern name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Pattern description")
	cmd.Flags().StringVar(&patternType, "type", "", "Pattern type: alternating_fs, fixed_night or custom (required)")
	cmd.Flags().StringVar(&starts, "starts", "", "Cycle anchor date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&ends, "ends", "", "Optional end date YYYY-MM-DD")
	cmd.Flags().IntVar(&teamID, "team", 0, "Optional team id")
	cmd.Flags().IntVar(&cycleWeeks, "cycle-weeks", 2, "Cycle length in weeks")
	cmd.Flags().BoolVar(&skipWeekends, "skip-weekends", true, "Skip Saturdays and Sundays during generation")
	cmd.Flags().BoolVar(&ignoreNightShift, "ignore-night-shift", false, "Keep night-shift workers out of the rotation")
	cmd.Flags().IntVar(&actorID, "actor", 0, "Acting user id (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("starts")
	cmd.MarkFlagRequired("actor")

	return cmd
}
