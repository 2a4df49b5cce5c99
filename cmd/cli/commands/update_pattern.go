package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// UpdatePatternCmd creates the updatePattern command
func UpdatePatternCmd(app *AppContext) *cobra.Command {
	var (
		name        string
		description string
		patternType string
		starts      string
		ends        string
		cycleWeeks  int
		active      bool
	)

	cmd := &cobra.Command{
		Use:   "updatePattern <pattern_id>",
		Short: "Update fields of a rotation pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update db.PatternUpdate

			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("type") {
				pt := db.PatternType(patternType)
				update.PatternType = &pt
			}
			if cmd.Flags().Changed("cycle-weeks") {
				update.CycleLengthWeeks = &cycleWeeks
			}
			if cmd.Flags().Changed("starts") {
				startsAt, err := parseDate(starts)
				if err != nil {
					return err
				}
				update.StartsAt = &startsAt
			}
			if cmd.Flags().Changed("ends") {
				endsAt, err := parseDate(ends)
				if err != nil {
					return err
				}
				update.EndsAt = &endsAt
			}
			if cmd.Flags().Changed("active") {
				update.IsActive = &active
			}

			pattern, err := services.UpdatePattern(app.Ctx, app.Database, app.Logger, args[0], app.TenantID, update)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Pattern updated: %s (%s)\n\n", pattern.Name, pattern.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New pattern name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&patternType, "type", "", "New pattern type")
	cmd.Flags().StringVar(&starts, "starts", "", "New cycle anchor date YYYY-MM-DD")
	cmd.Flags().StringVar(&ends, "ends", "", "New end date YYYY-MM-DD")
	cmd.Flags().IntVar(&cycleWeeks, "cycle-weeks", 0, "New cycle length in weeks")
	cmd.Flags().BoolVar(&active, "active", true, "Set the pattern active or inactive")

	return cmd
}
