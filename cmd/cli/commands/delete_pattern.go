package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeletePatternCmd creates the deletePattern command
func DeletePatternCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deletePattern <pattern_id>",
		Short: "Delete a rotation pattern (assignments and history cascade)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.DeletePattern(app.Ctx, args[0], app.TenantID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Pattern %s deleted.\n\n", args[0])
			return nil
		},
	}
}
