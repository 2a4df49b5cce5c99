package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SCS-Technik/Assixx-sub012/pkg/core/services"
	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// kontiTemplateFile is the YAML shape of a two-week Kontischicht template.
type kontiTemplateFile struct {
	Shifts []struct {
		Date  string `yaml:"date"`
		Type  string `yaml:"type"`
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"shifts"`
}

// ExpandYearCmd creates the expandYear command
func ExpandYearCmd(app *AppContext) *cobra.Command {
	var (
		commit    bool
		patternID string
		userID    int
	)

	cmd := &cobra.Command{
		Use:   "expandYear <template.yaml> <year>",
		Short: "Expand a two-week Kontischicht template across a full year",
		Long: `Replicates a hand-built two-week shift template across all 52 weeks of the
target year. Without --commit the expanded plan is only printed; with
--commit it is persisted for the given user's assignment under --pattern.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			template, err := loadKontiTemplate(args[0])
			if err != nil {
				return err
			}

			if commit && (patternID == "" || userID == 0) {
				return fmt.Errorf("--commit requires --pattern and --user")
			}

			result, err := services.ExpandYear(app.Ctx, app.Database, app.Logger, services.ExpandYearInput{
				Template:  template,
				Year:      year,
				TenantID:  app.TenantID,
				PatternID: patternID,
				UserID:    userID,
				Commit:    commit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Expanded %d template shifts into %d dated shifts for %d\n\n",
				len(template), len(result.Shifts), year)
			if commit {
				fmt.Printf("Inserted: %d (already-existing dates skipped)\n\n", result.Inserted)
				return nil
			}

			for _, shift := range result.Shifts {
				fmt.Printf("  %s  %s  %s-%s\n",
					shift.Date.Format("2006-01-02 (Mon)"), shift.ShiftType, shift.StartTime, shift.EndTime)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, "Persist the expanded plan")
	cmd.Flags().StringVar(&patternID, "pattern", "", "Pattern id (required with --commit)")
	cmd.Flags().IntVar(&userID, "user", 0, "User id (required with --commit)")

	return cmd
}

// loadKontiTemplate reads and parses a Kontischicht template YAML file.
func loadKontiTemplate(path string) ([]db.KontiShift, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var file kontiTemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}

	template := make([]db.KontiShift, 0, len(file.Shifts))
	for i, shift := range file.Shifts {
		date, err := parseDate(shift.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date in template shift [%d]: %w", i, err)
		}
		group := db.ShiftGroup(shift.Type)
		if !group.Valid() {
			return nil, fmt.Errorf("invalid shift type %q in template shift [%d], expected F, S or N", shift.Type, i)
		}
		template = append(template, db.KontiShift{
			Date:      date,
			ShiftType: group,
			StartTime: shift.Start,
			EndTime:   shift.End,
		})
	}

	return template, nil
}
