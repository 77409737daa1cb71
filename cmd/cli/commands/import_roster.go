package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importRoster [cohort_id]",
		Short: "Import the trainee roster from the roster sheet (defaults to latest cohort)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			result, err := services.ImportRoster(app.Ctx, app.Database, app.SheetsClient, app.Cfg, app.Logger, cohortID)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Roster imported for cohort %s (%s)\n\n", result.Cohort.Name, result.Cohort.ID)
			fmt.Printf("Imported %d trainees:\n", len(result.Trainees))
			for _, t := range result.Trainees {
				agencyInfo := ""
				if t.HomeAgency != "" {
					agencyInfo = fmt.Sprintf(" [Agency: %s]", t.HomeAgency)
				}
				fmt.Printf("- %s %s (%s) - %s - %s%s\n",
					t.FirstName,
					t.LastName,
					t.ID,
					t.Status,
					t.Email,
					agencyInfo,
				)
			}
			fmt.Println()

			return nil
		},
	}
}
