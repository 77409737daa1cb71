package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// PublishAssignmentCmd creates the publishAssignment command
func PublishAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishAssignment [cohort_id]",
		Short: "Publish the latest group assignment to the roster spreadsheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			result, err := services.PublishAssignment(
				app.Ctx,
				app.Database,
				app.SheetsClient,
				app.Cfg,
				app.Logger,
				cohortID,
			)
			if err != nil {
				return fmt.Errorf("failed to publish assignment: %w", err)
			}

			fmt.Printf("\n✓ Assignment published!\n\n")
			fmt.Printf("Cohort:     %s (%s)\n", result.Cohort.Name, result.Cohort.ID)
			fmt.Printf("Assignment: %s\n", result.Assignment.ID)
			fmt.Printf("Sheet tab:  %s\n", result.SheetTitle)
			fmt.Printf("Rows:       %d\n\n", result.RowCount)

			return nil
		},
	}
}
