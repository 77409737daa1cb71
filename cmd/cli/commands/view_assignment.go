package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// ViewAssignmentCmd creates the viewAssignment command
func ViewAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewAssignment [cohort_id]",
		Short: "Show the latest group assignment (defaults to latest cohort)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			view, err := services.ViewAssignment(app.Ctx, app.Database, app.Logger, cohortID)
			if err != nil {
				return err
			}

			fmt.Printf("\nAssignment %s for cohort %s (%s)\n", view.Assignment.ID, view.Cohort.Name, view.Cohort.ID)
			fmt.Printf("Created: %s, seed %d\n\n", view.Assignment.CreatedAt, view.Assignment.Seed)

			for i, group := range view.Groups {
				fmt.Printf("Group %d (%d trainees):\n", i+1, len(group))
				for _, label := range group {
					fmt.Printf("  - %s\n", label)
				}
				fmt.Println()
			}

			if len(view.Warnings) > 0 {
				fmt.Printf("⚠️  %d warnings:\n", len(view.Warnings))
				for _, warning := range view.Warnings {
					fmt.Printf("  ✗ %s\n", warning)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
