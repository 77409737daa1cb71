package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// SyncStylesCmd creates the syncStyles command
func SyncStylesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "syncStyles [cohort_id]",
		Short: "Pull learning style form responses and record the answers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			result, err := services.SyncStyleResponses(app.Ctx, app.Database, app.FormsClient, app.Logger, cohortID)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Style response sync completed!\n\n")

			if len(result.Updated) > 0 {
				fmt.Printf("Recorded %d new responses:\n", len(result.Updated))
				for _, r := range result.Updated {
					fmt.Printf("  ✓ %s: %s\n", r.TraineeName, r.Primary)
				}
				fmt.Println()
			}

			if result.Pending > 0 {
				fmt.Printf("%d trainees have not responded yet.\n", result.Pending)
			}

			if len(result.Updated) == 0 && result.Pending == 0 {
				fmt.Println("Nothing to sync - every invited trainee already has a recorded style.")
			}

			return nil
		},
	}
}
