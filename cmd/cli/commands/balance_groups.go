package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// BalanceGroupsCmd creates the balanceGroups command
func BalanceGroupsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balanceGroups [num_groups] [cohort_id]",
		Short: "Split the cohort roster into balanced groups",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			numGroups := app.Cfg.DefaultNumGroups
			if len(args) > 0 {
				var err error
				numGroups, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("num_groups must be a number: %w", err)
				}
			}
			if numGroups < 2 {
				return fmt.Errorf("num_groups must be at least 2, got %d", numGroups)
			}

			var cohortID string
			if len(args) > 1 {
				cohortID = args[1]
			}

			seed, _ := cmd.Flags().GetInt64("seed")
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.BalanceGroups(app.Ctx, app.Database, app.Logger, cohortID, numGroups, seed, dryRun)
			if err != nil {
				return err
			}

			// Display results
			if dryRun {
				fmt.Printf("\n✓ Groups balanced (DRY RUN - not saved)\n\n")
			} else {
				fmt.Printf("\n✓ Groups balanced and saved!\n\n")
				fmt.Printf("Assignment ID: %s\n", result.AssignmentID)
			}
			fmt.Printf("Cohort: %s (%s)\n", result.Cohort.Name, result.Cohort.ID)
			fmt.Printf("Seed:   %d\n\n", result.Seed)

			for _, group := range result.Outcome.Groups {
				fmt.Printf("Group %d (%d trainees):\n", group.GroupIndex+1, len(group.TraineeIDs))
				for _, id := range group.TraineeIDs {
					t := result.Trainees[id]
					agencyInfo := ""
					if t.HomeAgency != "" {
						agencyInfo = fmt.Sprintf(" [%s]", t.HomeAgency)
					}
					fmt.Printf("  - %s %s (%s)%s\n", t.FirstName, t.LastName, t.ID, agencyInfo)
				}
				fmt.Println()
			}

			if len(result.Outcome.Warnings) > 0 {
				fmt.Printf("⚠️  %d warnings:\n", len(result.Outcome.Warnings))
				for _, warning := range result.Outcome.Warnings {
					fmt.Printf("  ✗ %s\n", warning)
				}
				fmt.Println()
			}

			stats := result.Outcome.Stats
			fmt.Printf("Stats:\n")
			fmt.Printf("  Trainees:       %d\n", stats.TotalTrainees)
			fmt.Printf("  Group sizes:    %v\n", stats.GroupSizes)
			fmt.Printf("  Size std dev:   %.2f\n", stats.SizeStdDev)
			fmt.Printf("  Conflicts left: %d\n", stats.AvoidanceConflicts)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for shuffle decisions (defaults to current time)")
	cmd.Flags().Bool("dry-run", false, "Run without saving the assignment")

	return cmd
}
