package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/core/services"
)

// AddAvoidanceCmd creates the addAvoidance command
func AddAvoidanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addAvoidance <trainee_id_a> <trainee_id_b> [cohort_id]",
		Short: "Record that two trainees should not share a group",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			traineeIDA := args[0]
			traineeIDB := args[1]
			var cohortID string
			if len(args) > 2 {
				cohortID = args[2]
			}

			kind, _ := cmd.Flags().GetString("kind")

			pref, err := services.RecordAvoidance(app.Ctx, app.Database, app.Logger, cohortID, traineeIDA, traineeIDB, kind)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Preference recorded: %s %ss %s (cohort %s)\n\n",
				pref.TraineeIDA, pref.Kind, pref.TraineeIDB, pref.CohortID)

			return nil
		},
	}

	cmd.Flags().String("kind", model.PreferenceAvoid, "Preference kind (avoid or prefer)")

	return cmd
}
