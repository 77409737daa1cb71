package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// NotifyGroupsCmd creates the notifyGroups command
func NotifyGroupsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifyGroups [cohort_id]",
		Short: "Email every trainee their group from the latest assignment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			result, err := services.NotifyGroups(app.Ctx, app.Database, app.GmailClient, app.Logger, cohortID)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Group notifications completed!\n\n")

			if len(result.Sent) > 0 {
				fmt.Printf("Notified %d trainees:\n", len(result.Sent))
				for _, s := range result.Sent {
					fmt.Printf("  ✓ %s (Group %d)\n", s.Email, s.GroupIndex+1)
				}
				fmt.Println()
			}

			if len(result.FailedEmails) > 0 {
				fmt.Printf("⚠️  Failed to notify %d trainees:\n", len(result.FailedEmails))
				for _, fe := range result.FailedEmails {
					fmt.Printf("  ✗ %s (%s): %s\n", fe.TraineeName, fe.Email, fe.Error)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
