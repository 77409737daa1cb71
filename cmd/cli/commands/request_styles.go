package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// RequestStylesCmd creates the requestStyles command
func RequestStylesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requestStyles [cohort_id]",
		Short: "Email learning style assessment forms to uninvited trainees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cohortID string
			if len(args) > 0 {
				cohortID = args[0]
			}

			result, err := services.RequestStyleAssessments(
				app.Ctx,
				app.Database,
				app.FormsClient,
				app.GmailClient,
				app.Cfg,
				app.Logger,
				cohortID,
			)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Style assessment requests completed!\n\n")

			if len(result.SentForms) > 0 {
				fmt.Printf("Forms sent to %d trainees:\n", len(result.SentForms))
				for _, sf := range result.SentForms {
					fmt.Printf("  ✓ %s (%s)\n", sf.TraineeName, sf.Email)
				}
				fmt.Println()
			}

			if len(result.FailedEmails) > 0 {
				fmt.Printf("⚠️  Failed to send %d emails:\n", len(result.FailedEmails))
				for _, fe := range result.FailedEmails {
					fmt.Printf("  ✗ %s (%s): %s\n", fe.TraineeName, fe.Email, fe.Error)
				}
				fmt.Println()
			}

			if result.AlreadyInvited > 0 {
				fmt.Printf("%d trainees already invited.\n", result.AlreadyInvited)
			}

			if len(result.SentForms) == 0 && len(result.FailedEmails) == 0 {
				fmt.Println("No new forms to send - all trainees already have invitations.")
			}

			return nil
		},
	}
}
