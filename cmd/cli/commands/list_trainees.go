package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.uber.org/zap"
)

// ListTraineesCmd creates the listTrainees command
func ListTraineesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTrainees",
		Short: "List all trainees from the roster sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trainees, err := app.SheetsClient.ListTrainees(app.Cfg)
			if err != nil {
				return fmt.Errorf("failed to list trainees: %w", err)
			}

			app.Logger.Info("Trainees fetched successfully", zap.Int("count", len(trainees)))

			fmt.Printf("\nFound %d trainees:\n\n", len(trainees))
			for _, t := range trainees {
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

			return nil
		},
	}
}
