package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rowanhart/cohortly/pkg/core/services"
)

// DefineCohortCmd creates the defineCohort command
func DefineCohortCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defineCohort <name> <start_date> <session_count>",
		Short: "Define a new cohort with a session schedule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			start, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}

			sessionCount, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("session_count must be a number: %w", err)
			}

			rule, _ := cmd.Flags().GetString("rule")
			if rule == "" {
				rule = app.Cfg.DefaultSessionRule
			}

			result, err := services.DefineCohort(app.Ctx, app.Database, app.Logger, name, start, rule, sessionCount)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Cohort created successfully!\n\n")
			fmt.Printf("Cohort ID:     %s\n", result.Cohort.ID)
			fmt.Printf("Name:          %s\n", result.Cohort.Name)
			fmt.Printf("Start Date:    %s\n", result.Cohort.Start)
			fmt.Printf("Session Count: %d\n\n", result.Cohort.SessionCount)

			fmt.Printf("Session Dates:\n")
			for i, date := range result.SessionDates {
				fmt.Printf("  %2d. %s\n", i+1, date.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("rule", "", "Session recurrence rule (defaults to the configured rule)")

	return cmd
}
