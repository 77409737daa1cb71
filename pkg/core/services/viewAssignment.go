package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/db"
)

// AssignmentView is the latest assignment for a cohort with member names resolved
type AssignmentView struct {
	Cohort     *db.Cohort
	Assignment *db.Assignment

	// Groups holds member display labels per group index
	Groups [][]string

	Warnings []string
}

// ViewAssignmentStore defines the database operations needed for viewing an assignment
type ViewAssignmentStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetLatestAssignment(ctx context.Context, cohortID string) (*db.Assignment, []db.AssignmentMember, []db.AssignmentWarning, error)
}

// ViewAssignment fetches the most recent assignment for a cohort
func ViewAssignment(
	ctx context.Context,
	database ViewAssignmentStore,
	logger *zap.Logger,
	cohortID string,
) (*AssignmentView, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching latest assignment", zap.String("cohort_id", cohort.ID))

	assignment, members, warnings, err := database.GetLatestAssignment(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("no assignment found for cohort %s - run balanceGroups first", cohort.ID)
	}

	trainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	labels := make(map[string]string, len(trainees))
	for _, t := range trainees {
		labels[t.ID] = fmt.Sprintf("%s %s (%s)", t.FirstName, t.LastName, t.ID)
	}

	groups := make([][]string, assignment.NumGroups)
	for i := range groups {
		groups[i] = []string{}
	}
	for _, m := range members {
		label, ok := labels[m.TraineeID]
		if !ok {
			// Trainee removed from the roster since the assignment was made
			label = m.TraineeID
		}
		groups[m.GroupIndex] = append(groups[m.GroupIndex], label)
	}

	warningMessages := make([]string, len(warnings))
	for i, w := range warnings {
		warningMessages[i] = w.Message
	}

	return &AssignmentView{
		Cohort:     cohort,
		Assignment: assignment,
		Groups:     groups,
		Warnings:   warningMessages,
	}, nil
}
