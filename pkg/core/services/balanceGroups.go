package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/core/balancer"
	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/db"
)

// BalanceGroupsResult contains the balancing outcome and its persistence details
type BalanceGroupsResult struct {
	Cohort       *db.Cohort
	AssignmentID string
	Seed         int64
	Outcome      *balancer.Outcome

	// Trainees indexes the roster by ID for display purposes
	Trainees map[string]model.Trainee
}

// BalanceGroupsStore defines the database operations needed for balancing
type BalanceGroupsStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error)
	GetAvoidancePreferences(ctx context.Context, cohortID string) ([]db.AvoidancePreference, error)
	InsertAssignment(ctx context.Context, assignment *db.Assignment, members []db.AssignmentMember, warnings []db.AssignmentWarning) error
}

// BalanceGroups loads a cohort's roster, learning styles and avoidance
// preferences, runs the balancing engine with the given seed, and persists
// the resulting assignment unless dryRun is set.
//
// The engine itself accepts any roster, but an empty one is rejected here at
// the service boundary: balancing nobody is a caller mistake, not a run.
func BalanceGroups(
	ctx context.Context,
	database BalanceGroupsStore,
	logger *zap.Logger,
	cohortID string,
	numGroups int,
	seed int64,
	dryRun bool,
) (*BalanceGroupsResult, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Balancing groups",
		zap.String("cohort_id", cohort.ID),
		zap.Int("num_groups", numGroups),
		zap.Int64("seed", seed),
		zap.Bool("dry_run", dryRun))

	logger.Debug("Fetching trainees")
	allTrainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	trainees := filterActiveTrainees(allTrainees)
	logger.Debug("Filtered to active trainees", zap.Int("count", len(trainees)))

	if len(trainees) == 0 {
		return nil, fmt.Errorf("cohort %s has no active trainees - import a roster first", cohort.ID)
	}

	logger.Debug("Fetching style assessments")
	assessments, err := database.GetStyleAssessments(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch style assessments: %w", err)
	}

	logger.Debug("Fetching avoidance preferences")
	prefs, err := database.GetAvoidancePreferences(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch avoidance preferences: %w", err)
	}

	roster := toModelTrainees(trainees)
	input := balancer.Input{
		Roster:         roster,
		LearningStyles: toModelStyles(assessments),
		Avoidances:     toModelAvoidances(prefs),
		NumGroups:      numGroups,
	}

	outcome := balancer.Balance(input, rand.New(rand.NewSource(seed)))

	logger.Info("Balancing complete",
		zap.Ints("group_sizes", outcome.Stats.GroupSizes),
		zap.Int("conflicts", outcome.Stats.AvoidanceConflicts))
	for _, warning := range outcome.Warnings {
		logger.Warn(warning)
	}

	result := &BalanceGroupsResult{
		Cohort:   cohort,
		Seed:     seed,
		Outcome:  outcome,
		Trainees: make(map[string]model.Trainee, len(roster)),
	}
	for _, t := range roster {
		result.Trainees[t.ID] = t
	}

	if dryRun {
		logger.Info("Dry run - assignment not saved")
		return result, nil
	}

	assignment := &db.Assignment{
		ID:        uuid.New().String(),
		CohortID:  cohort.ID,
		NumGroups: numGroups,
		Seed:      seed,
	}

	var members []db.AssignmentMember
	for _, group := range outcome.Groups {
		for _, traineeID := range group.TraineeIDs {
			members = append(members, db.AssignmentMember{
				AssignmentID: assignment.ID,
				GroupIndex:   group.GroupIndex,
				TraineeID:    traineeID,
			})
		}
	}

	warnings := make([]db.AssignmentWarning, len(outcome.Warnings))
	for i, message := range outcome.Warnings {
		warnings[i] = db.AssignmentWarning{
			AssignmentID: assignment.ID,
			Position:     i,
			Message:      message,
		}
	}

	if err := database.InsertAssignment(ctx, assignment, members, warnings); err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}

	result.AssignmentID = assignment.ID
	logger.Info("Assignment saved", zap.String("assignment_id", assignment.ID))

	return result, nil
}
