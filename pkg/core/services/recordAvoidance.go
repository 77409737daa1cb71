package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/db"
)

// RecordAvoidanceStore defines the database operations needed for recording a preference
type RecordAvoidanceStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	InsertAvoidancePreference(ctx context.Context, pref *db.AvoidancePreference) error
}

// RecordAvoidance stores a pairwise grouping preference between two trainees.
// The relation is symmetric, so the pair is stored once in the given order.
func RecordAvoidance(
	ctx context.Context,
	database RecordAvoidanceStore,
	logger *zap.Logger,
	cohortID string,
	traineeIDA string,
	traineeIDB string,
	kind string,
) (*db.AvoidancePreference, error) {
	if kind != model.PreferenceAvoid && kind != model.PreferencePrefer {
		return nil, fmt.Errorf("unknown preference kind %q (expected %q or %q)",
			kind, model.PreferenceAvoid, model.PreferencePrefer)
	}
	if traineeIDA == traineeIDB {
		return nil, fmt.Errorf("a preference must name two different trainees")
	}

	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	trainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	known := make(map[string]bool, len(trainees))
	for _, t := range trainees {
		known[t.ID] = true
	}
	for _, id := range []string{traineeIDA, traineeIDB} {
		if !known[id] {
			return nil, fmt.Errorf("trainee %s is not on the roster of cohort %s", id, cohort.ID)
		}
	}

	pref := &db.AvoidancePreference{
		ID:         uuid.New().String(),
		CohortID:   cohort.ID,
		TraineeIDA: traineeIDA,
		TraineeIDB: traineeIDB,
		Kind:       kind,
	}

	if err := database.InsertAvoidancePreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to insert avoidance preference: %w", err)
	}

	logger.Info("Preference recorded",
		zap.String("cohort_id", cohort.ID),
		zap.String("trainee_a", traineeIDA),
		zap.String("trainee_b", traineeIDB),
		zap.String("kind", kind))

	return pref, nil
}
