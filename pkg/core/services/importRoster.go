package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/db"
)

// ImportRosterResult represents the result of importing a roster
type ImportRosterResult struct {
	Cohort   *db.Cohort
	Trainees []model.Trainee
}

// ImportRosterStore defines the database operations needed for importing a roster
type ImportRosterStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	UpsertTrainees(ctx context.Context, trainees []db.Trainee) error
}

// TraineeClient defines the operations needed to fetch the roster sheet
type TraineeClient interface {
	ListTrainees(cfg *config.Config) ([]model.Trainee, error)
}

// ImportRoster reads the trainee roster from the configured sheet and upserts
// it into the store, scoped to the given cohort (latest cohort when empty)
func ImportRoster(
	ctx context.Context,
	database ImportRosterStore,
	traineeClient TraineeClient,
	cfg *config.Config,
	logger *zap.Logger,
	cohortID string,
) (*ImportRosterResult, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Importing roster", zap.String("cohort_id", cohort.ID), zap.String("cohort", cohort.Name))

	logger.Debug("Fetching trainees from sheet")
	trainees, err := traineeClient.ListTrainees(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}
	logger.Debug("Found trainees in sheet", zap.Int("count", len(trainees)))

	if len(trainees) == 0 {
		return nil, fmt.Errorf("roster sheet contains no trainees")
	}

	records := make([]db.Trainee, len(trainees))
	for i, t := range trainees {
		records[i] = db.Trainee{
			ID:         t.ID,
			CohortID:   cohort.ID,
			FirstName:  t.FirstName,
			LastName:   t.LastName,
			Email:      t.Email,
			Status:     t.Status,
			HomeAgency: t.HomeAgency,
		}
	}

	if err := database.UpsertTrainees(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to upsert trainees: %w", err)
	}

	logger.Info("Roster imported successfully",
		zap.String("cohort_id", cohort.ID),
		zap.Int("trainee_count", len(records)))

	return &ImportRosterResult{
		Cohort:   cohort,
		Trainees: trainees,
	}, nil
}
