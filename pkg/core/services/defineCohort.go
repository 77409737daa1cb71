package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/db"
)

// CohortResult represents the result of defining a new cohort
type CohortResult struct {
	Cohort       *db.Cohort
	SessionDates []time.Time
}

// DefineCohortStore defines the database operations needed to define a cohort
type DefineCohortStore interface {
	InsertCohort(ctx context.Context, cohort *db.Cohort) error
}

// DefineCohort creates a new cohort starting on the given date with a session
// schedule expanded from the rrule
func DefineCohort(
	ctx context.Context,
	database DefineCohortStore,
	logger *zap.Logger,
	name string,
	start time.Time,
	sessionRule string,
	sessionCount int,
) (*CohortResult, error) {
	if name == "" {
		return nil, fmt.Errorf("cohort name must not be empty")
	}
	if sessionCount <= 0 {
		return nil, fmt.Errorf("session count must be positive, got %d", sessionCount)
	}

	logger.Debug("Defining new cohort",
		zap.String("name", name),
		zap.String("session_rule", sessionRule),
		zap.Int("session_count", sessionCount))

	// Expand session dates before touching the database so an invalid rule
	// leaves no partial cohort behind
	dates, err := sessionDates(start, sessionRule, sessionCount)
	if err != nil {
		return nil, fmt.Errorf("failed to expand session schedule: %w", err)
	}

	cohort := &db.Cohort{
		ID:           uuid.New().String(),
		Name:         name,
		Start:        dates[0].Format("2006-01-02"),
		SessionRule:  sessionRule,
		SessionCount: sessionCount,
	}

	logger.Debug("Creating new cohort", zap.String("id", cohort.ID), zap.String("start", cohort.Start))

	if err := database.InsertCohort(ctx, cohort); err != nil {
		return nil, fmt.Errorf("failed to insert cohort: %w", err)
	}

	logger.Info("Cohort created successfully",
		zap.String("cohort_id", cohort.ID),
		zap.String("name", name),
		zap.String("first_session", dates[0].Format("2006-01-02")),
		zap.String("last_session", dates[len(dates)-1].Format("2006-01-02")))

	return &CohortResult{
		Cohort:       cohort,
		SessionDates: dates,
	}, nil
}
