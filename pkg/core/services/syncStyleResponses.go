package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/db"
)

// StyleSyncResult represents the result of syncing form responses
type StyleSyncResult struct {
	Cohort  *db.Cohort
	Updated []formsclient.StyleResponse
	Pending int
}

// StyleSyncStore defines the database operations needed for syncing responses
type StyleSyncStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error)
	UpsertStyleAssessment(ctx context.Context, assessment *db.StyleAssessment) error
}

// StyleResponsesClient defines the operations needed to read form responses
type StyleResponsesClient interface {
	GetStyleResponse(formID, traineeID, traineeName string) (*formsclient.StyleResponse, error)
}

// SyncStyleResponses pulls learning style form responses for every invited
// trainee without a recorded style and stores the answers
func SyncStyleResponses(
	ctx context.Context,
	database StyleSyncStore,
	formsClient StyleResponsesClient,
	logger *zap.Logger,
	cohortID string,
) (*StyleSyncResult, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Syncing style responses", zap.String("cohort_id", cohort.ID))

	trainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	namesByID := make(map[string]string, len(trainees))
	for _, t := range trainees {
		namesByID[t.ID] = t.FirstName + " " + t.LastName
	}

	assessments, err := database.GetStyleAssessments(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch style assessments: %w", err)
	}

	result := &StyleSyncResult{
		Cohort:  cohort,
		Updated: []formsclient.StyleResponse{},
	}

	for _, a := range assessments {
		// Only invited trainees who haven't answered yet need a poll
		if !a.FormSent || a.FormID == "" || a.PrimaryStyle != "" {
			continue
		}

		response, err := formsClient.GetStyleResponse(a.FormID, a.TraineeID, namesByID[a.TraineeID])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch response for trainee %s: %w", a.TraineeID, err)
		}

		if !response.HasResponded || response.Primary == "" {
			result.Pending++
			continue
		}

		updated := a
		updated.PrimaryStyle = string(response.Primary)
		if err := database.UpsertStyleAssessment(ctx, &updated); err != nil {
			return nil, fmt.Errorf("failed to store style for trainee %s: %w", a.TraineeID, err)
		}

		logger.Debug("Recorded learning style",
			zap.String("trainee_id", a.TraineeID),
			zap.String("style", updated.PrimaryStyle))

		result.Updated = append(result.Updated, *response)
	}

	logger.Info("Style response sync complete",
		zap.Int("updated", len(result.Updated)),
		zap.Int("pending", result.Pending))

	return result, nil
}
