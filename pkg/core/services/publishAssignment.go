package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/db"
)

// PublishedAssignment describes what was written to the assignment sheet
type PublishedAssignment struct {
	Cohort     *db.Cohort
	Assignment *db.Assignment
	SheetTitle string
	RowCount   int
}

// PublishAssignmentStore defines the database operations needed for publishing
type PublishAssignmentStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetLatestAssignment(ctx context.Context, cohortID string) (*db.Assignment, []db.AssignmentMember, []db.AssignmentWarning, error)
}

// AssignmentPublisher defines the sheet operations needed for publishing
type AssignmentPublisher interface {
	CreateSheet(spreadsheetID, sheetTitle string) (int64, error)
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
}

// PublishAssignment writes the cohort's latest group assignment to a new tab
// in the roster spreadsheet, one row per trainee. The tab is named after the
// assignment ID so repeated publishes never overwrite each other.
func PublishAssignment(
	ctx context.Context,
	database PublishAssignmentStore,
	publisher AssignmentPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	cohortID string,
) (*PublishedAssignment, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Publishing assignment", zap.String("cohort_id", cohort.ID))

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

	traineesByID := make(map[string]db.Trainee, len(trainees))
	for _, t := range trainees {
		traineesByID[t.ID] = t
	}

	rows := [][]interface{}{
		{"Group", "Trainee", "Unique ID", "Email", "Home agency"},
	}
	for _, m := range members {
		t, ok := traineesByID[m.TraineeID]
		if !ok {
			// Trainee removed from the roster since balancing; publish the ID
			rows = append(rows, []interface{}{m.GroupIndex + 1, m.TraineeID, m.TraineeID, "", ""})
			continue
		}
		rows = append(rows, []interface{}{
			m.GroupIndex + 1,
			t.FirstName + " " + t.LastName,
			t.ID,
			t.Email,
			t.HomeAgency,
		})
	}

	if len(warnings) > 0 {
		rows = append(rows, []interface{}{})
		rows = append(rows, []interface{}{"Warnings"})
		for _, w := range warnings {
			rows = append(rows, []interface{}{w.Message})
		}
	}

	sheetTitle := fmt.Sprintf("Groups %s", assignment.ID)

	logger.Debug("Creating assignment sheet", zap.String("title", sheetTitle))
	if _, err := publisher.CreateSheet(cfg.TraineeSheetID, sheetTitle); err != nil {
		return nil, fmt.Errorf("failed to create assignment sheet: %w", err)
	}

	logger.Debug("Appending assignment rows", zap.Int("rows", len(rows)))
	if err := publisher.AppendRows(cfg.TraineeSheetID, sheetTitle, rows); err != nil {
		return nil, fmt.Errorf("failed to append assignment rows: %w", err)
	}

	logger.Info("Assignment published",
		zap.String("assignment_id", assignment.ID),
		zap.String("sheet", sheetTitle),
		zap.Int("rows", len(rows)))

	return &PublishedAssignment{
		Cohort:     cohort,
		Assignment: assignment,
		SheetTitle: sheetTitle,
		RowCount:   len(rows),
	}, nil
}
