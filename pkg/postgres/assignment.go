package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rowanhart/cohortly/pkg/db"
)

// InsertAssignment persists an assignment header with its member and warning
// rows in a single transaction
func (d *DB) InsertAssignment(
	ctx context.Context,
	assignment *db.Assignment,
	members []db.AssignmentMember,
	warnings []db.AssignmentWarning,
) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO assignment (id, cohort_id, num_groups, seed)
		VALUES ($1, $2, $3, $4)
	`, assignment.ID, assignment.CohortID, assignment.NumGroups, assignment.Seed)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	for _, m := range members {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment_member (assignment_id, group_index, trainee_id)
			VALUES ($1, $2, $3)
		`, m.AssignmentID, m.GroupIndex, m.TraineeID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment member: %w", err)
		}
	}

	for _, w := range warnings {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment_warning (assignment_id, position, message)
			VALUES ($1, $2, $3)
		`, w.AssignmentID, w.Position, w.Message)
		if err != nil {
			return fmt.Errorf("failed to insert assignment warning: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetLatestAssignment retrieves the most recent assignment for a cohort with
// its members and warnings. Returns nil without error if none exists.
func (d *DB) GetLatestAssignment(ctx context.Context, cohortID string) (*db.Assignment, []db.AssignmentMember, []db.AssignmentWarning, error) {
	var a db.Assignment
	err := d.pool.QueryRow(ctx, `
		SELECT id, cohort_id, num_groups, seed, created_at::TEXT
		FROM assignment
		WHERE cohort_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, cohortID).Scan(&a.ID, &a.CohortID, &a.NumGroups, &a.Seed, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query latest assignment: %w", err)
	}

	memberRows, err := d.pool.Query(ctx, `
		SELECT assignment_id, group_index, trainee_id
		FROM assignment_member
		WHERE assignment_id = $1
		ORDER BY group_index, trainee_id
	`, a.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query assignment members: %w", err)
	}
	defer memberRows.Close()

	var members []db.AssignmentMember
	for memberRows.Next() {
		var m db.AssignmentMember
		if err := memberRows.Scan(&m.AssignmentID, &m.GroupIndex, &m.TraineeID); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan assignment member: %w", err)
		}
		members = append(members, m)
	}
	if err := memberRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating assignment members: %w", err)
	}

	warningRows, err := d.pool.Query(ctx, `
		SELECT assignment_id, position, message
		FROM assignment_warning
		WHERE assignment_id = $1
		ORDER BY position
	`, a.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query assignment warnings: %w", err)
	}
	defer warningRows.Close()

	var warnings []db.AssignmentWarning
	for warningRows.Next() {
		var w db.AssignmentWarning
		if err := warningRows.Scan(&w.AssignmentID, &w.Position, &w.Message); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan assignment warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	if err := warningRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating assignment warnings: %w", err)
	}

	return &a, members, warnings, nil
}
