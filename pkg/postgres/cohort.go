package postgres

import (
	"context"
	"fmt"

	"github.com/rowanhart/cohortly/pkg/db"
)

// GetCohorts retrieves all cohort records
func (d *DB) GetCohorts(ctx context.Context) ([]db.Cohort, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, start, session_rule, session_count
		FROM cohort
		ORDER BY start
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohorts: %w", err)
	}
	defer rows.Close()

	var cohorts []db.Cohort
	for rows.Next() {
		var c db.Cohort
		if err := rows.Scan(&c.ID, &c.Name, &c.Start, &c.SessionRule, &c.SessionCount); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohorts: %w", err)
	}

	return cohorts, nil
}

// InsertCohort inserts a new cohort record
func (d *DB) InsertCohort(ctx context.Context, cohort *db.Cohort) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO cohort (id, name, start, session_rule, session_count)
		VALUES ($1, $2, $3, $4, $5)
	`, cohort.ID, cohort.Name, cohort.Start, cohort.SessionRule, cohort.SessionCount)
	if err != nil {
		return fmt.Errorf("failed to insert cohort: %w", err)
	}

	return nil
}
