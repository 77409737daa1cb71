package postgres

import (
	"context"
	"fmt"

	"github.com/rowanhart/cohortly/pkg/db"
)

// GetTrainees retrieves all trainee records for a cohort
func (d *DB) GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cohort_id, first_name, last_name, email, status, home_agency
		FROM trainee
		WHERE cohort_id = $1
	`, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trainees: %w", err)
	}
	defer rows.Close()

	var trainees []db.Trainee
	for rows.Next() {
		var t db.Trainee
		var email, status, homeAgency *string
		if err := rows.Scan(&t.ID, &t.CohortID, &t.FirstName, &t.LastName, &email, &status, &homeAgency); err != nil {
			return nil, fmt.Errorf("failed to scan trainee: %w", err)
		}
		if email != nil {
			t.Email = *email
		}
		if status != nil {
			t.Status = *status
		}
		if homeAgency != nil {
			t.HomeAgency = *homeAgency
		}
		trainees = append(trainees, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trainees: %w", err)
	}

	return trainees, nil
}

// UpsertTrainees inserts trainee records, updating existing rows on ID conflict
func (d *DB) UpsertTrainees(ctx context.Context, trainees []db.Trainee) error {
	if len(trainees) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range trainees {
		var email, status, homeAgency *string
		if t.Email != "" {
			email = &t.Email
		}
		if t.Status != "" {
			status = &t.Status
		}
		if t.HomeAgency != "" {
			homeAgency = &t.HomeAgency
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO trainee (id, cohort_id, first_name, last_name, email, status, home_agency)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				cohort_id = EXCLUDED.cohort_id,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				email = EXCLUDED.email,
				status = EXCLUDED.status,
				home_agency = EXCLUDED.home_agency
		`, t.ID, t.CohortID, t.FirstName, t.LastName, email, status, homeAgency)
		if err != nil {
			return fmt.Errorf("failed to upsert trainee %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
