package postgres

import (
	"context"
	"fmt"

	"github.com/rowanhart/cohortly/pkg/db"
)

// GetAvoidancePreferences retrieves all avoidance preference records for a cohort
func (d *DB) GetAvoidancePreferences(ctx context.Context, cohortID string) ([]db.AvoidancePreference, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cohort_id, trainee_id_a, trainee_id_b, kind
		FROM avoidance_preference
		WHERE cohort_id = $1
	`, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to query avoidance preferences: %w", err)
	}
	defer rows.Close()

	var prefs []db.AvoidancePreference
	for rows.Next() {
		var p db.AvoidancePreference
		if err := rows.Scan(&p.ID, &p.CohortID, &p.TraineeIDA, &p.TraineeIDB, &p.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan avoidance preference: %w", err)
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating avoidance preferences: %w", err)
	}

	return prefs, nil
}

// InsertAvoidancePreference inserts a new avoidance preference record
func (d *DB) InsertAvoidancePreference(ctx context.Context, pref *db.AvoidancePreference) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO avoidance_preference (id, cohort_id, trainee_id_a, trainee_id_b, kind)
		VALUES ($1, $2, $3, $4, $5)
	`, pref.ID, pref.CohortID, pref.TraineeIDA, pref.TraineeIDB, pref.Kind)
	if err != nil {
		return fmt.Errorf("failed to insert avoidance preference: %w", err)
	}

	return nil
}
