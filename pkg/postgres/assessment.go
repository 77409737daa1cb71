package postgres

import (
	"context"
	"fmt"

	"github.com/rowanhart/cohortly/pkg/db"
)

// GetStyleAssessments retrieves all style assessment records for a cohort
func (d *DB) GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT trainee_id, cohort_id, primary_style, form_id, form_url, form_sent
		FROM style_assessment
		WHERE cohort_id = $1
	`, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to query style assessments: %w", err)
	}
	defer rows.Close()

	var assessments []db.StyleAssessment
	for rows.Next() {
		var a db.StyleAssessment
		var style, formID, formURL *string
		if err := rows.Scan(&a.TraineeID, &a.CohortID, &style, &formID, &formURL, &a.FormSent); err != nil {
			return nil, fmt.Errorf("failed to scan style assessment: %w", err)
		}
		if style != nil {
			a.PrimaryStyle = *style
		}
		if formID != nil {
			a.FormID = *formID
		}
		if formURL != nil {
			a.FormURL = *formURL
		}
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating style assessments: %w", err)
	}

	return assessments, nil
}

// UpsertStyleAssessment inserts or updates a trainee's assessment record
func (d *DB) UpsertStyleAssessment(ctx context.Context, assessment *db.StyleAssessment) error {
	var style, formID, formURL *string
	if assessment.PrimaryStyle != "" {
		style = &assessment.PrimaryStyle
	}
	if assessment.FormID != "" {
		formID = &assessment.FormID
	}
	if assessment.FormURL != "" {
		formURL = &assessment.FormURL
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO style_assessment (trainee_id, cohort_id, primary_style, form_id, form_url, form_sent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trainee_id) DO UPDATE SET
			primary_style = EXCLUDED.primary_style,
			form_id = EXCLUDED.form_id,
			form_url = EXCLUDED.form_url,
			form_sent = EXCLUDED.form_sent
	`, assessment.TraineeID, assessment.CohortID, style, formID, formURL, assessment.FormSent)
	if err != nil {
		return fmt.Errorf("failed to upsert style assessment for trainee %s: %w", assessment.TraineeID, err)
	}

	return nil
}
