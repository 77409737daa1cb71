package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/db"
)

// CohortStore defines the cohort lookup operations shared by most services
type CohortStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
}

// resolveCohort returns the cohort with the given ID, or the latest cohort
// (by start date) when cohortID is empty
func resolveCohort(ctx context.Context, database CohortStore, cohortID string) (*db.Cohort, error) {
	cohorts, err := database.GetCohorts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cohorts: %w", err)
	}

	if len(cohorts) == 0 {
		return nil, fmt.Errorf("no cohorts found - please define a cohort first")
	}

	if cohortID == "" {
		latest := findLatestCohort(cohorts)
		return &latest, nil
	}

	for _, c := range cohorts {
		if c.ID == cohortID {
			return &c, nil
		}
	}

	return nil, fmt.Errorf("cohort %s not found", cohortID)
}

// findLatestCohort returns the cohort with the latest start date.
// Ties are broken by list order.
func findLatestCohort(cohorts []db.Cohort) db.Cohort {
	latest := cohorts[0]
	for _, c := range cohorts[1:] {
		if c.Start > latest.Start {
			latest = c
		}
	}
	return latest
}

// filterActiveTrainees returns trainees whose status is "active" (case-insensitive)
func filterActiveTrainees(trainees []db.Trainee) []db.Trainee {
	active := make([]db.Trainee, 0, len(trainees))
	for _, t := range trainees {
		if strings.EqualFold(t.Status, "active") {
			active = append(active, t)
		}
	}
	return active
}

// toModelTrainees converts store trainee records to domain trainees
func toModelTrainees(trainees []db.Trainee) []model.Trainee {
	roster := make([]model.Trainee, len(trainees))
	for i, t := range trainees {
		roster[i] = model.Trainee{
			ID:         t.ID,
			FirstName:  t.FirstName,
			LastName:   t.LastName,
			Email:      t.Email,
			Status:     t.Status,
			HomeAgency: t.HomeAgency,
		}
	}
	return roster
}

// toModelStyles converts assessment records to domain learning styles,
// dropping records without a recognised style value
func toModelStyles(assessments []db.StyleAssessment) []model.LearningStyle {
	styles := make([]model.LearningStyle, 0, len(assessments))
	for _, a := range assessments {
		primary, ok := model.ParsePrimaryStyle(a.PrimaryStyle)
		if !ok {
			continue
		}
		styles = append(styles, model.LearningStyle{
			TraineeID: a.TraineeID,
			Primary:   primary,
		})
	}
	return styles
}

// toModelAvoidances converts preference records to domain preferences
func toModelAvoidances(prefs []db.AvoidancePreference) []model.AvoidancePreference {
	out := make([]model.AvoidancePreference, len(prefs))
	for i, p := range prefs {
		out[i] = model.AvoidancePreference{
			TraineeIDA: p.TraineeIDA,
			TraineeIDB: p.TraineeIDB,
			Kind:       p.Kind,
		}
	}
	return out
}

// sessionDates expands a session rrule into the first count occurrences
// on or after start
func sessionDates(start time.Time, rule string, count int) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid session rule: %w", err)
	}
	r.DTStart(start)

	dates := make([]time.Time, 0, count)
	next := r.Iterator()
	for len(dates) < count {
		d, ok := next()
		if !ok {
			break
		}
		dates = append(dates, d)
	}

	if len(dates) < count {
		return nil, fmt.Errorf("session rule yields only %d of %d requested sessions", len(dates), count)
	}

	return dates, nil
}
