package db

import "context"

// CohortStore defines the interface for cohort database operations
type CohortStore interface {
	GetCohorts(ctx context.Context) ([]Cohort, error)
	InsertCohort(ctx context.Context, cohort *Cohort) error
}

// TraineeStore defines the interface for trainee database operations
type TraineeStore interface {
	GetTrainees(ctx context.Context, cohortID string) ([]Trainee, error)
	UpsertTrainees(ctx context.Context, trainees []Trainee) error
}

// AssessmentStore defines the interface for style assessment operations
type AssessmentStore interface {
	GetStyleAssessments(ctx context.Context, cohortID string) ([]StyleAssessment, error)
	UpsertStyleAssessment(ctx context.Context, assessment *StyleAssessment) error
}

// PreferenceStore defines the interface for avoidance preference operations
type PreferenceStore interface {
	GetAvoidancePreferences(ctx context.Context, cohortID string) ([]AvoidancePreference, error)
	InsertAvoidancePreference(ctx context.Context, pref *AvoidancePreference) error
}

// AssignmentStore defines the interface for group assignment operations.
// InsertAssignment persists the header, members and warnings atomically.
type AssignmentStore interface {
	InsertAssignment(ctx context.Context, assignment *Assignment, members []AssignmentMember, warnings []AssignmentWarning) error
	GetLatestAssignment(ctx context.Context, cohortID string) (*Assignment, []AssignmentMember, []AssignmentWarning, error)
}

// Database defines the interface for all database operations,
// implemented by postgres.DB
type Database interface {
	CohortStore
	TraineeStore
	AssessmentStore
	PreferenceStore
	AssignmentStore
}
