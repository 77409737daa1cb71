package db

// Cohort represents a database cohort record
type Cohort struct {
	ID           string
	Name         string
	Start        string
	SessionRule  string
	SessionCount int
}

// Trainee represents a database trainee record, scoped to a cohort
type Trainee struct {
	ID         string
	CohortID   string
	FirstName  string
	LastName   string
	Email      string
	Status     string
	HomeAgency string
}

// StyleAssessment represents a trainee's learning style assessment record.
// At most one record exists per trainee.
type StyleAssessment struct {
	TraineeID    string
	CohortID     string
	PrimaryStyle string
	FormID       string
	FormURL      string
	FormSent     bool
}

// AvoidancePreference represents a pairwise grouping preference record
type AvoidancePreference struct {
	ID         string
	CohortID   string
	TraineeIDA string
	TraineeIDB string
	Kind       string
}

// Assignment represents a group assignment header record
type Assignment struct {
	ID        string
	CohortID  string
	NumGroups int
	Seed      int64
	CreatedAt string
}

// AssignmentMember represents one trainee's placement within an assignment
type AssignmentMember struct {
	AssignmentID string
	GroupIndex   int
	TraineeID    string
}

// AssignmentWarning represents one unresolved conflict warning for an assignment
type AssignmentWarning struct {
	AssignmentID string
	Position     int
	Message      string
}
