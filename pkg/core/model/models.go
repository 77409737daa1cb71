package model

// PrimaryStyle is a trainee's self-assessed primary learning style
type PrimaryStyle string

// Learning style values as recorded by the assessment form
const (
	StyleAudio       PrimaryStyle = "audio"
	StyleVisual      PrimaryStyle = "visual"
	StyleKinesthetic PrimaryStyle = "kinesthetic"
)

// StyleUnassessed labels trainees with no recorded learning style in reports
const StyleUnassessed = "unassessed"

// ParsePrimaryStyle maps a form answer to a PrimaryStyle.
// Returns false for answers that don't correspond to a known style.
func ParsePrimaryStyle(s string) (PrimaryStyle, bool) {
	switch PrimaryStyle(s) {
	case StyleAudio, StyleVisual, StyleKinesthetic:
		return PrimaryStyle(s), true
	}
	return "", false
}

// Trainee represents an individual trainee on a cohort roster
type Trainee struct {
	ID          string
	FirstName   string
	LastName    string
	DisplayName string
	Email       string
	Status      string

	// HomeAgency is the trainee's sending organisation.
	// Empty for unaffiliated trainees.
	HomeAgency string
}

// LearningStyle is a trainee's assessment result (at most one per trainee)
type LearningStyle struct {
	TraineeID string
	Primary   PrimaryStyle
}

// Avoidance preference kinds
const (
	PreferenceAvoid  = "avoid"
	PreferencePrefer = "prefer"
)

// AvoidancePreference is a pairwise grouping preference between two trainees.
// The relation is undirected: if A avoids B, B is treated as avoiding A.
type AvoidancePreference struct {
	TraineeIDA string
	TraineeIDB string
	Kind       string
}
