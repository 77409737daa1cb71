package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/db"
)

// SentForm represents an assessment form that was created and emailed
type SentForm struct {
	TraineeID   string
	TraineeName string
	Email       string
	FormURL     string
}

// FailedEmail represents an email that could not be sent
type FailedEmail struct {
	TraineeID   string
	TraineeName string
	Email       string
	Error       string
}

// StyleRequestResult represents the result of requesting style assessments
type StyleRequestResult struct {
	Cohort         *db.Cohort
	SentForms      []SentForm
	FailedEmails   []FailedEmail
	AlreadyInvited int
}

// StyleRequestStore defines the database operations needed for requesting assessments
type StyleRequestStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error)
	UpsertStyleAssessment(ctx context.Context, assessment *db.StyleAssessment) error
}

// StyleFormsClient defines the operations needed to create assessment forms
type StyleFormsClient interface {
	CreateStyleForm(traineeName string) (*formsclient.StyleFormResult, error)
}

// EmailClient defines the operations needed to send emails
type EmailClient interface {
	SendEmail(to, subject, body string) error
}

// RequestStyleAssessments creates a learning style form for every active
// trainee in the cohort who has not been invited yet and emails them the link.
// Trainees without an email address are reported as failures, not skipped
// silently.
func RequestStyleAssessments(
	ctx context.Context,
	database StyleRequestStore,
	formsClient StyleFormsClient,
	emailClient EmailClient,
	cfg *config.Config,
	logger *zap.Logger,
	cohortID string,
) (*StyleRequestResult, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Requesting style assessments", zap.String("cohort_id", cohort.ID))

	logger.Debug("Fetching trainees")
	allTrainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	trainees := filterActiveTrainees(allTrainees)
	logger.Debug("Filtered to active trainees", zap.Int("count", len(trainees)))

	logger.Debug("Fetching existing assessments")
	assessments, err := database.GetStyleAssessments(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch style assessments: %w", err)
	}

	invited := make(map[string]bool)
	for _, a := range assessments {
		if a.FormSent {
			invited[a.TraineeID] = true
		}
	}

	result := &StyleRequestResult{
		Cohort:       cohort,
		SentForms:    []SentForm{},
		FailedEmails: []FailedEmail{},
	}

	for _, t := range trainees {
		if invited[t.ID] {
			result.AlreadyInvited++
			continue
		}

		name := t.FirstName + " " + t.LastName

		if t.Email == "" {
			logger.Warn("Trainee has no email address", zap.String("trainee_id", t.ID))
			result.FailedEmails = append(result.FailedEmails, FailedEmail{
				TraineeID:   t.ID,
				TraineeName: name,
				Error:       "no email address on roster",
			})
			continue
		}

		logger.Debug("Creating style form", zap.String("trainee_id", t.ID))
		form, err := formsClient.CreateStyleForm(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create style form for %s: %w", t.ID, err)
		}

		body := fmt.Sprintf(
			"Hi %s,\n\nBefore your cohort is split into groups we'd like to know how you learn best. "+
				"Please fill in this short form:\n\n%s\n\nThanks!",
			t.FirstName, form.ResponderURI)

		if err := emailClient.SendEmail(t.Email, "Learning style assessment", body); err != nil {
			logger.Warn("Failed to send assessment email",
				zap.String("trainee_id", t.ID),
				zap.Error(err))
			result.FailedEmails = append(result.FailedEmails, FailedEmail{
				TraineeID:   t.ID,
				TraineeName: name,
				Email:       t.Email,
				Error:       err.Error(),
			})
			continue
		}

		// Record the invitation only after the email went out so a failed
		// send is retried on the next run
		assessment := &db.StyleAssessment{
			TraineeID: t.ID,
			CohortID:  cohort.ID,
			FormID:    form.FormID,
			FormURL:   form.ResponderURI,
			FormSent:  true,
		}
		if err := database.UpsertStyleAssessment(ctx, assessment); err != nil {
			return nil, fmt.Errorf("failed to record assessment invitation for %s: %w", t.ID, err)
		}

		result.SentForms = append(result.SentForms, SentForm{
			TraineeID:   t.ID,
			TraineeName: name,
			Email:       t.Email,
			FormURL:     form.ResponderURI,
		})
	}

	logger.Info("Style assessment requests complete",
		zap.Int("sent", len(result.SentForms)),
		zap.Int("failed", len(result.FailedEmails)),
		zap.Int("already_invited", result.AlreadyInvited))

	return result, nil
}
