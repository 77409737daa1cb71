package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/db"
)

// mockStyleRequestStore implements StyleRequestStore for testing
type mockStyleRequestStore struct {
	cohorts             []db.Cohort
	trainees            []db.Trainee
	assessments         []db.StyleAssessment
	upsertedAssessments []db.StyleAssessment
	upsertErr           error
}

func (m *mockStyleRequestStore) GetCohorts(ctx context.Context) ([]db.Cohort, error) {
	return m.cohorts, nil
}

func (m *mockStyleRequestStore) GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error) {
	return m.trainees, nil
}

func (m *mockStyleRequestStore) GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error) {
	return m.assessments, nil
}

func (m *mockStyleRequestStore) UpsertStyleAssessment(ctx context.Context, assessment *db.StyleAssessment) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedAssessments = append(m.upsertedAssessments, *assessment)
	return nil
}

// mockStyleFormsClient implements StyleFormsClient for testing
type mockStyleFormsClient struct {
	created   []string
	createErr error
}

func (m *mockStyleFormsClient) CreateStyleForm(traineeName string) (*formsclient.StyleFormResult, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, traineeName)
	return &formsclient.StyleFormResult{
		FormID:       fmt.Sprintf("form-%d", len(m.created)),
		ResponderURI: fmt.Sprintf("https://forms.example/%d", len(m.created)),
	}, nil
}

// mockEmailClient implements EmailClient for testing
type mockEmailClient struct {
	sent    []string // recipient addresses in send order
	failFor map[string]error
}

func (m *mockEmailClient) SendEmail(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

func styleRequestTestStore() *mockStyleRequestStore {
	return &mockStyleRequestStore{
		cohorts: []db.Cohort{
			{ID: "cohort-1", Name: "Spring 2025", Start: "2025-03-03"},
		},
		trainees: []db.Trainee{
			{ID: "alice", CohortID: "cohort-1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Status: "active"},
			{ID: "bob", CohortID: "cohort-1", FirstName: "Bob", LastName: "Jones", Email: "bob@example.com", Status: "active"},
			{ID: "charlie", CohortID: "cohort-1", FirstName: "Charlie", LastName: "Brown", Email: "charlie@example.com", Status: "inactive"},
		},
	}
}

func TestRequestStyleAssessments_SendsInvitations(t *testing.T) {
	store := styleRequestTestStore()
	forms := &mockStyleFormsClient{}
	email := &mockEmailClient{}
	cfg := &config.Config{}

	result, err := RequestStyleAssessments(context.Background(), store, forms, email, cfg, zap.NewNop(), "cohort-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	// Only active trainees get a form
	assert.Len(t, result.SentForms, 2)
	assert.Len(t, forms.created, 2)
	assert.Contains(t, forms.created, "Alice Smith")
	assert.Contains(t, forms.created, "Bob Jones")
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, email.sent)

	// Each invitation is recorded as sent
	require.Len(t, store.upsertedAssessments, 2)
	for _, a := range store.upsertedAssessments {
		assert.True(t, a.FormSent)
		assert.NotEmpty(t, a.FormID)
		assert.Equal(t, "cohort-1", a.CohortID)
	}
}

func TestRequestStyleAssessments_SkipsAlreadyInvited(t *testing.T) {
	store := styleRequestTestStore()
	store.assessments = []db.StyleAssessment{
		{TraineeID: "alice", CohortID: "cohort-1", FormID: "form-old", FormSent: true},
	}
	forms := &mockStyleFormsClient{}
	email := &mockEmailClient{}

	result, err := RequestStyleAssessments(context.Background(), store, forms, email, &config.Config{}, zap.NewNop(), "cohort-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AlreadyInvited)
	assert.Len(t, result.SentForms, 1)
	assert.Equal(t, "bob", result.SentForms[0].TraineeID)
}

func TestRequestStyleAssessments_NoEmailAddress(t *testing.T) {
	store := styleRequestTestStore()
	store.trainees[0].Email = ""
	forms := &mockStyleFormsClient{}
	email := &mockEmailClient{}

	result, err := RequestStyleAssessments(context.Background(), store, forms, email, &config.Config{}, zap.NewNop(), "cohort-1")
	require.NoError(t, err)

	require.Len(t, result.FailedEmails, 1)
	assert.Equal(t, "alice", result.FailedEmails[0].TraineeID)
	assert.Len(t, result.SentForms, 1)

	// No form is created for a trainee who can't be reached
	assert.NotContains(t, forms.created, "Alice Smith")
}

func TestRequestStyleAssessments_SendFailureNotRecorded(t *testing.T) {
	store := styleRequestTestStore()
	forms := &mockStyleFormsClient{}
	email := &mockEmailClient{
		failFor: map[string]error{"alice@example.com": errors.New("mailbox full")},
	}

	result, err := RequestStyleAssessments(context.Background(), store, forms, email, &config.Config{}, zap.NewNop(), "cohort-1")
	require.NoError(t, err)

	require.Len(t, result.FailedEmails, 1)
	assert.Equal(t, "alice", result.FailedEmails[0].TraineeID)
	assert.Contains(t, result.FailedEmails[0].Error, "mailbox full")

	// A failed send must not be recorded, so the next run retries it
	for _, a := range store.upsertedAssessments {
		assert.NotEqual(t, "alice", a.TraineeID)
	}
}

func TestRequestStyleAssessments_FormCreationError(t *testing.T) {
	store := styleRequestTestStore()
	forms := &mockStyleFormsClient{createErr: errors.New("quota exceeded")}
	email := &mockEmailClient{}

	result, err := RequestStyleAssessments(context.Background(), store, forms, email, &config.Config{}, zap.NewNop(), "cohort-1")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to create style form")
}
