package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/clients/formsclient"
	"github.com/rowanhart/cohortly/pkg/core/model"
	"github.com/rowanhart/cohortly/pkg/db"
)

// mockStyleSyncStore implements StyleSyncStore for testing
type mockStyleSyncStore struct {
	cohorts             []db.Cohort
	trainees            []db.Trainee
	assessments         []db.StyleAssessment
	upsertedAssessments []db.StyleAssessment
}

func (m *mockStyleSyncStore) GetCohorts(ctx context.Context) ([]db.Cohort, error) {
	return m.cohorts, nil
}

func (m *mockStyleSyncStore) GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error) {
	return m.trainees, nil
}

func (m *mockStyleSyncStore) GetStyleAssessments(ctx context.Context, cohortID string) ([]db.StyleAssessment, error) {
	return m.assessments, nil
}

func (m *mockStyleSyncStore) UpsertStyleAssessment(ctx context.Context, assessment *db.StyleAssessment) error {
	m.upsertedAssessments = append(m.upsertedAssessments, *assessment)
	return nil
}

// mockStyleResponsesClient implements StyleResponsesClient for testing
type mockStyleResponsesClient struct {
	responses map[string]*formsclient.StyleResponse // keyed by form ID
	getErr    error
}

func (m *mockStyleResponsesClient) GetStyleResponse(formID, traineeID, traineeName string) (*formsclient.StyleResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if resp, ok := m.responses[formID]; ok {
		return resp, nil
	}
	return &formsclient.StyleResponse{
		TraineeID:    traineeID,
		TraineeName:  traineeName,
		HasResponded: false,
	}, nil
}

func styleSyncTestStore() *mockStyleSyncStore {
	return &mockStyleSyncStore{
		cohorts: []db.Cohort{
			{ID: "cohort-1", Name: "Spring 2025", Start: "2025-03-03"},
		},
		trainees: []db.Trainee{
			{ID: "alice", CohortID: "cohort-1", FirstName: "Alice", LastName: "Smith", Status: "active"},
			{ID: "bob", CohortID: "cohort-1", FirstName: "Bob", LastName: "Jones", Status: "active"},
			{ID: "charlie", CohortID: "cohort-1", FirstName: "Charlie", LastName: "Brown", Status: "active"},
		},
		assessments: []db.StyleAssessment{
			{TraineeID: "alice", CohortID: "cohort-1", FormID: "form-alice", FormSent: true},
			{TraineeID: "bob", CohortID: "cohort-1", FormID: "form-bob", FormSent: true},
			{TraineeID: "charlie", CohortID: "cohort-1", FormID: "form-charlie", FormSent: true, PrimaryStyle: "visual"},
		},
	}
}

func TestSyncStyleResponses_RecordsAnswers(t *testing.T) {
	store := styleSyncTestStore()
	forms := &mockStyleResponsesClient{
		responses: map[string]*formsclient.StyleResponse{
			"form-alice": {TraineeID: "alice", HasResponded: true, Primary: model.StyleAudio},
		},
	}

	result, err := SyncStyleResponses(context.Background(), store, forms, zap.NewNop(), "cohort-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "alice", result.Updated[0].TraineeID)
	assert.Equal(t, 1, result.Pending, "Bob hasn't answered yet")

	require.Len(t, store.upsertedAssessments, 1)
	assert.Equal(t, "alice", store.upsertedAssessments[0].TraineeID)
	assert.Equal(t, "audio", store.upsertedAssessments[0].PrimaryStyle)
	assert.True(t, store.upsertedAssessments[0].FormSent, "Syncing must not clear the invitation flag")
}

func TestSyncStyleResponses_SkipsRecordedStyles(t *testing.T) {
	store := styleSyncTestStore()
	forms := &mockStyleResponsesClient{
		responses: map[string]*formsclient.StyleResponse{
			"form-charlie": {TraineeID: "charlie", HasResponded: true, Primary: model.StyleKinesthetic},
		},
	}

	result, err := SyncStyleResponses(context.Background(), store, forms, zap.NewNop(), "cohort-1")
	require.NoError(t, err)

	// Charlie already has a style on record, so his form is never polled
	assert.Empty(t, result.Updated)
	assert.Empty(t, store.upsertedAssessments)
}

func TestSyncStyleResponses_SkipsUninvited(t *testing.T) {
	store := styleSyncTestStore()
	store.assessments = []db.StyleAssessment{
		{TraineeID: "alice", CohortID: "cohort-1", FormID: "form-alice", FormSent: false},
	}
	forms := &mockStyleResponsesClient{
		responses: map[string]*formsclient.StyleResponse{
			"form-alice": {TraineeID: "alice", HasResponded: true, Primary: model.StyleAudio},
		},
	}

	result, err := SyncStyleResponses(context.Background(), store, forms, zap.NewNop(), "cohort-1")
	require.NoError(t, err)
	assert.Empty(t, result.Updated)
	assert.Zero(t, result.Pending)
}

func TestSyncStyleResponses_FetchError(t *testing.T) {
	store := styleSyncTestStore()
	forms := &mockStyleResponsesClient{getErr: errors.New("forms API unavailable")}

	result, err := SyncStyleResponses(context.Background(), store, forms, zap.NewNop(), "cohort-1")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to fetch response")
}
