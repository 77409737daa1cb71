package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/db"
)

// mockNotifyGroupsStore implements NotifyGroupsStore for testing
type mockNotifyGroupsStore struct {
	cohorts    []db.Cohort
	trainees   []db.Trainee
	assignment *db.Assignment
	members    []db.AssignmentMember
}

func (m *mockNotifyGroupsStore) GetCohorts(ctx context.Context) ([]db.Cohort, error) {
	return m.cohorts, nil
}

func (m *mockNotifyGroupsStore) GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error) {
	return m.trainees, nil
}

func (m *mockNotifyGroupsStore) GetLatestAssignment(ctx context.Context, cohortID string) (*db.Assignment, []db.AssignmentMember, []db.AssignmentWarning, error) {
	return m.assignment, m.members, nil, nil
}

// recordingEmailClient captures the full content of sent emails
type recordingEmailClient struct {
	sent    map[string]string // recipient -> body
	failFor map[string]error
}

func (m *recordingEmailClient) SendEmail(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	if m.sent == nil {
		m.sent = make(map[string]string)
	}
	m.sent[to] = body
	return nil
}

func notifyTestStore() *mockNotifyGroupsStore {
	return &mockNotifyGroupsStore{
		cohorts: []db.Cohort{
			{ID: "cohort-1", Name: "Spring 2025", Start: "2025-03-03"},
		},
		trainees: []db.Trainee{
			{ID: "alice", CohortID: "cohort-1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Status: "active"},
			{ID: "bob", CohortID: "cohort-1", FirstName: "Bob", LastName: "Jones", Email: "bob@example.com", Status: "active"},
			{ID: "charlie", CohortID: "cohort-1", FirstName: "Charlie", LastName: "Brown", Email: "charlie@example.com", Status: "active"},
		},
		assignment: &db.Assignment{ID: "assign-1", CohortID: "cohort-1", NumGroups: 2, Seed: 42},
		members: []db.AssignmentMember{
			{AssignmentID: "assign-1", GroupIndex: 0, TraineeID: "alice"},
			{AssignmentID: "assign-1", GroupIndex: 0, TraineeID: "charlie"},
			{AssignmentID: "assign-1", GroupIndex: 1, TraineeID: "bob"},
		},
	}
}

func TestNotifyGroups_EmailsEveryMember(t *testing.T) {
	store := notifyTestStore()
	email := &recordingEmailClient{}

	result, err := NotifyGroups(context.Background(), store, email, zap.NewNop(), "cohort-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Sent, 3)
	assert.Empty(t, result.FailedEmails)
	require.Len(t, email.sent, 3)

	// Alice's email names her group and her groupmate
	assert.Contains(t, email.sent["alice@example.com"], "Group 1")
	assert.Contains(t, email.sent["alice@example.com"], "Charlie Brown")
	assert.NotContains(t, email.sent["alice@example.com"], "Bob Jones")

	// Bob is alone in Group 2
	assert.Contains(t, email.sent["bob@example.com"], "Group 2")
	assert.NotContains(t, email.sent["bob@example.com"], "groupmates")
}

func TestNotifyGroups_SendFailureCollected(t *testing.T) {
	store := notifyTestStore()
	email := &recordingEmailClient{
		failFor: map[string]error{"bob@example.com": errors.New("mailbox full")},
	}

	result, err := NotifyGroups(context.Background(), store, email, zap.NewNop(), "cohort-1")
	require.NoError(t, err, "One bad address must not abort the rest")

	assert.Len(t, result.Sent, 2)
	require.Len(t, result.FailedEmails, 1)
	assert.Equal(t, "bob", result.FailedEmails[0].TraineeID)
	assert.Contains(t, result.FailedEmails[0].Error, "mailbox full")
}

func TestNotifyGroups_MissingEmailAddress(t *testing.T) {
	store := notifyTestStore()
	store.trainees[0].Email = ""
	email := &recordingEmailClient{}

	result, err := NotifyGroups(context.Background(), store, email, zap.NewNop(), "cohort-1")
	require.NoError(t, err)

	assert.Len(t, result.Sent, 2)
	require.Len(t, result.FailedEmails, 1)
	assert.Equal(t, "alice", result.FailedEmails[0].TraineeID)
}

func TestNotifyGroups_NoAssignment(t *testing.T) {
	store := notifyTestStore()
	store.assignment = nil
	store.members = nil

	result, err := NotifyGroups(context.Background(), store, &recordingEmailClient{}, zap.NewNop(), "cohort-1")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "run balanceGroups first")
}
