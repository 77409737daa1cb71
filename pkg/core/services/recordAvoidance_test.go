package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/db"
)

// mockRecordAvoidanceStore implements RecordAvoidanceStore for testing
type mockRecordAvoidanceStore struct {
	cohorts       []db.Cohort
	trainees      []db.Trainee
	insertedPrefs []db.AvoidancePreference
	insertPrefErr error
}

func (m *mockRecordAvoidanceStore) GetCohorts(ctx context.Context) ([]db.Cohort, error) {
	return m.cohorts, nil
}

func (m *mockRecordAvoidanceStore) GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error) {
	return m.trainees, nil
}

func (m *mockRecordAvoidanceStore) InsertAvoidancePreference(ctx context.Context, pref *db.AvoidancePreference) error {
	if m.insertPrefErr != nil {
		return m.insertPrefErr
	}
	m.insertedPrefs = append(m.insertedPrefs, *pref)
	return nil
}

func avoidanceTestStore() *mockRecordAvoidanceStore {
	return &mockRecordAvoidanceStore{
		cohorts: []db.Cohort{
			{ID: "cohort-1", Name: "Spring 2025", Start: "2025-03-03"},
		},
		trainees: []db.Trainee{
			{ID: "alice", CohortID: "cohort-1", FirstName: "Alice", Status: "active"},
			{ID: "bob", CohortID: "cohort-1", FirstName: "Bob", Status: "active"},
		},
	}
}

func TestRecordAvoidance_Success(t *testing.T) {
	store := avoidanceTestStore()

	pref, err := RecordAvoidance(context.Background(), store, zap.NewNop(), "cohort-1", "alice", "bob", "avoid")
	require.NoError(t, err)
	require.NotNil(t, pref)

	assert.NotEmpty(t, pref.ID)
	assert.Equal(t, "cohort-1", pref.CohortID)
	assert.Equal(t, "alice", pref.TraineeIDA)
	assert.Equal(t, "bob", pref.TraineeIDB)
	assert.Equal(t, "avoid", pref.Kind)

	require.Len(t, store.insertedPrefs, 1)
	assert.Equal(t, pref.ID, store.insertedPrefs[0].ID)
}

func TestRecordAvoidance_PreferKind(t *testing.T) {
	store := avoidanceTestStore()

	pref, err := RecordAvoidance(context.Background(), store, zap.NewNop(), "cohort-1", "alice", "bob", "prefer")
	require.NoError(t, err)
	assert.Equal(t, "prefer", pref.Kind)
}

func TestRecordAvoidance_UnknownKind(t *testing.T) {
	store := avoidanceTestStore()

	pref, err := RecordAvoidance(context.Background(), store, zap.NewNop(), "cohort-1", "alice", "bob", "despise")
	assert.Error(t, err)
	assert.Nil(t, pref)
	assert.Contains(t, err.Error(), "unknown preference kind")
	assert.Empty(t, store.insertedPrefs)
}

func TestRecordAvoidance_SameTrainee(t *testing.T) {
	store := avoidanceTestStore()

	pref, err := RecordAvoidance(context.Background(), store, zap.NewNop(), "cohort-1", "alice", "alice", "avoid")
	assert.Error(t, err)
	assert.Nil(t, pref)
	assert.Empty(t, store.insertedPrefs)
}

func TestRecordAvoidance_TraineeNotOnRoster(t *testing.T) {
	store := avoidanceTestStore()

	pref, err := RecordAvoidance(context.Background(), store, zap.NewNop(), "cohort-1", "alice", "zed", "avoid")
	assert.Error(t, err)
	assert.Nil(t, pref)
	assert.Contains(t, err.Error(), "zed is not on the roster")
}
