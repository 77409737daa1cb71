package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rowanhart/cohortly/pkg/db"
)

// SentNotification represents a group notification email that was sent
type SentNotification struct {
	TraineeID  string
	Email      string
	GroupIndex int
}

// NotifyGroupsResult represents the result of notifying a cohort
type NotifyGroupsResult struct {
	Cohort       *db.Cohort
	Sent         []SentNotification
	FailedEmails []FailedEmail
}

// NotifyGroupsStore defines the database operations needed for notifications
type NotifyGroupsStore interface {
	GetCohorts(ctx context.Context) ([]db.Cohort, error)
	GetTrainees(ctx context.Context, cohortID string) ([]db.Trainee, error)
	GetLatestAssignment(ctx context.Context, cohortID string) (*db.Assignment, []db.AssignmentMember, []db.AssignmentWarning, error)
}

// NotifyGroups emails every trainee in the cohort's latest assignment their
// group number and groupmates. Send failures are collected, not fatal, so one
// bad address doesn't strand the rest of the cohort.
func NotifyGroups(
	ctx context.Context,
	database NotifyGroupsStore,
	emailClient EmailClient,
	logger *zap.Logger,
	cohortID string,
) (*NotifyGroupsResult, error) {
	cohort, err := resolveCohort(ctx, database, cohortID)
	if err != nil {
		return nil, err
	}

	logger.Info("Notifying groups", zap.String("cohort_id", cohort.ID))

	assignment, members, _, err := database.GetLatestAssignment(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("no assignment found for cohort %s - run balanceGroups first", cohort.ID)
	}

	trainees, err := database.GetTrainees(ctx, cohort.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainees: %w", err)
	}

	traineesByID := make(map[string]db.Trainee, len(trainees))
	for _, t := range trainees {
		traineesByID[t.ID] = t
	}

	// Group members by group index so each email can list groupmates
	groupMembers := make([][]db.AssignmentMember, assignment.NumGroups)
	for _, m := range members {
		groupMembers[m.GroupIndex] = append(groupMembers[m.GroupIndex], m)
	}

	result := &NotifyGroupsResult{
		Cohort:       cohort,
		Sent:         []SentNotification{},
		FailedEmails: []FailedEmail{},
	}

	for groupIndex, group := range groupMembers {
		for _, m := range group {
			trainee, ok := traineesByID[m.TraineeID]
			if !ok {
				logger.Warn("Assigned trainee missing from roster", zap.String("trainee_id", m.TraineeID))
				continue
			}

			if trainee.Email == "" {
				result.FailedEmails = append(result.FailedEmails, FailedEmail{
					TraineeID:   trainee.ID,
					TraineeName: trainee.FirstName + " " + trainee.LastName,
					Error:       "no email address on roster",
				})
				continue
			}

			body := buildNotificationBody(trainee, groupIndex, group, traineesByID)
			subject := fmt.Sprintf("%s: your group assignment", cohort.Name)

			if err := emailClient.SendEmail(trainee.Email, subject, body); err != nil {
				logger.Warn("Failed to send notification",
					zap.String("trainee_id", trainee.ID),
					zap.Error(err))
				result.FailedEmails = append(result.FailedEmails, FailedEmail{
					TraineeID:   trainee.ID,
					TraineeName: trainee.FirstName + " " + trainee.LastName,
					Email:       trainee.Email,
					Error:       err.Error(),
				})
				continue
			}

			result.Sent = append(result.Sent, SentNotification{
				TraineeID:  trainee.ID,
				Email:      trainee.Email,
				GroupIndex: groupIndex,
			})
		}
	}

	logger.Info("Group notifications complete",
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.FailedEmails)))

	return result, nil
}

// buildNotificationBody writes the email for one trainee, listing groupmates
func buildNotificationBody(trainee db.Trainee, groupIndex int, group []db.AssignmentMember, traineesByID map[string]db.Trainee) string {
	var mates []string
	for _, m := range group {
		if m.TraineeID == trainee.ID {
			continue
		}
		if mate, ok := traineesByID[m.TraineeID]; ok {
			mates = append(mates, mate.FirstName+" "+mate.LastName)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYou have been placed in Group %d.\n", trainee.FirstName, groupIndex+1)
	if len(mates) > 0 {
		fmt.Fprintf(&b, "\nYour groupmates are:\n")
		for _, mate := range mates {
			fmt.Fprintf(&b, "  - %s\n", mate)
		}
	}
	fmt.Fprintf(&b, "\nSee you at the first session!\n")
	return b.String()
}
