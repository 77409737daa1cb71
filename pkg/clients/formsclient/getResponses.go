package formsclient

import (
	"fmt"
	"strings"

	"github.com/rowanhart/cohortly/pkg/core/model"
)

// StyleResponse represents a parsed learning style form response
type StyleResponse struct {
	TraineeID    string
	TraineeName  string
	HasResponded bool
	Primary      model.PrimaryStyle
}

// GetStyleResponse fetches and parses a trainee's learning style form response.
// Each form belongs to a single trainee, so only the first response is read.
func (c *Client) GetStyleResponse(formID, traineeID, traineeName string) (*StyleResponse, error) {
	responses, err := c.service.Forms.Responses.List(formID).PageSize(1).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list form responses: %w", err)
	}

	if len(responses.Responses) == 0 {
		return &StyleResponse{
			TraineeID:    traineeID,
			TraineeName:  traineeName,
			HasResponded: false,
		}, nil
	}

	response := responses.Responses[0]

	for _, answer := range response.Answers {
		if answer.TextAnswers == nil {
			continue
		}
		for _, textAnswer := range answer.TextAnswers.Answers {
			style, ok := parseStyleAnswer(textAnswer.Value)
			if !ok {
				continue
			}
			return &StyleResponse{
				TraineeID:    traineeID,
				TraineeName:  traineeName,
				HasResponded: true,
				Primary:      style,
			}, nil
		}
	}

	// Responded but no recognisable answer - treat as unassessed
	return &StyleResponse{
		TraineeID:    traineeID,
		TraineeName:  traineeName,
		HasResponded: true,
	}, nil
}

// parseStyleAnswer maps a form option back to a learning style.
// Option labels carry the style keyword in parentheses.
func parseStyleAnswer(answer string) (model.PrimaryStyle, bool) {
	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, string(model.StyleAudio)):
		return model.StyleAudio, true
	case strings.Contains(lower, string(model.StyleVisual)):
		return model.StyleVisual, true
	case strings.Contains(lower, string(model.StyleKinesthetic)):
		return model.StyleKinesthetic, true
	}
	return "", false
}
