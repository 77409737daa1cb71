package sheetsclient

import (
	"fmt"

	"github.com/rowanhart/cohortly/internal/config"
	"github.com/rowanhart/cohortly/pkg/core/model"
)

// Expected column names in the roster sheet
var traineeFields = []string{
	"Unique ID",
	"First name",
	"Last name",
	"Email",
	"Status",
	"Home agency",
}

// ListTrainees retrieves and parses the trainee roster from the configured spreadsheet
func (c *Client) ListTrainees(cfg *config.Config) ([]model.Trainee, error) {
	// Get raw data from spreadsheet
	values, err := c.GetValues(cfg.TraineeSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	// Parse trainees
	trainees, err := parseTrainees(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trainees: %w", err)
	}

	// Compute display names for all trainees (ensures uniqueness across entire list)
	ComputeDisplayNames(trainees)

	return trainees, nil
}

// ComputeDisplayNames calculates display names for a list of trainees based on uniqueness:
// - If first name is unique: use first name only
// - If first name + first letter of surname is unique: use "FirstName L."
// - Otherwise: use full name "FirstName LastName"
func ComputeDisplayNames(trainees []model.Trainee) {
	// Count occurrences of each first name
	firstNameCounts := make(map[string]int)
	for _, t := range trainees {
		firstNameCounts[t.FirstName]++
	}

	// Count occurrences of each "FirstName L." format
	firstNameInitialCounts := make(map[string]int)
	for _, t := range trainees {
		if t.LastName != "" {
			key := t.FirstName + " " + string(t.LastName[0]) + "."
			firstNameInitialCounts[key]++
		}
	}

	// Assign display names
	for i := range trainees {
		t := &trainees[i]

		// Try first name only
		if firstNameCounts[t.FirstName] == 1 {
			t.DisplayName = t.FirstName
			continue
		}

		// Try first name + initial
		if t.LastName != "" {
			initialKey := t.FirstName + " " + string(t.LastName[0]) + "."
			if firstNameInitialCounts[initialKey] == 1 {
				t.DisplayName = initialKey
				continue
			}
		}

		// Fall back to full name
		t.DisplayName = t.FirstName + " " + t.LastName
	}
}

// parseTrainees converts raw spreadsheet data into Trainee structs
func parseTrainees(raw [][]interface{}) ([]model.Trainee, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range traineeFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	// Helper to get field value from row
	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok {
			return ""
		}
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	// Parse data rows
	trainees := make([]model.Trainee, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		firstName := getField("First name", row)
		// Skip empty rows (rows with no first name)
		if firstName == "" {
			continue
		}

		id := getField("Unique ID", row)
		if id == "" {
			return nil, fmt.Errorf("missing unique ID for trainee in row %d", i)
		}

		trainee := model.Trainee{
			ID:         id,
			FirstName:  firstName,
			LastName:   getField("Last name", row),
			Email:      getField("Email", row),
			Status:     getField("Status", row),
			HomeAgency: getField("Home agency", row),
		}

		trainees = append(trainees, trainee)
	}

	return trainees, nil
}
