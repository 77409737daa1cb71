package formsclient

import (
	"fmt"

	"google.golang.org/api/forms/v1"
)

// StyleFormResult contains the created form details
type StyleFormResult struct {
	FormID       string
	ResponderURI string // The URL the trainee uses to fill out the form
}

// CreateStyleForm creates a Google Form for a trainee's learning style self-assessment.
// One form is created per trainee so responses can be attributed without asking for IDs.
func (c *Client) CreateStyleForm(traineeName string) (*StyleFormResult, error) {
	formTitle := fmt.Sprintf("Learning Style Assessment - %s", traineeName)

	form := &forms.Form{
		Info: &forms.Info{
			Title:         formTitle,
			DocumentTitle: formTitle,
		},
		Items: []*forms.Item{
			{
				Title:       "Which way of learning works best for you?",
				Description: "Pick the one that fits you most of the time",
				ItemId:      "primary_style_question",
				QuestionItem: &forms.QuestionItem{
					Question: &forms.Question{
						Required: true,
						ChoiceQuestion: &forms.ChoiceQuestion{
							Type: "RADIO",
							Options: []*forms.Option{
								{Value: "Listening and discussion (audio)"},
								{Value: "Diagrams and reading (visual)"},
								{Value: "Hands-on practice (kinesthetic)"},
							},
						},
					},
				},
			},
		},
	}

	createdForm, err := c.service.Forms.Create(form).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return &StyleFormResult{
		FormID:       createdForm.FormId,
		ResponderURI: createdForm.ResponderUri,
	}, nil
}
