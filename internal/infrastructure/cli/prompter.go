package cli

import (
	"github.com/AlecAivazis/survey/v2"

	configapp "github.com/doeshing/askcmd/internal/application/config"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// SurveyPrompter asks for the credential and model on the terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter constructs a prompter on stdio.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// AskConfig implements ports.SetupPrompter. Fields already set in defaults
// are only asked for when empty.
func (p *SurveyPrompter) AskConfig(defaults domain.Config) (domain.Config, error) {
	answers := struct {
		APIKey string `survey:"api_key"`
		Model  string `survey:"model"`
	}{
		APIKey: defaults.APIKey,
		Model:  defaults.Model,
	}

	var questions []*survey.Question
	if defaults.APIKey == "" {
		questions = append(questions, &survey.Question{
			Name:     "api_key",
			Prompt:   &survey.Password{Message: "Please enter your OpenAI API key:"},
			Validate: configapp.Credential,
		})
	}
	model := defaults.Model
	if model == "" {
		model = domain.DefaultModel
	}
	questions = append(questions, &survey.Question{
		Name: "model",
		Prompt: &survey.Input{
			Message: "Please enter the model name:",
			Default: model,
		},
		Validate: configapp.ModelName,
	})

	if err := survey.Ask(questions, &answers, p.opts...); err != nil {
		return domain.Config{}, err
	}
	return domain.Config{APIKey: answers.APIKey, Model: answers.Model}.Normalized(), nil
}

var _ ports.SetupPrompter = (*SurveyPrompter)(nil)
