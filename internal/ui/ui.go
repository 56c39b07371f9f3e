// Package ui wraps the interactive prompts shown before mutating a
// hosted repository.
package ui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user questions on the terminal. The asker field
// exists so tests can stub out survey.
type Prompter struct {
	asker func(p survey.Prompt, response any, opts ...survey.AskOpt) error
}

func NewPrompter() *Prompter {
	return &Prompter{asker: survey.AskOne}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}

	if err := p.asker(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}

	return confirmed, nil
}

// SelectRepository lets the user pick one repository name from the list.
// An empty list is an error so callers never act on a silent default.
func (p *Prompter) SelectRepository(names []string) (string, error) {
	if len(names) == 0 {
		return "", errNoRepositories
	}

	var selected string
	prompt := &survey.Select{
		Message: "Choose a repository:",
		Options: names,
	}

	if err := p.asker(prompt, &selected); err != nil {
		return "", fmt.Errorf("failed to get repository selection: %w", err)
	}

	return selected, nil
}
