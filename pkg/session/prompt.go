package session

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrCancelled is returned by a prompt the user dismissed.
var ErrCancelled = errors.New("cancelled")

type InputConfig struct {
	Message string
	Default string
}

type SelectConfig struct {
	Message  string
	Options  []string
	PageSize int
}

// TextAreaConfig configures the template text dialog.
type TextAreaConfig struct {
	Message string
	Default string
}

// Prompter is the modal part of the window. Every call resolves exactly once:
// with a value, with ErrCancelled, or with another error.
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
}

// SurveyPrompter prompts on the terminal. Template text is written in the
// user's $EDITOR so it can span several lines.
type SurveyPrompter struct{}

func (SurveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (SurveyPrompter) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func (SurveyPrompter) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Editor{
		Message:       cfg.Message,
		Default:       cfg.Default,
		AppendDefault: true,
		HideDefault:   true,
		FileName:      "template*.txt",
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
