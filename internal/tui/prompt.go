package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"

	"github.com/vantagedating/adminctl/internal/errors"
)

// Credentials is what the login form collects.
type Credentials struct {
	Email    string
	Password string
}

// Prompter asks the operator for input. Commands depend on this interface
// so tests can script the answers.
type Prompter interface {
	// Credentials asks for an email and password. email pre-fills the form.
	Credentials(ctx context.Context, email string) (Credentials, error)
	// Confirm asks a yes/no question. The default answer is no.
	Confirm(ctx context.Context, message string) (bool, error)
	// Select asks for one of options.
	Select(ctx context.Context, message string, options []string) (string, error)
}

// HuhPrompter renders prompts as huh forms on the terminal.
type HuhPrompter struct {
	// Accessible switches huh to its screen-reader mode.
	Accessible bool
}

var _ Prompter = HuhPrompter{}

func (p HuhPrompter) run(ctx context.Context, form *huh.Form) error {
	err := form.WithAccessible(p.Accessible).RunWithContext(ctx)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, huh.ErrUserAborted) || stderrors.Is(err, context.Canceled) {
		return errors.Wrap(errors.ErrCodePromptCancelled, "prompt cancelled", err)
	}
	return fmt.Errorf("prompt failed: %w", err)
}

// Credentials displays the sign-in form.
func (p HuhPrompter) Credentials(ctx context.Context, email string) (Credentials, error) {
	creds := Credentials{Email: email}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("admin@vantage.app").
			Value(&creds.Email).
			Validate(required("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(required("password")),
	))

	if err := p.run(ctx, form); err != nil {
		return Credentials{}, err
	}
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

// Confirm displays a yes/no confirmation prompt
func (p HuhPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))

	if err := p.run(ctx, form); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Select displays a selection prompt with multiple options
func (p HuhPrompter) Select(ctx context.Context, message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(message).
			Options(huhOptions...).
			Value(&selected),
	))

	if err := p.run(ctx, form); err != nil {
		return "", err
	}
	return selected, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// WithSpinner runs action behind a spinner titled title. Without a
// terminal the action runs directly.
func WithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}
	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	// Check common CI environment variables
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
