// Package tui provides the interactive terminal surfaces: huh forms for
// login and signup, and a bubbletea browser for the ticket catalog.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/aiutodesk/desk/internal/platform"
)

// LoginInput holds the credentials collected by the login form.
type LoginInput struct {
	Email    string
	Password string
}

// RunLoginForm collects credentials interactively. Pre-filled fields are
// kept as defaults.
func RunLoginForm(input *LoginInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@company.com").
			Value(&input.Email).
			Validate(requireField("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&input.Password).
			Validate(requireField("password")),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt failed: %w", err)
	}
	return nil
}

// SignupInput holds the fields collected by the signup form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	TenantID string
}

// RunSignupForm collects registration details interactively. The
// organization is chosen from tenants by name; the selection stores its id.
func RunSignupForm(input *SignupInput, tenants []platform.Tenant) error {
	options := make([]huh.Option[string], len(tenants))
	for i, t := range tenants {
		options[i] = huh.NewOption(t.Name, t.ID)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&input.Name).
			Validate(requireField("name")),
		huh.NewInput().
			Title("Email").
			Placeholder("you@company.com").
			Value(&input.Email).
			Validate(requireField("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&input.Password).
			Validate(requireField("password")),
		huh.NewSelect[string]().
			Title("Organization").
			Options(options...).
			Value(&input.TenantID),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("signup prompt failed: %w", err)
	}
	return nil
}

// TicketInput holds the fields collected when opening a ticket.
type TicketInput struct {
	Title       string
	Description string
	Priority    string
}

// RunTicketForm collects a new support request interactively.
func RunTicketForm(input *TicketInput) error {
	if input.Priority == "" {
		input.Priority = "medium"
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("Ex: Problema ao acessar o sistema").
			Value(&input.Title).
			Validate(requireField("title")),
		huh.NewText().
			Title("Description").
			Placeholder("Descreva o problema com o máximo de detalhes possível.").
			Value(&input.Description).
			Validate(requireField("description")),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Alta", "high"),
				huh.NewOption("Média", "medium"),
				huh.NewOption("Baixa", "low"),
			).
			Value(&input.Priority),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("ticket prompt failed: %w", err)
	}
	return nil
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment.
// Prompts are disabled in CI environments or when stdin is not a terminal.
func ShouldPrompt() bool {
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
