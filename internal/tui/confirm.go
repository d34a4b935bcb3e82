package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/juspay/airborne-cli/internal/style"
)

// ConfirmDeletion shows an interactive confirmation prompt for destructive
// operations. Returns true only if the user explicitly confirms.
func ConfirmDeletion(resourceType, resourceName string) (bool, error) {
	fmt.Println(style.Warning.Render(fmt.Sprintf(
		"⚠  You are about to delete %s %s",
		resourceType,
		style.Bold.Render(resourceName),
	)))
	fmt.Println()

	return confirm(
		fmt.Sprintf("Delete %s \"%s\"?", resourceType, resourceName),
		"This action cannot be undone.",
		"Yes, delete",
	)
}

// ConfirmAction asks before an experiment transition such as ramping traffic
// or concluding a release.
func ConfirmAction(title, description string) (bool, error) {
	return confirm(title, description, "Yes, continue")
}

func confirm(title, description, affirmative string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("No, cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// PromptInput shows an interactive text input prompt and returns the value.
func PromptInput(title, description, placeholder string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptSecret is PromptInput with the value masked.
func PromptSecret(title string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptSelect shows an interactive selection prompt and returns the chosen value.
func PromptSelect(title, description string, options []string) (string, error) {
	var value string

	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(opts...).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}
