package ux

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// PromptForString displays an interactive input and returns the value.
func PromptForString(title, placeholder string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

// PromptForPassword displays a masked input and returns the value.
func PromptForPassword(title string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

// PromptForConfirmation displays a yes/no confirmation.
func PromptForConfirmation(title string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(title).
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}
