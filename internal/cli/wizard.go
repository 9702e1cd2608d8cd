package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// aquilaHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func aquilaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardCustomSubtask creates a huh form collecting a custom subtask:
// title first, then its duration on a separate group. The title is
// committed before the estimate, matching how the queue records
// custom entries.
func wizardCustomSubtask(title, minutes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subtask").
				Placeholder("What do you need to do?").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a title is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Estimated minutes").
				Placeholder("30").
				Value(minutes).
				Validate(validateRequiredPositiveInt),
		),
	).WithTheme(aquilaHuhTheme()).WithShowHelp(false)
}

// wizardPickDay creates a huh form to change the planning date. An
// empty answer keeps the current day.
func wizardPickDay(current time.Time, result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan for which day? (YYYY-MM-DD)").
				Placeholder(current.Format("2006-01-02")).
				Value(result).
				Validate(validateDate),
		),
	).WithTheme(aquilaHuhTheme()).WithShowHelp(false)
}

// validateRequiredPositiveInt rejects empty, non-numeric, and
// non-positive input.
func validateRequiredPositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number of minutes")
	}
	return nil
}

// validateDate requires a YYYY-MM-DD date string. Empty is allowed and
// means "keep the current day".
func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
