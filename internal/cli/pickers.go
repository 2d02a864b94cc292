package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/prompttune/internal/llm"
	"github.com/alexanderramin/prompttune/internal/repository"
)

func prompttuneHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

// pickTag offers the library's tags as a select. Returns ok=false when the
// library has no tags or the user picks the skip entry.
func pickTag(ctx context.Context, prompts repository.PromptRepo) (string, bool, error) {
	tags, err := prompts.ListTags(ctx)
	if err != nil {
		return "", false, fmt.Errorf("listing tags: %w", err)
	}
	if len(tags) == 0 {
		return "", false, nil
	}

	options := make([]huh.Option[string], 0, len(tags)+1)
	for _, tc := range tags {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d)", tc.Tag, tc.Count), tc.Tag))
	}
	options = append(options, huh.NewOption("(skip, start from a file or manual entry)", ""))

	var tag string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a prompt tag from the library").
				Options(options...).
				Value(&tag),
		),
	).WithTheme(prompttuneHuhTheme()).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return "", false, fmt.Errorf("tag selection: %w", err)
	}
	return tag, tag != "", nil
}

// pickModel lists the models reported by the backend and asks for one.
func pickModel(ctx context.Context, endpoint string) (string, error) {
	models, err := llm.ListModels(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("listing models: %w", err)
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no models installed on %s", endpoint)
	}

	options := make([]huh.Option[string], 0, len(models))
	for _, m := range models {
		label := m.Name
		if m.Size > 0 {
			label = fmt.Sprintf("%s (%.1f GB)", m.Name, float64(m.Size)/1e9)
		}
		options = append(options, huh.NewOption(label, m.Name))
	}

	var model string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a model").
				Options(options...).
				Value(&model),
		),
	).WithTheme(prompttuneHuhTheme()).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("model selection: %w", err)
	}
	return model, nil
}
