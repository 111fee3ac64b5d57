package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config   *config.RuntimeConfig
	progress usecase.ProgressSink
	run      func(prompt *promptui.Select) (int, error)
}

// NewSelectorAdapter creates a new selector adapter. The progress sink is
// paused while a prompt is on screen.
func NewSelectorAdapter(cfg *config.RuntimeConfig, progress usecase.ProgressSink) *SelectorAdapter {
	if progress == nil {
		progress = usecase.NopProgress{}
	}
	return &SelectorAdapter{
		config:   cfg,
		progress: progress,
		run: func(prompt *promptui.Select) (int, error) {
			index, _, err := prompt.Run()
			return index, err
		},
	}
}

// SelectArtifact asks the user to pick one of several artifacts sharing a name
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, artifacts []*models.Artifact, prompt string) (*models.Artifact, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts provided for selection")
	}
	if len(artifacts) == 1 {
		return artifacts[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	options := formatArtifactOptions(artifacts)

	// Stop any running spinner so it does not redraw over the prompt
	s.progress.OnProgress(ctx, usecase.ProgressEvent{Message: prompt, Spinner: false})

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	index, err := s.run(&promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(artifactKeys(artifacts)),
	})
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	if index < 0 || index >= len(artifacts) {
		return nil, fmt.Errorf("selection out of range: %d", index)
	}

	return artifacts[index], nil
}

// formatArtifactOptions renders "Name (path) [format]" lines
func formatArtifactOptions(artifacts []*models.Artifact) []string {
	options := make([]string, len(artifacts))
	for i, a := range artifacts {
		name := color.New(color.FgWhite, color.Bold).Sprint(a.Name)
		path := color.New(color.FgBlue).Sprint(a.SourcePath)
		option := fmt.Sprintf("%s (%s)", name, path)
		if a.Format != "" {
			option += " " + color.New(color.Faint).Sprintf("[%s]", a.Format)
		}
		if !a.Deployable() {
			option += " " + color.New(color.FgYellow).Sprint("[not deployable]")
		}
		options[i] = option
	}
	return options
}

// artifactKeys are the uncoloured strings the search matches against
func artifactKeys(artifacts []*models.Artifact) []string {
	keys := make([]string, len(artifacts))
	for i, a := range artifacts {
		keys[i] = strings.ToLower(a.FullyQualifiedName())
	}
	return keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := items[index]

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactSelector = (*SelectorAdapter)(nil)
