package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"basgen/internal/assemble"
	"basgen/internal/entity"
	"basgen/internal/ui"
)

type generateOutcome struct {
	summary assemble.Summary
	err     error
}

func runGenerateWithUI(ctx context.Context, title string, cfg assemble.Config) (assemble.Summary, error) {
	events := make(chan assemble.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		cfgCopy := cfg
		cfgCopy.Progress = assemble.ChannelSink{Ch: events}
		sum, err := assemble.Generate(ctx, cfgCopy)
		outcomeCh <- generateOutcome{summary: sum, err: err}
		close(events)
	}()

	sections := assemble.SectionNames(assemble.BuildTasks(
		entity.NewFactory(1), assemble.SectionCounts{}, nil))
	model := ui.NewProgressModel(title, sections, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.summary, uiErr
	}
	return outcome.summary, outcome.err
}
