package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cubent/internal/driver"
	"cubent/internal/emit"
	"cubent/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// runBuildWithUI runs the pipeline in a goroutine while the terminal shows
// live progress. Diagnostics render after the UI exits.
func runBuildWithUI(ctx context.Context, title string, opts driver.Options, files []string, meta emit.PackMeta, outDir string) *driver.Result {
	events := make(chan driver.Event, 256)
	resultCh := make(chan *driver.Result, 1)

	go func() {
		opts.Sink = func(e driver.Event) {
			select {
			case events <- e:
			default:
			}
		}
		resultCh <- driver.Build(ctx, opts, files, meta, outDir)
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, events), tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		// Fall through; the build result still carries the real outcome.
		fmt.Fprintf(os.Stderr, "ui error: %v\n", err)
	}
	return <-resultCh
}
