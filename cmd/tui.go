package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/ui"
)

// TUI launches the interactive terminal UI for playlist management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	tokens, cache, err := r.stores()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/plx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// Preload the stored session token so authenticated calls carry it. A
	// missing token is fine; the TUI starts on the login screen instead.
	if err := r.authenticate(ctx); err != nil && !errors.Is(err, shared.ErrNotAuthenticated) {
		return err
	}

	model := ui.NewModel(ctx, r.client, tokens, cache, r.config, fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
