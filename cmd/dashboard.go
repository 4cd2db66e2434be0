package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/repositories"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	"github.com/wilkerbruno/videos-automacoes/internal/state"
	"github.com/wilkerbruno/videos-automacoes/internal/ui"
)

// Dashboard launches the interactive terminal dashboard.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Logging.File
	if logPath == "" {
		logPath = "./tmp/autopost-dashboard.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	backend := ui.NewServiceBackend(r.accounts, r.publish, r.content, r.schedule, r.analytics)
	backend.Logger = fileLogger
	if db, err := shared.NewDatabase(r.config.Database.Path); err == nil {
		defer db.Close()
		backend.History = repositories.NewPostRepository(db)
	} else {
		fileLogger.Warn("history database unavailable, skipping local records", "error", err)
	}

	model := ui.NewModel(ctx, backend, state.NewStore())
	model.SetMaxFileBytes(r.config.Upload.MaxFileBytes)

	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

// dashboardCommand returns the top-level command for the interactive dashboard.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive publishing dashboard",
		Action:  r.Dashboard,
	}
}
