package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/ui"
)

// TUI launches the interactive show browser.
//
// The first page is fetched before the program starts so the listing renders without a
// loading state.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	q := queryFromFlags(cmd)
	now := time.Now()

	var initial *models.ShowsPage
	if page, err := r.catalog.ListShows(ctx, listing.Parse(q).Request(now, 1, listing.PageSize)); err != nil {
		r.logger.Warn("initial listing failed, the TUI will retry", "error", err)
	} else {
		initial = page
	}

	model := ui.NewModel(ctx, ui.Deps{
		Catalog:   r.catalog,
		Tracker:   r.tracker,
		Logger:    shared.WithLogger(r.logger, "component", "tui"),
		Initial:   initial,
		Query:     q,
		CellWidth: r.config.UI.CellWidth,
		Open:      r.open,
		Now:       time.Now,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
