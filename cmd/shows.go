package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/tasks"
)

// queryFromFlags builds the URL state described by the filter flags.
func queryFromFlags(cmd *cli.Command) url.Values {
	q := listing.Clear()
	for _, f := range filterKeys {
		if v := strings.TrimSpace(cmd.String(f.flag)); v != "" {
			q = listing.Serialize(q, f.key, v)
		}
	}
	return q
}

// ShowsList prints one page of the listing.
func (r *Runner) ShowsList(ctx context.Context, cmd *cli.Command) error {
	q := queryFromFlags(cmd)
	if page := int(cmd.Int("page")); page > 1 {
		q.Set(listing.KeyPage, fmt.Sprint(page))
	}

	r.logger.Debug("listing shows", "query", q.Encode())
	st := listing.NewController(nil).Load(ctx, r.catalog, q, time.Now())
	if st.Status == listing.Error {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, st.Message)
	}

	if cmd.Bool("json") {
		return r.writeJSON(st.Page, cmd.Bool("pretty"))
	}

	if st.Empty() {
		r.writePlain("No shows match these filters.\n")
		return nil
	}

	page := st.Page
	r.writePlainHeader(fmt.Sprintf("Shows (page %d of %d, %d total)",
		listing.PageOf(q), max(listing.PageCount(page.TotalCount, listing.PageSize), 1), page.TotalCount))
	for _, show := range page.Shows {
		r.writeShowLine(show)
	}
	if listing.Pages(page.TotalCount, listing.PageSize) != nil {
		r.writePlainln("Use --page to see more.")
	}
	return nil
}

func (r *Runner) writeShowLine(show models.Show) {
	flags := ""
	if show.IsFeatured {
		flags += " ★"
	}
	if show.IsHometown {
		flags += " (local)"
	}
	r.writePlain("%-11s  %s @ %s%s\n", show.DisplayDate(), show.Headliner.Name, show.Venue.Name, flags)
	r.writePlain("             %s\n", show.ID)
}

// ShowsGet prints one show.
func (r *Runner) ShowsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}

	show, err := r.catalog.GetShow(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("tickets") {
		if show.TicketURL == "" {
			return fmt.Errorf("%w: no ticket link for this show", shared.ErrInvalidArgument)
		}
		r.tracker.Track(models.ClickEvent{
			LinkType:        services.LinkTicket,
			TargetURL:       show.TicketURL,
			SourceComponent: "cli",
			ShowID:          show.ID,
			VenueID:         show.Venue.ID,
		})
		if err := r.open(show.TicketURL); err != nil {
			r.logger.Warn("failed to open browser automatically", "error", err)
			r.writePlain("Tickets: %s\n", show.TicketURL)
		}
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(show, cmd.Bool("pretty"))
	}

	r.writePlainHeader(show.Headliner.Name)
	when := show.DisplayDate()
	if show.Time != "" {
		when += " " + show.Time
	}
	r.writePlain("When:   %s\n", when)
	r.writePlain("Where:  %s, %s\n", show.Venue.Name, show.Venue.Location())
	if price := show.Price(); price != "" {
		r.writePlain("Price:  %s\n", price)
	}
	if show.TicketURL != "" {
		r.writePlain("Tix:    %s\n", show.TicketURL)
	}
	if show.Headliner.Bio != "" {
		r.writePlainln("%s", show.Headliner.Bio)
	}

	r.writePlainln("Lineup:")
	for i, a := range append([]models.Artist{show.Headliner}, show.Openers...) {
		role := "opener"
		if i == 0 {
			role = "headliner"
		}
		r.writePlain("  %d. %s (%s)\n", i+1, a.Name, role)
		for _, id := range []string{a.VideoID, a.SecondVideoID, a.LiveVideoID, a.InterviewVideoID} {
			if id != "" {
				r.writePlain("     %s\n", services.WatchURL(id))
			}
		}
	}
	return nil
}

// ShowsExport pages through the whole listing and writes it to a file.
func (r *Runner) ShowsExport(ctx context.Context, cmd *cli.Command) error {
	q := queryFromFlags(cmd)
	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		Output:     cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		MaxPages:   int(cmd.Int("max-pages")),
	}

	r.logger.Info("starting export", "query", q.Encode(), "format", opts.Format)
	r.writePlain("Exporting shows...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchFirstPage:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchPages:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteExport:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewExporter(r.catalog, r.logger).Export(ctx, progressCh, q, opts)
	close(progressCh)
	wg.Wait()

	if err != nil {
		return err
	}

	m := result.Manifest
	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("File: %s\n", result.Path)
	r.writePlain("Shows: %d of %d\n", m.Exported, m.TotalCount)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	if m.PagesFailed > 0 {
		r.writePlain("\n%d pages failed:\n", m.PagesFailed)
		for _, p := range m.Pages {
			if p.Error != "" {
				r.writePlain("  • page %d: %s\n", p.Page, p.Error)
			}
		}
	}
	return nil
}
