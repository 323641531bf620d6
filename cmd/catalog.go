package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/shared"
)

// VenuesList prints the venues offered by the venue filter.
func (r *Runner) VenuesList(ctx context.Context, cmd *cli.Command) error {
	venues, err := r.catalog.ListVenues(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(venues, cmd.Bool("pretty"))
	}

	t := r.newTable("ID", "Venue", "Location")
	for _, v := range venues {
		t.AppendRow(table.Row{v.ID, v.Name, v.Location()})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d venues", len(venues))})
	t.Render()
	return nil
}

// VenuesGet prints a venue and its upcoming shows.
func (r *Runner) VenuesGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: venue id is required", shared.ErrMissingArgument)
	}

	venue, err := r.catalog.GetVenue(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(venue, cmd.Bool("pretty"))
	}

	r.writePlainHeader(venue.Name)
	r.writePlain("%s\n", venue.Location())
	if venue.Address != "" {
		r.writePlain("%s\n", venue.Address)
	}
	if venue.Capacity != nil {
		r.writePlain("Capacity: %d\n", *venue.Capacity)
	}
	if venue.Website != "" {
		r.writePlain("%s\n", venue.Website)
	}
	if venue.Description != "" {
		r.writePlainln("%s", venue.Description)
	}

	if len(venue.UpcomingShows) == 0 {
		r.writePlainln("No upcoming shows.")
		return nil
	}
	r.writePlainln("Upcoming shows:")
	for _, show := range venue.UpcomingShows {
		r.writeShowLine(show)
	}
	return nil
}

// Genres prints the parent genres offered by the genre filter.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	genres, err := r.catalog.ListGenres(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}

	t := r.newTable("ID", "Genre", "Artists")
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for _, g := range genres {
		t.AppendRow(table.Row{g.ID, g.Name, g.ArtistCount})
	}
	t.Render()
	return nil
}

// Blurb prints the daily editorial headline.
func (r *Runner) Blurb(ctx context.Context, cmd *cli.Command) error {
	blurb, err := r.catalog.DailyBlurb(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(blurb, cmd.Bool("pretty"))
	}

	r.writePlainHeader(blurb.Headline)
	r.writePlain("%s\n", blurb.Blurb)
	return nil
}

// Festival prints a festival lineup ordered by set time or by stage.
func (r *Runner) Festival(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: festival name is required", shared.ErrMissingArgument)
	}
	year, err := strconv.Atoi(cmd.StringArg("year"))
	if err != nil {
		return fmt.Errorf("%w: year must be a number", shared.ErrInvalidArgument)
	}

	var order listing.LineupOrder
	switch strings.ToLower(cmd.String("order")) {
	case "", "time":
		order = listing.ByTime
	case "stage":
		order = listing.ByStage
	default:
		return fmt.Errorf("%w: order must be time or stage", shared.ErrInvalidFlag)
	}

	fest, err := r.catalog.Festival(ctx, name, year)
	if err != nil {
		return err
	}
	fest.Sets = listing.SortLineup(fest.Sets, order)

	if cmd.Bool("json") {
		return r.writeJSON(fest, cmd.Bool("pretty"))
	}

	_, err = r.output.Write(formatter.LineupToText(fest, fest.Sets))
	return err
}
