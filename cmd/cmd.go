// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/listing"
)

// filterFlags are the listing filters shared by shows list, shows export and tui.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "artist",
			Aliases: []string{"a"},
			Usage:   "Artist name search",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "First date to include (YYYY-MM-DD); defaults to today without an artist search",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Last date to include (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "venue",
			Usage: "Venue ID",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Parent genre ID",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort order passed through to the catalog (e.g. date, artist, venue)",
		},
	}
}

// filterKeys maps filter flags to their URL keys.
var filterKeys = []struct{ flag, key string }{
	{"artist", listing.KeyArtistSearch},
	{"start", listing.KeyStartDate},
	{"end", listing.KeyEndDate},
	{"venue", listing.KeyVenue},
	{"genre", listing.KeyGenre},
	{"sort", listing.KeySort},
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

// showsCommand handles show listing operations
func showsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "shows",
		Usage: "Browse the show listing",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one page of upcoming shows",
				Flags: append(append(filterFlags(), jsonFlags()...),
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number",
						Value:   1,
					},
				),
				Action: r.ShowsList,
			},
			{
				Name:  "get",
				Usage: "Show details for one show",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: append(jsonFlags(),
					&cli.BoolFlag{
						Name:  "tickets",
						Usage: "Open the ticket link in the browser",
					},
				),
				Action: r.ShowsGet,
			},
			{
				Name:  "export",
				Usage: "Export every page of a listing to a file",
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: shows_{epoch}.{ext})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent page fetchers",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Page requests per second",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "Stop after this many pages (0 for all)",
					},
				),
				Action: r.ShowsExport,
			},
		},
	}
}

// venuesCommand handles venue lookups
func venuesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "venues",
		Usage: "Venue directory",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List venues available to the venue filter",
				Flags:  jsonFlags(),
				Action: r.VenuesList,
			},
			{
				Name:  "get",
				Usage: "Show a venue and its upcoming shows",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.VenuesGet,
			},
		},
	}
}

// genresCommand lists parent genres
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "genres",
		Usage:  "List parent genres available to the genre filter",
		Flags:  jsonFlags(),
		Action: r.Genres,
	}
}

// blurbCommand prints the daily editorial blurb
func blurbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "blurb",
		Usage:  "Print today's editorial headline",
		Flags:  jsonFlags(),
		Action: r.Blurb,
	}
}

// festivalCommand prints a festival lineup
func festivalCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "festival",
		Aliases: []string{"fest"},
		Usage:   "Print a festival lineup",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
			&cli.StringArg{Name: "year"},
		},
		Flags: append(jsonFlags(),
			&cli.StringFlag{
				Name:  "order",
				Usage: "Lineup order: time or stage",
				Value: "time",
			},
		),
		Action: r.Festival,
	}
}

// apiCommand handles direct (raw) API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the catalog API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the catalog API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// setupCommand handles setup operations for the database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent database migration",
				Action: r.SetupRollback,
			},
			{
				Name:   "config",
				Usage:  "Write a config file from the built-in template",
				Action: r.SetupConfig,
			},
		},
	}
}

// cacheCommand inspects the reference-data response cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local response cache",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "List cached responses",
				Flags:  jsonFlags(),
				Action: r.CacheStatus,
			},
			{
				Name:  "purge",
				Usage: "Delete cached responses",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Only delete entries fetched longer ago than this (0 deletes everything)",
					},
				},
				Action: r.CachePurge,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive show browser",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/showfinder-tui.log",
			},
		),
		Action: r.TUI,
	}
}

// serveCommand starts the web frontend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web frontend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
		},
		Action: r.Serve,
	}
}
