package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/shared"
)

// CacheStatus lists the cached reference-data responses.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	repo := r.openCache()
	if repo == nil {
		return fmt.Errorf("%w: response cache is unavailable at %s", shared.ErrServiceUnavailable, r.config.Database.Path)
	}

	entries, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		r.writePlain("Cache is empty.\n")
		return nil
	}

	ttl := r.config.Database.CacheTTL()
	t := r.newTable("Key", "Bytes", "Hits", "Age", "")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, e := range entries {
		age := time.Since(e.FetchedAt).Truncate(time.Second)
		stale := ""
		if ttl > 0 && age > ttl {
			stale = "stale"
		}
		t.AppendRow(table.Row{e.Key, e.Size, e.Hits, age, stale})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d entries", len(entries)), "", "", fmt.Sprintf("ttl %s", ttl), ""})
	t.Render()
	return nil
}

// CachePurge deletes cached responses.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	repo := r.openCache()
	if repo == nil {
		return fmt.Errorf("%w: response cache is unavailable at %s", shared.ErrServiceUnavailable, r.config.Database.Path)
	}

	olderThan := cmd.Duration("older-than")
	n, err := repo.Purge(olderThan)
	if err != nil {
		return err
	}

	r.logger.Info("purged cache", "entries", n, "older_than", olderThan)
	r.writePlain("✓ Purged %d cached responses\n", n)
	return nil
}
