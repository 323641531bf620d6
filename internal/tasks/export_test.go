package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	tu "github.com/desertthunder/showfinder/internal/testing"
)

var fixedNow = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local) }

// pagedCatalog serves total shows in pages of 20 and fails the pages listed in failing.
type pagedCatalog struct {
	mu      sync.Mutex
	total   int
	failing map[string]error
	queries []url.Values
}

func (c *pagedCatalog) ListShows(ctx context.Context, q url.Values) (*models.ShowsPage, error) {
	c.mu.Lock()
	c.queries = append(c.queries, q)
	c.mu.Unlock()

	if err, ok := c.failing[q.Get("page")]; ok {
		return nil, err
	}

	var page int
	fmt.Sscan(q.Get("page"), &page)
	all := tu.MakeShows(c.total)
	start := min((page-1)*20, len(all))
	end := min(start+20, len(all))
	return &models.ShowsPage{Page: page, Limit: 20, TotalCount: c.total, Shows: all[start:end]}, nil
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("collects every page in order", func(t *testing.T) {
		catalog := &pagedCatalog{total: 45}
		out := filepath.Join(t.TempDir(), "shows.json")
		prog := make(chan ProgressUpdate, 32)

		res, err := NewExporter(catalog, nil).Export(ctx, prog, url.Values{"selectedGenreId": {"g1"}, "page": {"3"}}, ExportOpts{
			Format: "json", Output: out, Now: fixedNow, RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		if len(res.Export.Shows) != 45 {
			t.Fatalf("expected 45 shows, got %d", len(res.Export.Shows))
		}
		for i, show := range res.Export.Shows {
			if want := tu.MakeShows(45)[i].ID; show.ID != want {
				t.Fatalf("show %d out of order: expected %s, got %s", i, want, show.ID)
			}
		}
		if len(catalog.queries) != 3 {
			t.Errorf("expected 3 requests, got %d", len(catalog.queries))
		}
		for _, q := range catalog.queries {
			if q.Get("startDate") != "2026-10-19" || q.Get("selectedGenreId") != "g1" || q.Get("limit") != "20" {
				t.Errorf("unexpected page query %v", q)
			}
		}
		if res.Export.Filters["selectedGenreId"] != "g1" {
			t.Errorf("expected filters in export, got %v", res.Export.Filters)
		}
		if _, ok := res.Export.Filters["page"]; ok {
			t.Error("page is not a filter")
		}

		if res.Manifest.Exported != 45 || res.Manifest.PagesFailed != 0 || len(res.Manifest.Pages) != 3 {
			t.Errorf("unexpected manifest %+v", res.Manifest)
		}
		if res.ManifestPath != filepath.Join(filepath.Dir(out), "shows_manifest.json") {
			t.Errorf("unexpected manifest path %s", res.ManifestPath)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		var decoded models.ShowExport
		if err := json.Unmarshal(data, &decoded); err != nil || len(decoded.Shows) != 45 {
			t.Errorf("unexpected export file: %v", err)
		}

		close(prog)
		phases := map[Phase]int{}
		for u := range prog {
			phases[u.Phase]++
		}
		if phases[FetchFirstPage] == 0 || phases[FetchPages] != 2 || phases[WriteExport] != 1 {
			t.Errorf("unexpected progress phases %v", phases)
		}
	})

	t.Run("failed pages are recorded and skipped", func(t *testing.T) {
		catalog := &pagedCatalog{total: 45, failing: map[string]error{"2": errors.New("upstream returned status 502")}}
		out := filepath.Join(t.TempDir(), "shows.csv")

		res, err := NewExporter(catalog, nil).Export(ctx, nil, nil, ExportOpts{Format: "csv", Output: out, Now: fixedNow, RateLimit: 1000})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if len(res.Export.Shows) != 25 {
			t.Errorf("expected 25 shows, got %d", len(res.Export.Shows))
		}
		if res.Manifest.PagesFailed != 1 || !strings.Contains(res.Manifest.Pages[1].Error, "502") {
			t.Errorf("unexpected manifest %+v", res.Manifest)
		}
	})

	t.Run("first page failure aborts", func(t *testing.T) {
		catalog := &pagedCatalog{total: 45, failing: map[string]error{"1": shared.ErrMissingConfig}}
		out := filepath.Join(t.TempDir(), "shows.txt")

		_, err := NewExporter(catalog, nil).Export(ctx, nil, nil, ExportOpts{Format: "txt", Output: out, Now: fixedNow})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("expected no file to be written")
		}
	})

	t.Run("max pages", func(t *testing.T) {
		catalog := &pagedCatalog{total: 200}
		out := filepath.Join(t.TempDir(), "shows.md")

		res, err := NewExporter(catalog, nil).Export(ctx, nil, nil, ExportOpts{Format: "markdown", Output: out, Now: fixedNow, MaxPages: 2, RateLimit: 1000})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if len(res.Export.Shows) != 40 || len(catalog.queries) != 2 {
			t.Errorf("expected 2 pages, got %d shows from %d requests", len(res.Export.Shows), len(catalog.queries))
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		catalog := &pagedCatalog{total: 0}
		out := filepath.Join(t.TempDir(), "shows.json")

		res, err := NewExporter(catalog, nil).Export(ctx, nil, nil, ExportOpts{Output: out, Now: fixedNow})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		if len(res.Export.Shows) != 0 || res.Manifest.Format != "json" {
			t.Errorf("unexpected result %+v", res.Manifest)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewExporter(&tu.MockCatalog{}, nil).Export(cctx, nil, nil, ExportOpts{Output: filepath.Join(t.TempDir(), "x.json")})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		if _, err := NewExporter(nil, nil).Export(ctx, nil, nil, ExportOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
		if _, err := NewExporter(&tu.MockCatalog{}, nil).Export(ctx, nil, nil, ExportOpts{Format: "yaml"}); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{FetchFirstPage: "fetch_first_page", FetchPages: "fetch_pages", WriteExport: "write_export", Phase(99): ""}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
