package tasks

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

// ExportOpts contains configuration for show exports.
type ExportOpts struct {
	Format     string           // Export format: json, csv, markdown, txt
	Output     string           // Output file (default: shows_{epoch}.{ext})
	NumWorkers int              // Concurrent page fetchers (default: 4, max: 10)
	RateLimit  float64          // Page requests per second (default: 5)
	MaxPages   int              // Stop after this many pages; 0 means all
	Now        func() time.Time // Clock for the default start date
}

// ExportResult is the outcome of an export.
type ExportResult struct {
	Export       *models.ShowExport
	Manifest     *models.ExportManifest
	Path         string
	ManifestPath string
}

type pageJob struct {
	page  int
	query url.Values
}

type pageOutcome struct {
	page  int
	shows []models.Show
	err   error
}

// Exporter pages through a listing and writes every show to a file.
type Exporter struct {
	fetcher listing.Fetcher
	logger  *log.Logger
}

// NewExporter creates an exporter reading from f.
func NewExporter(f listing.Fetcher, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Exporter{fetcher: f, logger: logger}
}

// Export writes every show matching q to a file.
//
// Page 1 must succeed. Later pages that fail are recorded in the manifest and skipped, so a
// partial export is still written.
func (e *Exporter) Export(ctx context.Context, prog chan<- ProgressUpdate, q url.Values, opts ExportOpts) (*ExportResult, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Output == "" {
		opts.Output = fmt.Sprintf("shows_%d.%s", opts.Now().Unix(), formatter.Extension(opts.Format))
	}

	now := opts.Now()
	filters := listing.Parse(q)

	sendProgress(prog, fetchFirstPageUpdate())
	first, err := e.fetcher.ListShows(ctx, filters.Request(now, 1, listing.PageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}

	pages := max(listing.PageCount(first.TotalCount, listing.PageSize), 1)
	if opts.MaxPages > 0 && pages > opts.MaxPages {
		pages = opts.MaxPages
	}
	sendProgress(prog, foundShowsUpdate(first.TotalCount, pages))
	e.logger.Info("exporting shows", "total", first.TotalCount, "pages", pages, "format", opts.Format)

	outcomes := map[int]pageOutcome{1: {page: 1, shows: first.Shows}}
	for _, o := range e.fetchRemaining(ctx, prog, filters, now, pages, opts) {
		outcomes[o.page] = o
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}

	export := &models.ShowExport{
		Filters:    flatten(filters.Values()),
		ExportedAt: now,
		TotalCount: first.TotalCount,
		Shows:      []models.Show{},
	}
	manifest := &models.ExportManifest{Format: opts.Format, TotalCount: first.TotalCount}

	for page := 1; page <= pages; page++ {
		o, ok := outcomes[page]
		result := models.PageResult{Page: page}
		switch {
		case !ok:
			result.Error = "not fetched"
		case o.err != nil:
			result.Error = o.err.Error()
		default:
			result.Shows = len(o.shows)
			export.Shows = append(export.Shows, o.shows...)
		}
		if result.Error != "" {
			manifest.PagesFailed++
		}
		manifest.Pages = append(manifest.Pages, result)
	}
	manifest.Exported = len(export.Shows)

	sendProgress(prog, writeExportUpdate(opts.Format, opts.Output))
	path, err := formatter.WriteExport(export, opts.Format, opts.Output)
	if err != nil {
		return nil, err
	}
	manifest.File = filepath.Base(path)

	res := &ExportResult{Export: export, Manifest: manifest, Path: path}

	manifestPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_manifest.json"
	if err := formatter.WriteExportManifest(manifest, manifestPath); err != nil {
		return res, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	res.ManifestPath = manifestPath
	return res, nil
}

// fetchRemaining fetches pages 2..pages with a worker pool behind a shared limiter.
func (e *Exporter) fetchRemaining(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	filters listing.Filters,
	now time.Time,
	pages int,
	opts ExportOpts,
) []pageOutcome {
	if pages < 2 {
		return nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan pageJob, pages-1)
	results := make(chan pageOutcome, pages-1)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.pageWorker(ctx, &wg, limiter, jobs, results)
	}

	for page := 2; page <= pages; page++ {
		jobs <- pageJob{page: page, query: filters.Request(now, page, listing.PageSize)}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	total := pages - 1
	var out []pageOutcome
	for o := range results {
		out = append(out, o)
		if o.err != nil {
			e.logger.Warn("page fetch failed", "page", o.page, "error", o.err)
			sendProgress(prog, pageFailedUpdate(len(out), total, o.page, o.err))
		} else {
			sendProgress(prog, pageFetchedUpdate(len(out), total, o.page, len(o.shows)))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].page < out[j].page })
	return out
}

// pageWorker is a worker goroutine that fetches pages from the jobs channel.
func (e *Exporter) pageWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan pageJob,
	results chan<- pageOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- pageOutcome{page: job.page, err: err}
			continue
		}

		page, err := e.fetcher.ListShows(ctx, job.query)
		if err != nil {
			results <- pageOutcome{page: job.page, err: err}
			continue
		}
		results <- pageOutcome{page: job.page, shows: page.Shows}
	}
}

func flatten(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k := range q {
		out[k] = q.Get(k)
	}
	return out
}
