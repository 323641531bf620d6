// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/showfinder/internal/models"
)

// MockCatalog is a test double for [services.Catalog].
//
// Shows are served from Pages keyed by page number; ListErr, when set, fails every listing.
// Calls records every ListShows query in order.
type MockCatalog struct {
	mu sync.Mutex

	Pages    map[int]*models.ShowsPage
	Show     *models.Show
	Venues   []models.Venue
	Venue    *models.VenueDetail
	Genres   []models.Genre
	Blurb    *models.Blurb
	Fest     *models.Festival
	ListErr  error
	Err      error
	Calls    []url.Values
	ListHook func(q url.Values)
}

func (m *MockCatalog) ListShows(ctx context.Context, q url.Values) (*models.ShowsPage, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, q)
	hook := m.ListHook
	m.mu.Unlock()

	if hook != nil {
		hook(q)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	n, err := strconv.Atoi(q.Get("page"))
	if err != nil || n < 1 {
		n = 1
	}
	if page, ok := m.Pages[n]; ok {
		return page, nil
	}
	return &models.ShowsPage{Page: n, Shows: []models.Show{}}, nil
}

// CallCount returns the number of ListShows calls so far.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockCatalog) GetShow(ctx context.Context, id string) (*models.Show, error) {
	return m.Show, m.Err
}
func (m *MockCatalog) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return m.Venues, m.Err
}
func (m *MockCatalog) GetVenue(ctx context.Context, id string) (*models.VenueDetail, error) {
	return m.Venue, m.Err
}
func (m *MockCatalog) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return m.Genres, m.Err
}
func (m *MockCatalog) DailyBlurb(ctx context.Context) (*models.Blurb, error) {
	return m.Blurb, m.Err
}
func (m *MockCatalog) Festival(ctx context.Context, name string, year int) (*models.Festival, error) {
	return m.Fest, m.Err
}

// MockTracker records click events.
type MockTracker struct {
	mu     sync.Mutex
	Events []models.ClickEvent
}

func (m *MockTracker) Track(event models.ClickEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// ManualScheduler queues deferred callbacks until the test runs them.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (s *ManualScheduler) Next(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick runs every queued callback once, in order.
func (s *ManualScheduler) Tick() {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}

// MakeShows builds n shows with deterministic uuid ids.
func MakeShows(n int) []models.Show {
	shows := make([]models.Show, n)
	for i := range shows {
		shows[i] = models.Show{
			ID:        fmt.Sprintf("00000000-0000-4000-8000-%012d", i+1),
			Date:      "2026-10-23",
			Headliner: models.Artist{ID: fmt.Sprintf("artist-%d", i+1), Name: fmt.Sprintf("Artist %d", i+1)},
			Venue:     models.Venue{ID: "venue-1", Name: "The Fillmore", City: "San Francisco", State: "CA"},
		}
	}
	return shows
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
