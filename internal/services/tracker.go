package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

const (
	trackPath      = "/analytics/track-click"
	trackTimeout   = 5 * time.Second
	defaultTrackHz = 2.0
)

// TrackerOpts configures a [Tracker].
type TrackerOpts struct {
	HTTPClient *http.Client
	Logger     *log.Logger
	Enabled    bool
	// RatePerSecond caps beacons; bursts beyond it are dropped, never queued.
	RatePerSecond float64
	SessionID     string
}

// Tracker sends click beacons to the analytics endpoint.
//
// Track returns immediately. Delivery happens on a background goroutine and every failure,
// including a missing base URL, is logged and swallowed.
type Tracker struct {
	api       *APIService
	logger    *log.Logger
	limiter   *rate.Limiter
	enabled   bool
	sessionID string
	wg        sync.WaitGroup
}

// NewTracker creates a tracker posting to baseURL + /analytics/track-click.
func NewTracker(baseURL string, opts TrackerOpts) *Tracker {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = defaultTrackHz
	}
	if opts.SessionID == "" {
		opts.SessionID = shared.GenerateID()
	}

	return &Tracker{
		api:       NewAPIService(baseURL, opts.HTTPClient),
		logger:    opts.Logger,
		limiter:   rate.NewLimiter(rate.Limit(opts.RatePerSecond), int(opts.RatePerSecond)+1),
		enabled:   opts.Enabled,
		sessionID: opts.SessionID,
	}
}

// SessionID is the per-process id attached to every beacon.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Track queues a beacon for event. The session id is filled in when empty.
func (t *Tracker) Track(event models.ClickEvent) {
	if !t.enabled {
		return
	}
	if !t.limiter.Allow() {
		t.logger.Debug("dropping click beacon", "link_type", event.LinkType, "reason", "rate limited")
		return
	}
	if event.SessionID == "" {
		event.SessionID = t.sessionID
	}

	body, err := json.Marshal(event)
	if err != nil {
		t.logger.Warn("failed to encode click beacon", "error", err)
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		resp, err := t.api.Post(ctx, trackPath, body)
		switch {
		case err != nil:
			t.logger.Debug("click beacon failed", "link_type", event.LinkType, "error", err)
		case !resp.OK():
			t.logger.Debug("click beacon rejected", "link_type", event.LinkType, "status", resp.StatusCode)
		}
	}()
}

// Flush waits for in-flight beacons or until ctx is done.
func (t *Tracker) Flush(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
