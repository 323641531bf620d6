package listing

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
)

// Status is the phase of a listing.
type Status int

const (
	Loading Status = iota
	Error
	Ready
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// State is what a view renders. Exactly one of the three phases holds: Page is only set when
// Ready and Message only when Error.
type State struct {
	Status  Status
	Message string
	Page    *models.ShowsPage
}

// Empty reports a successful listing with no shows, which is distinct from an error.
func (s State) Empty() bool {
	return s.Status == Ready && (s.Page == nil || len(s.Page.Shows) == 0)
}

// Request is one tagged fetch issued by [Controller.Refresh].
type Request struct {
	Token   uint64
	Filters Filters
	Page    int
	Query   url.Values // ready for GET /shows
}

// Fetcher loads one page of shows. [services.Catalog] satisfies it.
type Fetcher interface {
	ListShows(ctx context.Context, q url.Values) (*models.ShowsPage, error)
}

// Controller owns the fetch lifecycle of a listing.
type Controller struct {
	mu      sync.Mutex
	state   State
	latest  uint64
	initial *models.ShowsPage
	limit   int
}

// NewController creates a controller. A non-nil initial page is shown as-is and the first
// [Controller.Refresh] does not issue a request for it.
func NewController(initial *models.ShowsPage) *Controller {
	c := &Controller{initial: initial, limit: PageSize}
	if initial != nil {
		c.state = State{Status: Ready, Page: initial}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh starts a fetch for the listing described by q (filters plus page) and moves to
// Loading. It returns false, and leaves the state untouched, when the initial page passed to
// [NewController] is still unused.
func (c *Controller) Refresh(q url.Values, now time.Time) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initial != nil {
		c.initial = nil
		return Request{}, false
	}

	c.latest++
	filters, page := Parse(q), PageOf(q)
	c.state = State{Status: Loading}

	return Request{
		Token:   c.latest,
		Filters: filters,
		Page:    page,
		Query:   filters.Request(now, page, c.limit),
	}, true
}

// Apply records the outcome of the request tagged token. Responses to anything but the most
// recent request are discarded and Apply returns false.
func (c *Controller) Apply(token uint64, page *models.ShowsPage, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.latest {
		return false
	}

	switch {
	case err != nil:
		c.state = State{Status: Error, Message: ErrorMessage(err)}
	case page == nil:
		c.state = State{Status: Ready, Page: &models.ShowsPage{Page: 1, Limit: c.limit}}
	default:
		c.state = State{Status: Ready, Page: page}
	}
	return true
}

// Load refreshes and fetches synchronously.
func (c *Controller) Load(ctx context.Context, f Fetcher, q url.Values, now time.Time) State {
	req, ok := c.Refresh(q, now)
	if !ok {
		return c.State()
	}

	page, err := f.ListShows(ctx, req.Query)
	c.Apply(req.Token, page, err)
	return c.State()
}

// ErrorMessage renders err for display. Upstream messages are shown verbatim.
func ErrorMessage(err error) string {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		return "The show catalog is not configured. Set SHOWFINDER_API_URL or api.base_url in the config file."
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, shared.ErrInvalidShowID):
		return "That show link is not valid."
	case errors.Is(err, shared.ErrShowNotFound):
		return "That show could not be found."
	case errors.Is(err, context.DeadlineExceeded):
		return "The show catalog took too long to respond."
	default:
		return err.Error()
	}
}
