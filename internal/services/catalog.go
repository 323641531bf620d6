package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

const defaultCacheTTL = time.Hour

var festivalSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ResponseCache stores raw reference-data responses keyed by request path.
//
// Get returns [shared.ErrCacheMiss] when the key is absent or older than maxAge.
type ResponseCache interface {
	Get(key string, maxAge time.Duration) ([]byte, error)
	Put(key string, body []byte) error
}

// APIError is a non-2xx answer from the catalog API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error (status %d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// newAPIError builds an [APIError] from a response body, preferring the upstream's own message.
// Bodies that are not JSON, or that carry none of the known fields, fall back to a generic message.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}

	msg := fmt.Sprintf("upstream returned status %d", status)
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, candidate := range []string{payload.Error, payload.Message, payload.Detail} {
			if candidate != "" {
				msg = candidate
				break
			}
		}
	}

	return &APIError{Status: status, Message: msg}
}

// CatalogOpts configures a [CatalogClient].
type CatalogOpts struct {
	HTTPClient *http.Client
	Cache      ResponseCache // optional; venues and genres only
	CacheTTL   time.Duration
	Logger     *log.Logger
}

// CatalogClient implements [Catalog] over the upstream REST API.
type CatalogClient struct {
	api      *APIService
	cache    ResponseCache
	cacheTTL time.Duration
	logger   *log.Logger
}

// NewCatalogClient creates a catalog client rooted at baseURL (e.g. "https://example.com/api").
//
// The base URL is required: without one, every call fails with [shared.ErrMissingConfig] before
// any request is made.
func NewCatalogClient(baseURL string, opts CatalogOpts) *CatalogClient {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}

	return &CatalogClient{
		api:      NewAPIService(baseURL, opts.HTTPClient),
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
}

// fetch performs a GET and returns the body of a 2xx response.
func (c *CatalogClient) fetch(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if len(q) > 0 {
		path = path + "?" + q.Encode()
	}

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		if errors.Is(err, shared.ErrMissingConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		apiErr := newAPIError(resp.StatusCode, resp.Body)
		c.logger.Debug("catalog request failed", "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return resp.Body, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	body, err := c.fetch(ctx, path, q)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// getCached serves path from the response cache when fresh, otherwise fetches and stores it.
// Cache failures are logged and never surface to the caller.
func (c *CatalogClient) getCached(ctx context.Context, path string, out any) error {
	if c.cache != nil {
		body, err := c.cache.Get(path, c.cacheTTL)
		switch {
		case err == nil:
			if err := decode(body, out); err == nil {
				return nil
			}
			c.logger.Warn("discarding undecodable cache entry", "key", path)
		case !errors.Is(err, shared.ErrCacheMiss):
			c.logger.Warn("response cache read failed", "key", path, "error", err)
		}
	}

	body, err := c.fetch(ctx, path, nil)
	if err != nil {
		return err
	}
	if err := decode(body, out); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Put(path, body); err != nil {
			c.logger.Warn("response cache write failed", "key", path, "error", err)
		}
	}
	return nil
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// notFound rewrites a 404 [APIError] into the given sentinel, keeping the upstream message.
func notFound(err error, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", sentinel, apiErr.Message)
	}
	return err
}

// ListShows calls GET /shows with q passed through verbatim.
func (c *CatalogClient) ListShows(ctx context.Context, q url.Values) (*models.ShowsPage, error) {
	var page models.ShowsPage
	if err := c.getJSON(ctx, "/shows", q, &page); err != nil {
		return nil, err
	}

	for i := range page.Shows {
		normalizeShow(&page.Shows[i])
	}
	return &page, nil
}

// GetShow calls GET /shows/{id}.
func (c *CatalogClient) GetShow(ctx context.Context, id string) (*models.Show, error) {
	if !shared.IsUUID(id) {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidShowID, id)
	}

	var show models.Show
	if err := c.getJSON(ctx, "/shows/"+id, nil, &show); err != nil {
		return nil, notFound(err, shared.ErrShowNotFound)
	}

	normalizeShow(&show)
	return &show, nil
}

// ListVenues calls GET /venues-ga.
func (c *CatalogClient) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := c.getCached(ctx, "/venues-ga", &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenue calls GET /venues/{id}.
func (c *CatalogClient) GetVenue(ctx context.Context, id string) (*models.VenueDetail, error) {
	if !shared.IsUUID(id) {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidVenueID, id)
	}

	var venue models.VenueDetail
	if err := c.getJSON(ctx, "/venues/"+id, nil, &venue); err != nil {
		return nil, notFound(err, shared.ErrVenueNotFound)
	}

	for i := range venue.UpcomingShows {
		normalizeShow(&venue.UpcomingShows[i])
	}
	return &venue, nil
}

// ListGenres calls GET /parent-genres.
func (c *CatalogClient) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := c.getCached(ctx, "/parent-genres", &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// DailyBlurb calls GET /daily-blurb.
func (c *CatalogClient) DailyBlurb(ctx context.Context) (*models.Blurb, error) {
	var blurb models.Blurb
	if err := c.getJSON(ctx, "/daily-blurb", nil, &blurb); err != nil {
		return nil, err
	}
	return &blurb, nil
}

// Festival calls GET /festivals/{name}/{year}. name is a lowercase slug such as "outside-lands".
func (c *CatalogClient) Festival(ctx context.Context, name string, year int) (*models.Festival, error) {
	slug := strings.ToLower(strings.TrimSpace(name))
	if !festivalSlug.MatchString(slug) {
		return nil, fmt.Errorf("%w: festival name %q", shared.ErrInvalidArgument, name)
	}
	if year < 1000 || year > 9999 {
		return nil, fmt.Errorf("%w: festival year %d", shared.ErrInvalidArgument, year)
	}

	var festival models.Festival
	if err := c.getJSON(ctx, fmt.Sprintf("/festivals/%s/%d", slug, year), nil, &festival); err != nil {
		return nil, notFound(err, shared.ErrFestivalNotFound)
	}

	for i := range festival.Sets {
		normalizeArtist(&festival.Sets[i].Artist)
	}
	return &festival, nil
}
