// package services defines the Catalog interface for the upstream show API and its HTTP implementation
package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/showfinder/internal/models"
)

// Catalog is the read side of the upstream show API.
type Catalog interface {
	// ListShows fetches one page of shows. q carries page, limit and the filter keys verbatim.
	ListShows(ctx context.Context, q url.Values) (*models.ShowsPage, error)

	// GetShow fetches a single show with full artist and venue payloads.
	// Returns [shared.ErrInvalidShowID] without a request when id is malformed.
	GetShow(ctx context.Context, id string) (*models.Show, error)

	// ListVenues fetches every venue shown in the venue filter.
	ListVenues(ctx context.Context) ([]models.Venue, error)

	// GetVenue fetches a venue and its upcoming shows.
	GetVenue(ctx context.Context, id string) (*models.VenueDetail, error)

	// ListGenres fetches the parent genres shown in the genre filter.
	ListGenres(ctx context.Context) ([]models.Genre, error)

	// DailyBlurb fetches the editorial headline of the day.
	DailyBlurb(ctx context.Context) (*models.Blurb, error)

	// Festival fetches a festival lineup by slug and year.
	Festival(ctx context.Context, name string, year int) (*models.Festival, error)
}

// ClickTracker records outbound link clicks. Implementations never block and never fail visibly.
type ClickTracker interface {
	Track(event models.ClickEvent)
}

// Link types reported to the analytics endpoint.
const (
	LinkTicket = "ticket"
	LinkVideo  = "video"
	LinkVenue  = "venue"
	LinkArtist = "artist"
)
