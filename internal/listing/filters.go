package listing

import (
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/showfinder/internal/models"
)

// URL query keys owned by the listing.
const (
	KeyPage         = "page"
	KeyLimit        = "limit"
	KeyStartDate    = "startDate"
	KeyEndDate      = "endDate"
	KeyArtistSearch = "artistSearch"
	KeyVenue        = "selectedVenueId"
	KeyGenre        = "selectedGenreId"
	KeySort         = "sortBy"
)

// FilterKeys is the canonical filter key set, in display order.
var FilterKeys = []string{KeyStartDate, KeyEndDate, KeyArtistSearch, KeyVenue, KeyGenre, KeySort}

// Filters is the filter state read from the URL. Values are opaque strings; invalid dates are
// passed through and left for the API to reject.
type Filters struct {
	StartDate    string
	EndDate      string
	ArtistSearch string
	VenueID      string
	GenreID      string
	SortBy       string
}

// Parse reads the recognized filter keys from q. Unknown keys, including page, are ignored.
func Parse(q url.Values) Filters {
	var f Filters
	for _, key := range FilterKeys {
		if v := q.Get(key); v != "" {
			*f.field(key) = v
		}
	}
	return f
}

func (f *Filters) field(key string) *string {
	switch key {
	case KeyStartDate:
		return &f.StartDate
	case KeyEndDate:
		return &f.EndDate
	case KeyArtistSearch:
		return &f.ArtistSearch
	case KeyVenue:
		return &f.VenueID
	case KeyGenre:
		return &f.GenreID
	case KeySort:
		return &f.SortBy
	}
	return nil
}

// Get returns the value for a filter key, or "" for unknown keys.
func (f Filters) Get(key string) string {
	if p := f.field(key); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of f with key set to value. Unknown keys are ignored.
func (f Filters) With(key, value string) Filters {
	if p := f.field(key); p != nil {
		*p = value
	}
	return f
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Values is the canonical serialized form: only keys with a non-empty value.
func (f Filters) Values() url.Values {
	q := url.Values{}
	for _, key := range FilterKeys {
		if v := f.Get(key); v != "" {
			q.Set(key, v)
		}
	}
	return q
}

// Request builds the query for GET /shows.
//
// With no artist search and no explicit date bounds, startDate defaults to today so the
// unfiltered listing only shows upcoming dates.
func (f Filters) Request(now time.Time, page, limit int) url.Values {
	q := f.Values()
	if f.ArtistSearch == "" && f.StartDate == "" && f.EndDate == "" {
		q.Set(KeyStartDate, now.Format(models.DateLayout))
	}
	q.Set(KeyPage, strconv.Itoa(max(page, 1)))
	q.Set(KeyLimit, strconv.Itoa(limit))
	return q
}

// Serialize returns current with key set to value, or removed when value is empty.
// The page key is always removed. current is not modified.
func Serialize(current url.Values, key, value string) url.Values {
	q := clone(current)
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	q.Del(KeyPage)
	return q
}

// SetDateRange sets startDate and endDate together and removes the page key.
func SetDateRange(current url.Values, start, end string) url.Values {
	q := Serialize(current, KeyStartDate, start)
	return Serialize(q, KeyEndDate, end)
}

// Clear returns an empty parameter set.
func Clear() url.Values {
	return url.Values{}
}

// PageOf returns the 1-based page number in q. A missing or malformed page is page 1.
func PageOf(q url.Values) int {
	n, err := strconv.Atoi(q.Get(KeyPage))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clone(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
