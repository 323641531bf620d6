// package models defines the data model for the show catalog
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by the upstream API and the URL surface.
const DateLayout = "2006-01-02"

// Artist is a lineup entry. Headliners carry up to two preview videos plus optional
// live and interview cuts; openers carry at most one preview video.
type Artist struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Bio              string `json:"bio,omitempty"`
	VideoID          string `json:"youtube_id,omitempty"`
	SecondVideoID    string `json:"youtube_id_2,omitempty"`
	LiveVideoID      string `json:"live_video_id,omitempty"`
	InterviewVideoID string `json:"interview_video_id,omitempty"`
}

// HasVideo reports whether any preview video is known for the artist.
func (a Artist) HasVideo() bool {
	return a.VideoID != "" || a.SecondVideoID != "" || a.LiveVideoID != "" || a.InterviewVideoID != ""
}

// Venue is the venue reference embedded in a show, or a full venue record.
type Venue struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Address      string `json:"address,omitempty"`
	Capacity     *int   `json:"capacity,omitempty"`
	Website      string `json:"website,omitempty"`
}

// Location renders "City, ST" with the neighborhood prefixed when present.
func (v Venue) Location() string {
	loc := v.City
	if v.State != "" {
		loc = fmt.Sprintf("%s, %s", loc, v.State)
	}
	if v.Neighborhood != "" {
		loc = fmt.Sprintf("%s · %s", v.Neighborhood, loc)
	}
	return loc
}

// Show is a single concert. It is read-only to the client.
type Show struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Time       string   `json:"time,omitempty"`
	Headliner  Artist   `json:"headliner"`
	Openers    []Artist `json:"openers,omitempty"`
	Venue      Venue    `json:"venue"`
	TicketURL  string   `json:"ticket_url,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	IsHometown bool     `json:"is_hometown"`
	IsFeatured bool     `json:"is_featured"`
}

// Day parses the show date as a local calendar date.
func (s Show) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, s.Date, time.Local)
}

// DisplayDate formats the date as "Fri, Oct 23" or returns the raw value when unparseable.
func (s Show) DisplayDate() string {
	d, err := s.Day()
	if err != nil {
		return s.Date
	}
	return d.Format("Mon, Jan 2")
}

// Price renders the minimum ticket price, or an empty string when unknown.
func (s Show) Price() string {
	if s.MinPrice == nil {
		return ""
	}
	return fmt.Sprintf("$%.0f+", *s.MinPrice)
}

// ShowsPage is one page of a filtered listing.
type ShowsPage struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalCount int    `json:"totalCount"`
	Shows      []Show `json:"shows"`
}

// VenueDetail is a venue with its upcoming shows.
type VenueDetail struct {
	Venue
	Description   string `json:"description,omitempty"`
	UpcomingShows []Show `json:"upcoming_shows"`
}

// Genre is a parent genre used by the genre filter.
type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ArtistCount int    `json:"artist_count"`
}

// Blurb is the daily editorial headline.
type Blurb struct {
	Headline string `json:"headline"`
	Blurb    string `json:"blurb"`
}

// FestivalSet is one artist slot in a festival lineup.
type FestivalSet struct {
	Artist    Artist `json:"artist"`
	Stage     string `json:"stage"`
	Day       string `json:"day,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Festival is the lineup payload for one festival edition.
type Festival struct {
	Name      string        `json:"name"`
	Year      int           `json:"year"`
	StartDate string        `json:"start_date,omitempty"`
	EndDate   string        `json:"end_date,omitempty"`
	Location  string        `json:"location,omitempty"`
	Sets      []FestivalSet `json:"sets"`
}

// ClickEvent is the analytics beacon body for an outbound link click.
type ClickEvent struct {
	SessionID       string `json:"sessionId"`
	LinkType        string `json:"linkType"`
	TargetURL       string `json:"targetUrl"`
	SourceComponent string `json:"sourceComponent,omitempty"`
	ShowID          string `json:"showId,omitempty"`
	ArtistID        string `json:"artistId,omitempty"`
	VenueID         string `json:"venueId,omitempty"`
}

// ShowExport is a full listing (every page) for one set of filters.
type ShowExport struct {
	Filters    map[string]string `json:"filters"`
	ExportedAt time.Time         `json:"exported_at"`
	TotalCount int               `json:"total_count"`
	Shows      []Show            `json:"shows"`
}

// PageResult is the outcome of fetching one listing page during an export.
type PageResult struct {
	Page  int    `json:"page"`
	Shows int    `json:"shows"`
	Error string `json:"error,omitempty"`
}

// ExportManifest summarizes an export run.
type ExportManifest struct {
	Format      string       `json:"format"`
	File        string       `json:"file"`
	TotalCount  int          `json:"total_count"`
	Exported    int          `json:"exported"`
	PagesFailed int          `json:"pages_failed"`
	Pages       []PageResult `json:"pages"`
}
