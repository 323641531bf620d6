// Package web implements the server-rendered HTMX frontend over the listing core.
//
// # Routes
//
//	GET  /                          → Listing page (HTMX requests get the listing fragment)
//	GET  /filter?key=K&value=V      → Change one filter; answers with HX-Replace-Url
//	GET  /filter/dates              → Change startDate and endDate together
//	GET  /filter/clear              → Drop every filter
//	GET  /page/{n}                  → Change page; answers with HX-Push-Url and a scroll trigger
//	GET  /shows/{id}                → Show detail
//	GET  /venues/{id}               → Venue with upcoming shows
//	GET  /festivals/{name}/{year}   → Festival lineup, ?order=stage groups by stage
//	POST /track                     → Outbound click beacon, forwarded to the analytics tracker
//
// # URL State
//
// The browser's URL is the only filter state. Action routes read it from the HX-Current-URL
// header (or the Referer without HTMX), apply the change through a [listing.Navigator] whose
// history writes HTMX headers, and render the new listing. Without HTMX the same routes
// redirect to the new listing URL.
//
// # Templates
//
// Templates are embedded and parsed once by [New]. Every page renders into a buffer first so a
// template error becomes a clean 500.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/server"
	"github.com/desertthunder/showfinder/internal/services"
	"github.com/desertthunder/showfinder/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxBeaconBytes bounds a click beacon body.
const maxBeaconBytes = 4 << 10

// Deps are the collaborators of an [App].
type Deps struct {
	Catalog services.Catalog
	Tracker services.ClickTracker
	Logger  *log.Logger
	// MapsKey enables the embedded map on venue pages.
	MapsKey string
	Now     func() time.Time
}

// App serves the web frontend.
type App struct {
	deps Deps
	tmpl *template.Template
}

// New parses the templates and returns an app ready to [App.Register].
func New(deps Deps) (*App, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	tmpl, err := template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &App{deps: deps, tmpl: tmpl}, nil
}

// Register adds the app's routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.index))
	r.Handle(http.MethodGet, "/filter", http.HandlerFunc(a.setFilter))
	r.Handle(http.MethodGet, "/filter/dates", http.HandlerFunc(a.setDates))
	r.Handle(http.MethodGet, "/filter/clear", http.HandlerFunc(a.clearFilters))
	r.Handle(http.MethodGet, "/page/{n}", http.HandlerFunc(a.goToPage))
	r.Handle(http.MethodGet, "/shows/{id}", http.HandlerFunc(a.show))
	r.Handle(http.MethodGet, "/venues/{id}", http.HandlerFunc(a.venue))
	r.Handle(http.MethodGet, "/festivals/{name}/{year}", http.HandlerFunc(a.festival))
	r.Handle(http.MethodPost, "/track", http.HandlerFunc(a.track))
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	a.respondListing(w, r, newResponseHistory(w, r.URL.Query()), isHTMX(r))
}

func (a *App) setFilter(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if !slices.Contains(listing.FilterKeys, key) {
		a.renderError(w, r, http.StatusBadRequest, "Unknown filter "+strconv.Quote(key)+".")
		return
	}

	h := newResponseHistory(w, currentQuery(r))
	a.navigator(h).SetFilter(key, r.URL.Query().Get("value"))
	a.afterNavigation(w, r, h)
}

func (a *App) setDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h := newResponseHistory(w, currentQuery(r))
	a.navigator(h).SetDateRange(q.Get(listing.KeyStartDate), q.Get(listing.KeyEndDate))
	a.afterNavigation(w, r, h)
}

func (a *App) clearFilters(w http.ResponseWriter, r *http.Request) {
	h := newResponseHistory(w, currentQuery(r))
	a.navigator(h).ClearFilters()
	a.afterNavigation(w, r, h)
}

func (a *App) goToPage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		a.renderError(w, r, http.StatusBadRequest, "That page number is not valid.")
		return
	}

	h := newResponseHistory(w, currentQuery(r))
	a.navigator(h).GoTo(n)
	a.afterNavigation(w, r, h)
}

func (a *App) navigator(h *responseHistory) *listing.Navigator {
	return listing.NewNavigator(h, listing.NavigatorOpts{Scroll: h.scroll})
}

// afterNavigation renders the listing fragment for HTMX, or redirects to the new URL.
func (a *App) afterNavigation(w http.ResponseWriter, r *http.Request, h *responseHistory) {
	if !isHTMX(r) {
		for _, k := range []string{HeaderPushURL, HeaderReplaceURL, HeaderTrigger} {
			w.Header().Del(k)
		}
		http.Redirect(w, r, ListingURL(h.Current()), http.StatusSeeOther)
		return
	}
	a.respondListing(w, r, h, true)
}

func (a *App) respondListing(w http.ResponseWriter, r *http.Request, h *responseHistory, fragment bool) {
	q := h.Current()
	ctrl := listing.NewController(nil)
	st := ctrl.Load(r.Context(), a.deps.Catalog, q, a.deps.Now())
	if st.Status == listing.Error {
		a.deps.Logger.Warn("listing failed", "query", q.Encode(), "message", st.Message)
	}

	data := listingData{
		State:   st,
		Filters: listing.Parse(q),
		Query:   q,
	}
	if st.Page != nil {
		data.Pages = pageLinks(q, st.Page.TotalCount)
	}

	if fragment {
		a.render(w, r, http.StatusOK, "listing", data)
		return
	}

	data.Venues, data.Genres, data.Blurb = a.reference(r.Context())
	a.render(w, r, http.StatusOK, "index", data)
}

// reference loads the filter options and the blurb. Failures degrade to empty options.
func (a *App) reference(ctx context.Context) ([]models.Venue, []models.Genre, *models.Blurb) {
	venues, err := a.deps.Catalog.ListVenues(ctx)
	if err != nil {
		a.deps.Logger.Warn("failed to load venues", "error", err)
	}
	genres, err := a.deps.Catalog.ListGenres(ctx)
	if err != nil {
		a.deps.Logger.Warn("failed to load genres", "error", err)
	}
	blurb, err := a.deps.Catalog.DailyBlurb(ctx)
	if err != nil {
		a.deps.Logger.Debug("no daily blurb", "error", err)
	}
	return venues, genres, blurb
}

func (a *App) show(w http.ResponseWriter, r *http.Request) {
	show, err := a.deps.Catalog.GetShow(r.Context(), r.PathValue("id"))
	if err != nil {
		a.renderError(w, r, statusFor(err), listing.ErrorMessage(err))
		return
	}
	a.render(w, r, http.StatusOK, "show", show)
}

func (a *App) venue(w http.ResponseWriter, r *http.Request) {
	venue, err := a.deps.Catalog.GetVenue(r.Context(), r.PathValue("id"))
	if err != nil {
		a.renderError(w, r, statusFor(err), venueMessage(err))
		return
	}
	a.render(w, r, http.StatusOK, "venue", venueData{VenueDetail: venue, MapsKey: a.deps.MapsKey})
}

func (a *App) festival(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		a.renderError(w, r, http.StatusBadRequest, "That festival year is not valid.")
		return
	}

	fest, err := a.deps.Catalog.Festival(r.Context(), r.PathValue("name"), year)
	if err != nil {
		a.renderError(w, r, statusFor(err), festivalMessage(err))
		return
	}

	order := listing.ByTime
	if r.URL.Query().Get("order") == listing.ByStage.String() {
		order = listing.ByStage
	}
	a.render(w, r, http.StatusOK, "festival", festivalData{
		Festival: fest,
		Order:    order,
		Sets:     listing.SortLineup(fest.Sets, order),
	})
}

// track forwards a click beacon. The response never reflects whether analytics worked.
func (a *App) track(w http.ResponseWriter, r *http.Request) {
	var event models.ClickEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBeaconBytes)).Decode(&event); err != nil {
		http.Error(w, "invalid click event", http.StatusBadRequest)
		return
	}
	if event.LinkType == "" || event.TargetURL == "" {
		http.Error(w, "linkType and targetUrl are required", http.StatusBadRequest)
		return
	}

	if a.deps.Tracker != nil {
		a.deps.Tracker.Track(event)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.deps.Logger.Error("failed to render template", "template", name, "error", err, "request_id", server.RequestIDFrom(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.deps.Logger.Debug("failed to write response", "error", err)
	}
}

func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	name := "error"
	if isHTMX(r) {
		name = "error-fragment"
	}
	a.render(w, r, status, name, errorData{Status: status, Message: message})
}

func statusFor(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, shared.ErrInvalidShowID), errors.Is(err, shared.ErrInvalidVenueID), errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrShowNotFound), errors.Is(err, shared.ErrVenueNotFound), errors.Is(err, shared.ErrFestivalNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrMissingConfig):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func venueMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrInvalidVenueID):
		return "That venue link is not valid."
	case errors.Is(err, shared.ErrVenueNotFound):
		return "That venue could not be found."
	default:
		return listing.ErrorMessage(err)
	}
}

func festivalMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrInvalidArgument):
		return "That festival link is not valid."
	case errors.Is(err, shared.ErrFestivalNotFound):
		return "That festival could not be found."
	default:
		return listing.ErrorMessage(err)
	}
}

type pageLink struct {
	N       int
	Href    string
	Current bool
}

type listingData struct {
	State   listing.State
	Filters listing.Filters
	Query   url.Values
	Pages   []pageLink
	Venues  []models.Venue
	Genres  []models.Genre
	Blurb   *models.Blurb
}

type venueData struct {
	*models.VenueDetail
	MapsKey string
}

type festivalData struct {
	*models.Festival
	Order listing.LineupOrder
	Sets  []models.FestivalSet
}

type errorData struct {
	Status  int
	Message string
}

// pageLinks is nil when everything fits on one page.
func pageLinks(q url.Values, total int) []pageLink {
	pages := listing.Pages(total, listing.PageSize)
	if pages == nil {
		return nil
	}

	current := listing.PageOf(q)
	links := make([]pageLink, len(pages))
	for i, n := range pages {
		target := listing.Parse(q).Values()
		if n > 1 {
			target.Set(listing.KeyPage, strconv.Itoa(n))
		}
		links[i] = pageLink{N: n, Href: ListingURL(target), Current: n == current}
	}
	return links
}

var funcs = template.FuncMap{
	"watchURL": services.WatchURL,
	"lineup": func(s models.Show) []models.Artist {
		return append([]models.Artist{s.Headliner}, s.Openers...)
	},
	"mapsEmbed": func(key string, v models.Venue) template.URL {
		q := url.Values{"key": {key}, "q": {v.Name + ", " + v.Location()}}
		return template.URL("https://www.google.com/maps/embed/v1/place?" + q.Encode())
	},
	"linkVideo":  func() string { return services.LinkVideo },
	"linkTicket": func() string { return services.LinkTicket },
	"linkVenue":  func() string { return services.LinkVenue },
}
