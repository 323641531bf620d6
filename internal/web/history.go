package web

import (
	"net/http"
	"net/url"
	"strings"
)

// HTMX response headers.
const (
	HeaderRequest    = "HX-Request"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderPushURL    = "HX-Push-Url"
	HeaderReplaceURL = "HX-Replace-Url"
	HeaderTrigger    = "HX-Trigger"
)

// ScrollEvent is the client event that brings the listing into view.
const ScrollEvent = "scroll-to-listing"

// responseHistory is a [listing.History] whose writes become HTMX headers on the response, so
// the browser's address bar and back button follow the server's navigation decisions.
type responseHistory struct {
	header  http.Header
	current url.Values
}

func newResponseHistory(w http.ResponseWriter, current url.Values) *responseHistory {
	if current == nil {
		current = url.Values{}
	}
	return &responseHistory{header: w.Header(), current: current}
}

func (h *responseHistory) Push(q url.Values) {
	h.current = q
	h.header.Del(HeaderReplaceURL)
	h.header.Set(HeaderPushURL, ListingURL(q))
}

func (h *responseHistory) Replace(q url.Values) {
	h.current = q
	h.header.Del(HeaderPushURL)
	h.header.Set(HeaderReplaceURL, ListingURL(q))
}

func (h *responseHistory) Current() url.Values {
	return h.current
}

// scroll asks the client to scroll the listing into view.
func (h *responseHistory) scroll() {
	h.header.Set(HeaderTrigger, ScrollEvent)
}

// ListingURL is the address of the listing for q.
func ListingURL(q url.Values) string {
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// currentQuery recovers the listing state the user is looking at: the HTMX current URL, then
// the referer. Only same-site listing URLs count.
func currentQuery(r *http.Request) url.Values {
	for _, raw := range []string{r.Header.Get(HeaderCurrentURL), r.Referer()} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Host != "" && !strings.EqualFold(u.Host, r.Host)) || (u.Path != "" && u.Path != "/") {
			continue
		}
		return u.Query()
	}
	return url.Values{}
}
