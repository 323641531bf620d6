package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/services"
	tu "github.com/desertthunder/showfinder/internal/testing"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
}

func testPages() map[int]*models.ShowsPage {
	first := tu.MakeShows(20)
	first[0].Headliner.VideoID = "dQw4w9WgXcQ"
	first[0].Headliner.LiveVideoID = "9bZkp7q19f0"
	first[0].TicketURL = "https://tickets.example.com/1"
	first[0].Openers = []models.Artist{{ID: "opener-1", Name: "Opener", VideoID: "kJQP7kiw5Fk"}}

	return map[int]*models.ShowsPage{
		1: {Page: 1, Limit: 20, TotalCount: 45, Shows: first},
		2: {Page: 2, Limit: 20, TotalCount: 45, Shows: tu.MakeShows(20)},
		3: {Page: 3, Limit: 20, TotalCount: 45, Shows: tu.MakeShows(5)},
	}
}

type harness struct {
	m       *Model
	catalog *tu.MockCatalog
	tracker *tu.MockTracker
	opened  []string
}

func newHarness(t *testing.T, initial bool) *harness {
	t.Helper()
	h := &harness{catalog: &tu.MockCatalog{Pages: testPages()}, tracker: &tu.MockTracker{}}

	var first *models.ShowsPage
	if initial {
		first = h.catalog.Pages[1]
	}
	h.m = NewModel(context.Background(), Deps{
		Catalog: h.catalog,
		Tracker: h.tracker,
		Initial: first,
		Now:     fixedNow,
		Open: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
	})
	h.m.Init()
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key and runs any command that produces one of the model's own messages.
// Keystrokes typed into the filter form only schedule cursor blinks, so their commands are
// dropped.
func (h *harness) press(keys ...string) {
	for _, k := range keys {
		typing := h.m.view == FilterView && k != "enter"
		_, cmd := h.m.Update(keyMsg(k))
		if !typing {
			h.run(cmd)
		}
	}
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(Msg); ok {
		h.m.Update(msg)
	}
}

func (h *harness) resize(cols int) {
	h.m.Update(tea.WindowSizeMsg{Width: cols, Height: 40})
}

// tick delivers the player's deferred work the way the program loop would.
func (h *harness) tick() {
	for {
		select {
		case fn := <-h.m.sched.C():
			h.m.Update(playerTickMsg(fn))
		default:
			return
		}
	}
}

func TestInitialPage(t *testing.T) {
	t.Run("Shown Without A Request", func(t *testing.T) {
		h := newHarness(t, true)
		if h.catalog.CallCount() != 0 {
			t.Errorf("expected no upstream calls, got %d", h.catalog.CallCount())
		}
		if st := h.m.list.State(); st.Status != listing.Ready || len(st.Page.Shows) != 20 {
			t.Errorf("expected ready state with 20 shows, got %v", st.Status)
		}

		h.press("r")
		if h.catalog.CallCount() != 1 {
			t.Errorf("expected reload to fetch, got %d calls", h.catalog.CallCount())
		}
	})

	t.Run("Fetched When Absent", func(t *testing.T) {
		h := newHarness(t, false)
		if h.m.list.State().Status != listing.Loading {
			t.Fatal("expected loading before the first response")
		}
		if !strings.Contains(h.m.View(), "Loading shows") {
			t.Error("expected loading placeholder in view")
		}

		h.run(h.m.refresh())
		if st := h.m.list.State(); st.Status != listing.Ready {
			t.Fatalf("expected ready, got %v", st.Status)
		}
		q := h.catalog.Calls[0]
		if q.Get("startDate") != "2026-10-19" || q.Get("page") != "1" || q.Get("limit") != "20" {
			t.Errorf("unexpected upstream query %v", q)
		}
	})
}

func TestPaging(t *testing.T) {
	t.Run("Page Changes Push History", func(t *testing.T) {
		h := newHarness(t, true)

		h.press("l")
		if got := h.m.nav.Page(); got != 2 {
			t.Fatalf("expected page 2, got %d", got)
		}
		if h.m.history.Len() != 2 {
			t.Errorf("expected a pushed entry, history has %d", h.m.history.Len())
		}
		if st := h.m.list.State(); st.Page.Page != 2 {
			t.Errorf("expected page 2 to be loaded, got %d", st.Page.Page)
		}

		h.press("l", "l")
		if got := h.m.nav.Page(); got != 3 {
			t.Errorf("expected to stop at the last page, got %d", got)
		}
	})

	t.Run("Back And Forward", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("l", "[")

		if h.m.nav.Query().Has(listing.KeyPage) {
			t.Errorf("expected page 1 to have no page key, got %v", h.m.nav.Query())
		}
		if st := h.m.list.State(); st.Page.Page != 1 {
			t.Errorf("expected page 1 after back, got %d", st.Page.Page)
		}

		h.press("]")
		if h.m.nav.Page() != 2 {
			t.Errorf("expected forward to return to page 2, got %d", h.m.nav.Page())
		}
	})

	t.Run("Pagination Line Only With Several Pages", func(t *testing.T) {
		h := newHarness(t, true)
		if !strings.Contains(h.m.View(), "Page 1 of 3") {
			t.Error("expected pagination line")
		}

		h.catalog.Pages[1] = &models.ShowsPage{Page: 1, Limit: 20, TotalCount: 20, Shows: tu.MakeShows(20)}
		h.press("r")
		if strings.Contains(h.m.View(), "Page 1 of") {
			t.Error("expected no pagination line for a single page")
		}
	})
}

func TestFilters(t *testing.T) {
	t.Run("Sort Cycle Replaces History", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("l", "S")

		q := h.m.nav.Query()
		if q.Get(listing.KeySort) != "date" {
			t.Errorf("expected sortBy=date, got %v", q)
		}
		if q.Has(listing.KeyPage) {
			t.Error("expected a filter change to drop the page")
		}
		if h.m.history.Len() != 2 {
			t.Errorf("expected the filter change to replace, history has %d", h.m.history.Len())
		}

		h.press("S", "S", "S")
		if h.m.nav.Query().Has(listing.KeySort) {
			t.Error("expected the cycle to wrap back to the default order")
		}
	})

	t.Run("Venue Cycle", func(t *testing.T) {
		h := newHarness(t, true)
		h.m.Update(referenceLoadedMsg([]models.Venue{{ID: "v1", Name: "Bottom of the Hill"}, {ID: "v2", Name: "Bimbo's"}}, nil, nil))

		h.press("v")
		if got := h.m.nav.Filters().VenueID; got != "v1" {
			t.Errorf("expected v1, got %q", got)
		}
		if !strings.Contains(h.m.View(), "venue Bottom of the Hill") {
			t.Error("expected venue name in filter summary")
		}
		h.press("v", "v")
		if got := h.m.nav.Filters().VenueID; got != "" {
			t.Errorf("expected cleared venue, got %q", got)
		}
	})

	t.Run("Form Applies Artist Search", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("/")
		if h.m.view != FilterView {
			t.Fatal("expected filter view")
		}

		h.press("v", "a", "l", "enter")
		if h.m.view != ListView {
			t.Error("expected to return to the list")
		}
		if got := h.m.nav.Filters().ArtistSearch; got != "val" {
			t.Errorf("expected artistSearch=val, got %q", got)
		}
		last := h.catalog.Calls[len(h.catalog.Calls)-1]
		if last.Has("startDate") {
			t.Errorf("expected no default start date with an artist search, got %v", last)
		}
	})

	t.Run("Untouched Form Does Not Refetch", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("/", "enter")
		if h.catalog.CallCount() != 0 {
			t.Errorf("expected no fetch, got %d", h.catalog.CallCount())
		}
	})
}

func TestListStates(t *testing.T) {
	t.Run("Error Offers A Way Back", func(t *testing.T) {
		h := newHarness(t, false)
		h.catalog.ListErr = &services.APIError{Status: 500, Message: "database offline"}
		h.run(h.m.refresh())

		view := h.m.View()
		if !strings.Contains(view, "database offline") || !strings.Contains(view, "c to clear") {
			t.Errorf("unexpected error view:\n%s", view)
		}

		h.catalog.ListErr = nil
		h.press("c")
		if st := h.m.list.State(); st.Status != listing.Ready {
			t.Errorf("expected recovery after clearing, got %v", st.Status)
		}
	})

	t.Run("Empty Is Not An Error", func(t *testing.T) {
		h := newHarness(t, false)
		h.catalog.Pages = nil
		h.run(h.m.refresh())
		if !strings.Contains(h.m.View(), "No shows match") {
			t.Error("expected empty state")
		}
	})

	t.Run("Stale Response Discarded", func(t *testing.T) {
		h := newHarness(t, false)
		first := h.m.refresh()
		h.m.nav.GoTo(2)
		second := h.m.refresh()

		h.run(second)
		h.run(first)
		if st := h.m.list.State(); st.Page.Page != 2 {
			t.Errorf("expected the latest request to win, got page %d", st.Page.Page)
		}
	})
}

func TestExpansion(t *testing.T) {
	t.Run("Desktop Expands Inline", func(t *testing.T) {
		h := newHarness(t, true)
		h.resize(200)
		h.press("enter", "j", "enter")

		if h.m.view != ListView {
			t.Error("expected to stay on the list")
		}
		if got := h.m.expansion.Expanded(); len(got) != 2 {
			t.Errorf("expected two expanded rows, got %v", got)
		}
	})

	t.Run("Mobile Focuses", func(t *testing.T) {
		h := newHarness(t, true)
		h.resize(80)
		h.press("enter")

		if h.m.view != FocusView {
			t.Fatal("expected focus view")
		}
		if len(h.m.expansion.Expanded()) != 0 {
			t.Error("expected no inline expansion on mobile")
		}
	})

	t.Run("Resize Crosses The Breakpoint", func(t *testing.T) {
		h := newHarness(t, true)
		h.resize(200)
		h.press("enter")
		h.resize(80)
		if len(h.m.expansion.Expanded()) != 0 {
			t.Error("expected inline expansion to clear on resize to mobile")
		}

		h.press("enter")
		h.resize(200)
		if h.m.view != ListView {
			t.Error("expected the focus view to close on resize to desktop")
		}
		if _, ok := h.m.expansion.Selected(); ok {
			t.Error("expected the selection to clear")
		}
	})

	t.Run("Navigation Resets", func(t *testing.T) {
		h := newHarness(t, true)
		h.resize(200)
		h.press("enter", "l")
		if len(h.m.expansion.Expanded()) != 0 {
			t.Error("expected page change to collapse rows")
		}
	})
}

func TestPlayer(t *testing.T) {
	t.Run("Play Commits On The Next Tick", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p")
		if h.m.player.Current().Active() {
			t.Fatal("expected the slot to stay clear until the next tick")
		}

		h.tick()
		cur := h.m.player.Current()
		if cur.VideoID != "dQw4w9WgXcQ" || cur.Metadata.ArtistName != "Artist 1" {
			t.Errorf("unexpected now playing %+v", cur)
		}
		if !strings.Contains(h.m.View(), "▶ Artist 1") {
			t.Error("expected now-playing panel")
		}
	})

	t.Run("Opener Resets The Slot", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p")
		h.tick()
		h.press("2")

		if h.m.player.Current().Active() {
			t.Error("expected a clear slot between videos")
		}
		h.tick()
		if got := h.m.player.Current().VideoID; got != "kJQP7kiw5Fk" {
			t.Errorf("expected opener video, got %q", got)
		}
	})

	t.Run("Variant Switch", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p")
		h.tick()
		h.press("tab")

		cur := h.m.player.Current()
		if cur.VideoID != "9bZkp7q19f0" || cur.Metadata.ArtistName != "Artist 1" {
			t.Errorf("expected live variant with same metadata, got %+v", cur)
		}
	})

	t.Run("No Video", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("j", "p")
		h.tick()
		if h.m.player.Current().Active() {
			t.Error("expected nothing to play")
		}
		if !strings.Contains(h.m.View(), "No video for Artist 2") {
			t.Error("expected status message")
		}
	})

	t.Run("Closing Focus Stops", func(t *testing.T) {
		h := newHarness(t, true)
		h.resize(80)
		h.press("enter", "p")
		h.tick()
		if !h.m.player.Current().Active() {
			t.Fatal("expected playback in focus view")
		}

		h.press("esc")
		if h.m.player.Current().Active() {
			t.Error("expected close to stop playback")
		}
		if h.m.view != ListView {
			t.Error("expected list view")
		}
	})

	t.Run("Navigation Stops", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p")
		h.tick()
		h.press("S")
		if h.m.player.Current().Active() {
			t.Error("expected filter change to stop playback")
		}
	})

	t.Run("Stop Cancels Pending", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p", "s")
		h.tick()
		if h.m.player.Current().Active() {
			t.Error("expected stop to cancel the pending switch")
		}
	})
}

func TestLinks(t *testing.T) {
	t.Run("Tickets Are Tracked", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("t")

		if len(h.opened) != 1 || h.opened[0] != "https://tickets.example.com/1" {
			t.Errorf("unexpected opened urls %v", h.opened)
		}
		if len(h.tracker.Events) != 1 {
			t.Fatalf("expected one tracked click, got %d", len(h.tracker.Events))
		}
		ev := h.tracker.Events[0]
		if ev.LinkType != services.LinkTicket || ev.SourceComponent != "tui-list" || ev.ShowID != h.catalog.Pages[1].Shows[0].ID {
			t.Errorf("unexpected event %+v", ev)
		}
	})

	t.Run("Missing Ticket Link", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("j", "t")
		if len(h.opened) != 0 || len(h.tracker.Events) != 0 {
			t.Error("expected nothing to open")
		}
	})

	t.Run("Video Opens Now Playing", func(t *testing.T) {
		h := newHarness(t, true)
		h.press("p")
		h.tick()
		h.press("tab", "o")
		if len(h.opened) != 1 || h.opened[0] != services.WatchURL("9bZkp7q19f0") {
			t.Errorf("unexpected opened urls %v", h.opened)
		}
	})

	t.Run("Open Failure", func(t *testing.T) {
		h := newHarness(t, true)
		h.m.deps.Open = func(string) error { return errors.New("no browser") }
		h.press("t")
		if !strings.Contains(h.m.View(), "Could not open") {
			t.Error("expected open failure status")
		}
	})
}
