package listing

import (
	"net/url"
	"slices"
	"strconv"
	"testing"

	"github.com/desertthunder/showfinder/internal/models"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := PageCount(tt.total, tt.size); got != tt.want {
			t.Errorf("PageCount(%d, %d): expected %d, got %d", tt.total, tt.size, tt.want, got)
		}
	}
}

func TestPages(t *testing.T) {
	t.Run("45 shows offer pages 1 to 3", func(t *testing.T) {
		pages := Pages(45, PageSize)
		if !slices.Equal(pages, []int{1, 2, 3}) {
			t.Errorf("expected [1 2 3], got %v", pages)
		}
		if slices.Contains(pages, 4) {
			t.Error("page 4 must not be offered")
		}
	})

	t.Run("no control when everything fits", func(t *testing.T) {
		for _, total := range []int{0, 1, 19, 20} {
			if pages := Pages(total, PageSize); pages != nil {
				t.Errorf("Pages(%d): expected nil, got %v", total, pages)
			}
		}
	})
}

type recordingHistory struct {
	current url.Values
	ops     []string
}

func (h *recordingHistory) Push(q url.Values)    { h.current, h.ops = q, append(h.ops, "push") }
func (h *recordingHistory) Replace(q url.Values) { h.current, h.ops = q, append(h.ops, "replace") }
func (h *recordingHistory) Current() url.Values  { return clone(h.current) }

func TestNavigator(t *testing.T) {
	setup := func(initial url.Values) (*Navigator, *recordingHistory, *Expansion, *int, *int) {
		h := &recordingHistory{current: initial}
		exp := NewExpansion(func() Viewport { return Desktop })
		scrolls, navs := 0, 0
		nav := NewNavigator(h, NavigatorOpts{
			Expansion:  exp,
			Scroll:     func() { scrolls++ },
			OnNavigate: []func(){func() { navs++ }},
		})
		return nav, h, exp, &scrolls, &navs
	}

	t.Run("GoTo", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1, 2, 3, 17} {
			nav, h, exp, scrolls, navs := setup(url.Values{KeyPage: {"5"}, KeyGenre: {"g1"}})
			exp.Toggle("a")

			q := nav.GoTo(n)

			switch {
			case n <= 1 && q.Has(KeyPage):
				t.Errorf("GoTo(%d): expected no page key, got %v", n, q)
			case n > 1 && q.Get(KeyPage) != strconv.Itoa(n):
				t.Errorf("GoTo(%d): expected page=%d, got %v", n, n, q)
			}
			if q.Get(KeyGenre) != "g1" {
				t.Errorf("GoTo(%d): expected filters to survive", n)
			}
			if !slices.Equal(h.ops, []string{"push"}) {
				t.Errorf("GoTo(%d): expected a single push, got %v", n, h.ops)
			}
			if *scrolls != 1 || *navs != 1 {
				t.Errorf("GoTo(%d): expected one scroll and one navigate hook, got %d/%d", n, *scrolls, *navs)
			}
			if len(exp.Expanded()) != 0 {
				t.Errorf("GoTo(%d): expected expansion reset", n)
			}
		}
	})

	t.Run("filter changes replace and reset paging", func(t *testing.T) {
		nav, h, exp, scrolls, navs := setup(url.Values{KeyPage: {"3"}})
		exp.Select(models.Show{ID: "a"})

		nav.SetFilter(KeyArtistSearch, "Valance")
		nav.SetDateRange("2026-11-01", "2026-11-30")
		nav.SetFilter(KeyArtistSearch, "")
		nav.ClearFilters()

		if !slices.Equal(h.ops, []string{"replace", "replace", "replace", "replace"}) {
			t.Errorf("expected only replaces, got %v", h.ops)
		}
		if *scrolls != 0 {
			t.Errorf("expected no scroll on filter change, got %d", *scrolls)
		}
		if *navs != 4 {
			t.Errorf("expected 4 navigate hooks, got %d", *navs)
		}
		if _, ok := exp.Selected(); ok {
			t.Error("expected focused show to be cleared")
		}
	})

	t.Run("page absent after any filter mutation", func(t *testing.T) {
		nav, _, _, _, _ := setup(nil)
		steps := []func(){
			func() { nav.GoTo(4) },
			func() { nav.SetFilter(KeyVenue, "v1") },
			func() { nav.GoTo(2) },
			func() { nav.SetDateRange("2026-11-01", "") },
			func() { nav.GoTo(9) },
			func() { nav.SetFilter(KeySort, "") },
		}
		for i, step := range steps {
			step()
			if i%2 == 1 && nav.Query().Has(KeyPage) {
				t.Errorf("step %d: expected no page key, got %v", i, nav.Query())
			}
		}
	})

	t.Run("back and forward with memory history", func(t *testing.T) {
		h := NewMemoryHistory(nil)
		exp := NewExpansion(nil)
		nav := NewNavigator(h, NavigatorOpts{Expansion: exp})

		nav.GoTo(2)
		nav.GoTo(3)
		nav.SetFilter(KeyArtistSearch, "Valance")

		if h.Len() != 3 {
			t.Fatalf("expected 3 entries, got %d", h.Len())
		}

		exp.Toggle("a")
		q, ok := nav.Back()
		if !ok || PageOf(q) != 2 {
			t.Errorf("expected back to page 2, got %v (%v)", q, ok)
		}
		if exp.IsExpanded("a") {
			t.Error("expected back to reset expansion")
		}

		q, ok = nav.Forward()
		if !ok || q.Get(KeyArtistSearch) != "Valance" || q.Has(KeyPage) {
			t.Errorf("expected forward to the replaced filter entry, got %v", q)
		}
		if _, ok := nav.Forward(); ok {
			t.Error("expected forward to stop at the end")
		}
	})

	t.Run("back is a no-op without traversal", func(t *testing.T) {
		nav, _, _, _, navs := setup(url.Values{KeyPage: {"2"}})
		if _, ok := nav.Back(); ok {
			t.Error("expected recording history not to traverse")
		}
		if *navs != 0 {
			t.Error("expected no navigate hook")
		}
	})
}
