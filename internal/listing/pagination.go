package listing

import (
	"net/url"
	"strconv"
)

// PageSize is the fixed number of shows per listing page.
const PageSize = 20

// PageCount is ceil(total / size).
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Pages lists the page numbers a pagination control offers. It is nil when everything fits on
// one page, in which case no control is rendered at all.
func Pages(total, size int) []int {
	if total <= size {
		return nil
	}

	count := PageCount(total, size)
	pages := make([]int, count)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// NavigatorOpts configures the side effects of a [Navigator].
type NavigatorOpts struct {
	// Expansion is reset on every navigation.
	Expansion *Expansion
	// Scroll brings the main content region into view after a page change.
	Scroll func()
	// OnNavigate runs after every filter or page change, e.g. to stop the player.
	OnNavigate []func()
}

// Navigator writes filter and page changes into a [History].
type Navigator struct {
	history History
	opts    NavigatorOpts
}

// NewNavigator creates a navigator over h.
func NewNavigator(h History, opts NavigatorOpts) *Navigator {
	return &Navigator{history: h, opts: opts}
}

// Query is the current URL state.
func (n *Navigator) Query() url.Values {
	return n.history.Current()
}

// Filters parses the current URL state.
func (n *Navigator) Filters() Filters {
	return Parse(n.history.Current())
}

// Page is the current 1-based page.
func (n *Navigator) Page() int {
	return PageOf(n.history.Current())
}

// SetFilter changes one filter and returns the new URL state.
func (n *Navigator) SetFilter(key, value string) url.Values {
	q := Serialize(n.history.Current(), key, value)
	n.replace(q)
	return q
}

// SetDateRange changes both date bounds at once.
func (n *Navigator) SetDateRange(start, end string) url.Values {
	q := SetDateRange(n.history.Current(), start, end)
	n.replace(q)
	return q
}

// ClearFilters drops every parameter.
func (n *Navigator) ClearFilters() url.Values {
	q := Clear()
	n.replace(q)
	return q
}

// GoTo moves to page. Page 1 and below are represented by the absence of the page key.
func (n *Navigator) GoTo(page int) url.Values {
	q := clone(n.history.Current())
	if page <= 1 {
		q.Del(KeyPage)
	} else {
		q.Set(KeyPage, strconv.Itoa(page))
	}

	n.history.Push(q)
	if n.opts.Scroll != nil {
		n.opts.Scroll()
	}
	n.navigated()
	return q
}

func (n *Navigator) replace(q url.Values) {
	n.history.Replace(q)
	n.navigated()
}

func (n *Navigator) navigated() {
	if n.opts.Expansion != nil {
		n.opts.Expansion.Reset()
	}
	for _, fn := range n.opts.OnNavigate {
		fn()
	}
}

// Traversable is a [History] that can walk back and forward, like [MemoryHistory].
type Traversable interface {
	History
	Back() (url.Values, bool)
	Forward() (url.Values, bool)
}

// Back steps the history back when it supports traversal. Moving counts as navigation.
func (n *Navigator) Back() (url.Values, bool) {
	return n.traverse(func(t Traversable) (url.Values, bool) { return t.Back() })
}

// Forward steps the history forward when it supports traversal.
func (n *Navigator) Forward() (url.Values, bool) {
	return n.traverse(func(t Traversable) (url.Values, bool) { return t.Forward() })
}

func (n *Navigator) traverse(step func(Traversable) (url.Values, bool)) (url.Values, bool) {
	t, ok := n.history.(Traversable)
	if !ok {
		return n.history.Current(), false
	}

	q, moved := step(t)
	if moved {
		n.navigated()
	}
	return q, moved
}
