package listing

import (
	"slices"

	"github.com/desertthunder/showfinder/internal/models"
)

// Breakpoint is the viewport width, in pixels, at which rows expand inline.
const Breakpoint = 1024

// Viewport is the viewport class.
type Viewport int

const (
	Mobile Viewport = iota
	Desktop
)

func (v Viewport) String() string {
	if v == Desktop {
		return "desktop"
	}
	return "mobile"
}

// ClassFor classifies a viewport width in pixels.
func ClassFor(width int) Viewport {
	if width >= Breakpoint {
		return Desktop
	}
	return Mobile
}

// ViewportFunc reports the viewport class at the moment it is called.
type ViewportFunc func() Viewport

// Expansion is either a set of inline-expanded rows (desktop) or a single focused show
// (mobile). Only one representation is ever populated.
type Expansion struct {
	viewport ViewportFunc
	mode     Viewport
	expanded map[string]struct{}
	selected *models.Show
}

// NewExpansion creates an empty expansion that reads the viewport class through vp.
func NewExpansion(vp ViewportFunc) *Expansion {
	if vp == nil {
		vp = func() Viewport { return Desktop }
	}
	return &Expansion{viewport: vp, mode: vp(), expanded: map[string]struct{}{}}
}

// Mode is the representation currently in use.
func (e *Expansion) Mode() Viewport {
	return e.mode
}

// Activate is the row interaction: it reads the viewport class now and toggles inline on
// desktop or focuses the show on mobile.
func (e *Expansion) Activate(show models.Show) {
	if e.Sync() == Desktop {
		e.Toggle(show.ID)
		return
	}
	e.Select(show)
}

// Sync reads the viewport class and, when it differs from the representation in use, drops
// the old representation.
func (e *Expansion) Sync() Viewport {
	if class := e.viewport(); class != e.mode {
		e.Reset()
		e.mode = class
	}
	return e.mode
}

// Toggle expands or collapses id inline.
func (e *Expansion) Toggle(id string) bool {
	e.useMode(Desktop)
	if _, ok := e.expanded[id]; ok {
		delete(e.expanded, id)
		return false
	}
	e.expanded[id] = struct{}{}
	return true
}

// Select focuses show, replacing any previous selection.
func (e *Expansion) Select(show models.Show) {
	e.useMode(Mobile)
	e.selected = &show
}

// Close clears the focused show.
func (e *Expansion) Close() {
	e.selected = nil
}

// Reset clears both representations.
func (e *Expansion) Reset() {
	clear(e.expanded)
	e.selected = nil
}

// IsExpanded reports whether id is expanded inline.
func (e *Expansion) IsExpanded(id string) bool {
	_, ok := e.expanded[id]
	return ok
}

// Expanded lists the inline-expanded ids, sorted.
func (e *Expansion) Expanded() []string {
	ids := make([]string, 0, len(e.expanded))
	for id := range e.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Selected returns the focused show.
func (e *Expansion) Selected() (models.Show, bool) {
	if e.selected == nil {
		return models.Show{}, false
	}
	return *e.selected, true
}

func (e *Expansion) useMode(v Viewport) {
	if e.mode != v {
		e.Reset()
		e.mode = v
	}
}
