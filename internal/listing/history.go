package listing

import "net/url"

// History is the navigation history the listing writes its URL state into.
//
// Push adds an entry (the back button returns to the previous one); Replace overwrites the
// current entry. Filter changes replace, page changes push.
type History interface {
	Push(q url.Values)
	Replace(q url.Values)
	Current() url.Values
}

// MemoryHistory is an in-process [History] with browser-style back and forward.
type MemoryHistory struct {
	entries []url.Values
	index   int
}

// NewMemoryHistory starts a history with initial as its only entry.
func NewMemoryHistory(initial url.Values) *MemoryHistory {
	if initial == nil {
		initial = url.Values{}
	}
	return &MemoryHistory{entries: []url.Values{clone(initial)}}
}

// Push adds q after the current entry and discards any forward entries.
func (h *MemoryHistory) Push(q url.Values) {
	h.entries = append(h.entries[:h.index+1], clone(q))
	h.index++
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(q url.Values) {
	h.entries[h.index] = clone(q)
}

// Current returns a copy of the current entry.
func (h *MemoryHistory) Current() url.Values {
	return clone(h.entries[h.index])
}

// Back moves to the previous entry. ok is false at the start of history.
func (h *MemoryHistory) Back() (q url.Values, ok bool) {
	if h.index == 0 {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

// Forward moves to the next entry. ok is false at the end of history.
func (h *MemoryHistory) Forward() (q url.Values, ok bool) {
	if h.index == len(h.entries)-1 {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

// Len is the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}
