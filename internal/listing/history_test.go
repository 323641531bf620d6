package listing

import (
	"net/url"
	"testing"
)

func TestMemoryHistory(t *testing.T) {
	h := NewMemoryHistory(url.Values{KeyGenre: {"g1"}})

	h.Push(url.Values{KeyPage: {"2"}})
	h.Push(url.Values{KeyPage: {"3"}})
	h.Replace(url.Values{KeyPage: {"3"}, KeySort: {"date"}})

	if h.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", h.Len())
	}
	if h.Current().Get(KeySort) != "date" {
		t.Errorf("expected replaced entry, got %v", h.Current())
	}

	q, ok := h.Back()
	if !ok || q.Get(KeyPage) != "2" {
		t.Errorf("expected page 2, got %v", q)
	}
	q, ok = h.Back()
	if !ok || q.Get(KeyGenre) != "g1" {
		t.Errorf("expected initial entry, got %v", q)
	}
	if _, ok := h.Back(); ok {
		t.Error("expected back to stop at the first entry")
	}

	h.Push(url.Values{KeyPage: {"9"}})
	if h.Len() != 2 {
		t.Errorf("expected push to drop forward entries, got %d", h.Len())
	}
	if _, ok := h.Forward(); ok {
		t.Error("expected no forward entry after push")
	}

	t.Run("entries are copied", func(t *testing.T) {
		q := url.Values{KeyPage: {"4"}}
		h.Push(q)
		q.Set(KeyPage, "5")
		if h.Current().Get(KeyPage) != "4" {
			t.Error("expected history to hold its own copy")
		}
		cur := h.Current()
		cur.Set(KeyPage, "6")
		if h.Current().Get(KeyPage) != "4" {
			t.Error("expected Current to return a copy")
		}
	})
}
