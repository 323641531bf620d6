package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	prevPage key.Binding
	nextPage key.Binding
	histBack key.Binding
	histFwd  key.Binding
	search   key.Binding
	venue    key.Binding
	genre    key.Binding
	sort     key.Binding
	clear    key.Binding
	play     key.Binding
	stop     key.Binding
	variant  key.Binding
	watch    key.Binding
	tickets  key.Binding
	reload   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		prevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		nextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		histBack: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "history back")),
		histFwd:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "history forward")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		venue:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "venue")),
		genre:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		sort:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		play:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		variant:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next video")),
		watch:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open video")),
		tickets:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tickets")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.play, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.prevPage, k.nextPage, k.histBack, k.histFwd},
		{k.search, k.venue, k.genre, k.sort, k.clear},
		{k.play, k.stop, k.variant, k.watch, k.tickets},
		{k.reload, k.quit},
	}
}
