package ui

import (
	"context"
	"io"
	"net/url"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/showfinder/internal/listing"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/player"
	"github.com/desertthunder/showfinder/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	FocusView
	FilterView
)

// DefaultCellWidth approximates the pixel width of one terminal column.
const DefaultCellWidth = 8

// sortOptions is the cycle order for the sort key. The empty value is the upstream default.
var sortOptions = []string{"", "date", "artist", "venue"}

// Deps are the collaborators of a [Model].
type Deps struct {
	Catalog services.Catalog
	Tracker services.ClickTracker
	Logger  *log.Logger
	// Initial is a page fetched before the program started; it is shown without a request.
	Initial *models.ShowsPage
	// Query is the starting URL state.
	Query url.Values
	// CellWidth converts terminal columns to pixels for the viewport breakpoint.
	CellWidth int
	// Open opens a URL outside the terminal.
	Open func(string) error
	Now  func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	deps      Deps
	view      ViewState
	width     int
	height    int
	history   *listing.MemoryHistory
	nav       *listing.Navigator
	list      *listing.Controller
	expansion *listing.Expansion
	player    *player.Player
	sched     *player.ChannelScheduler
	venues    []models.Venue
	genres    []models.Genre
	cursor    int
	offset    int
	inputs    []textinput.Model
	focus     int
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	status    string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.CellWidth <= 0 {
		deps.CellWidth = DefaultCellWidth
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	m := &Model{
		ctx:     ctx,
		deps:    deps,
		view:    ListView,
		history: listing.NewMemoryHistory(deps.Query),
		list:    listing.NewController(deps.Initial),
		sched:   player.NewChannelScheduler(8),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok)),
		help:    help.New(),
		keys:    newKeyMap(),
		inputs:  newFilterInputs(),
	}
	m.player = player.New(m.sched)
	m.expansion = listing.NewExpansion(m.viewport)
	m.nav = listing.NewNavigator(m.history, listing.NavigatorOpts{
		Expansion:  m.expansion,
		Scroll:     func() { m.offset = 0 },
		OnNavigate: []func(){m.player.Stop, m.navigated},
	})
	return m
}

// Init initializes the TUI by loading the listing and the filter options.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.fetchReference(), m.waitForTick(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.expansion.Sync() == listing.Desktop && m.view == FocusView {
			m.view = ListView
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		switch m.view {
		case FocusView:
			return m.handleFocusKeys(msg)
		case FilterView:
			return m.handleFilterKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	if m.view == FilterView {
		return m, m.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgShowsLoaded:
		data := msg.data.(showsLoaded)
		if !m.list.Apply(data.token, data.page, data.err) {
			m.deps.Logger.Debug("discarded stale listing response", "token", data.token)
			return m, nil
		}
		if data.err != nil {
			m.deps.Logger.Error("failed to load shows", "error", data.err)
		}
		m.clampCursor()
		return m, nil

	case MsgReferenceLoaded:
		data := msg.data.(referenceLoaded)
		if data.err != nil {
			m.deps.Logger.Warn("failed to load filter options", "error", data.err)
		}
		m.venues, m.genres = data.venues, data.genres
		return m, nil

	case MsgPlayerTick:
		if fn, ok := msg.data.(func()); ok && fn != nil {
			fn()
		}
		return m, m.waitForTick()

	case MsgOpened:
		data := msg.data.(struct {
			target string
			err    error
		})
		if data.err != nil {
			m.status = "Could not open " + data.target
			m.deps.Logger.Warn("failed to open link", "url", data.target, "error", data.err)
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FocusView:
		return m.renderFocus()
	case FilterView:
		return m.renderFilterForm()
	default:
		return m.renderList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		m.player.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.back):
		m.expansion.Reset()
	case key.Matches(msg, m.keys.enter):
		if show, ok := m.current(); ok {
			m.expansion.Activate(show)
			if _, focused := m.expansion.Selected(); focused {
				m.view = FocusView
			}
		}
	case key.Matches(msg, m.keys.prevPage):
		if page := m.nav.Page(); page > 1 {
			m.nav.GoTo(page - 1)
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.nextPage):
		if page := m.nav.Page(); page < m.pageCount() {
			m.nav.GoTo(page + 1)
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.histBack):
		if _, moved := m.nav.Back(); moved {
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.histFwd):
		if _, moved := m.nav.Forward(); moved {
			return m, m.refresh()
		}
	case key.Matches(msg, m.keys.search):
		return m, m.openFilterForm()
	case key.Matches(msg, m.keys.venue):
		ids := make([]string, len(m.venues))
		for i, v := range m.venues {
			ids[i] = v.ID
		}
		return m, m.cycleFilter(listing.KeyVenue, ids)
	case key.Matches(msg, m.keys.genre):
		ids := make([]string, len(m.genres))
		for i, g := range m.genres {
			ids[i] = g.ID
		}
		return m, m.cycleFilter(listing.KeyGenre, ids)
	case key.Matches(msg, m.keys.sort):
		return m, m.cycleFilter(listing.KeySort, sortOptions[1:])
	case key.Matches(msg, m.keys.clear):
		m.nav.ClearFilters()
		return m, m.refresh()
	case key.Matches(msg, m.keys.reload):
		return m, m.refresh()
	default:
		if show, ok := m.current(); ok {
			return m, m.handleShowKeys(msg, show, "list")
		}
	}
	return m, nil
}

func (m *Model) handleFocusKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		m.player.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.expansion.Close()
		m.player.Stop()
		m.view = ListView
		return m, nil
	}

	show, ok := m.expansion.Selected()
	if !ok {
		m.view = ListView
		return m, nil
	}
	return m, m.handleShowKeys(msg, show, "focus")
}

// handleShowKeys covers the player and link keys shared by the list and focus views.
// Digits pick the lineup slot to play: 1 is the headliner, 2 and up the openers.
func (m *Model) handleShowKeys(msg tea.KeyMsg, show models.Show, source string) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.play):
		m.play(show, 0)
	case key.Matches(msg, m.keys.stop):
		m.player.Stop()
	case key.Matches(msg, m.keys.variant):
		if err := m.player.NextVariant(); err != nil {
			m.status = "Nothing is playing"
		}
	case key.Matches(msg, m.keys.watch):
		return m.watch(show, source)
	case key.Matches(msg, m.keys.tickets):
		if show.TicketURL == "" {
			m.status = "No ticket link for this show"
			return nil
		}
		return m.open(services.LinkTicket, show.TicketURL, source, show.ID, show.Headliner.ID, show.Venue.ID)
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.play(show, int(s[0]-'1'))
		}
	}
	return nil
}

// lineup is the headliner followed by the openers.
func lineup(show models.Show) []models.Artist {
	return append([]models.Artist{show.Headliner}, show.Openers...)
}

func (m *Model) play(show models.Show, slot int) {
	artists := lineup(show)
	if slot >= len(artists) {
		return
	}

	meta := player.MetadataFor(show, artists[slot])
	if meta == nil {
		m.status = "No video for " + artists[slot].Name
		return
	}
	m.player.Play(meta.Variants[0].VideoID, meta)
}

func (m *Model) watch(show models.Show, source string) tea.Cmd {
	id, artistID := "", show.Headliner.ID
	if cur := m.player.Current(); cur.Active() {
		id, artistID = cur.VideoID, cur.Metadata.ArtistID
	} else if meta := player.MetadataFor(show, show.Headliner); meta != nil {
		id = meta.Variants[0].VideoID
	}
	if id == "" {
		m.status = "No video for " + show.Headliner.Name
		return nil
	}
	return m.open(services.LinkVideo, services.WatchURL(id), source, show.ID, artistID, show.Venue.ID)
}

// open records the click and hands the URL to the opener. Tracking never delays the open.
func (m *Model) open(linkType, target, source, showID, artistID, venueID string) tea.Cmd {
	if m.deps.Tracker != nil {
		m.deps.Tracker.Track(models.ClickEvent{
			LinkType:        linkType,
			TargetURL:       target,
			SourceComponent: "tui-" + source,
			ShowID:          showID,
			ArtistID:        artistID,
			VenueID:         venueID,
		})
	}
	if m.deps.Open == nil {
		m.status = target
		return nil
	}

	open := m.deps.Open
	return func() tea.Msg {
		return openedMsg(target, open(target))
	}
}

// cycleFilter advances key to the next of options, wrapping through "no filter".
func (m *Model) cycleFilter(key string, options []string) tea.Cmd {
	if len(options) == 0 {
		return nil
	}

	cur := m.nav.Filters().Get(key)
	next := ""
	switch i := slices.Index(options, cur); {
	case i < 0 && cur == "":
		next = options[0]
	case i >= 0 && i+1 < len(options):
		next = options[i+1]
	}

	m.nav.SetFilter(key, next)
	return m.refresh()
}

// refresh issues a listing request for the current URL state.
func (m *Model) refresh() tea.Cmd {
	req, ok := m.list.Refresh(m.nav.Query(), m.deps.Now())
	if !ok {
		return nil
	}

	m.deps.Logger.Debug("loading shows", "token", req.Token, "query", req.Query.Encode())
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		page, err := catalog.ListShows(ctx, req.Query)
		return showsLoadedMsg(req.Token, page, err)
	}
}

func (m *Model) fetchReference() tea.Cmd {
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		venues, err := catalog.ListVenues(ctx)
		if err != nil {
			return referenceLoadedMsg(nil, nil, err)
		}
		genres, err := catalog.ListGenres(ctx)
		return referenceLoadedMsg(venues, genres, err)
	}
}

// waitForTick delivers the player's deferred work to Update, one tick at a time.
func (m *Model) waitForTick() tea.Cmd {
	ch := m.sched.C()
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return nil
		}
		return playerTickMsg(fn)
	}
}

// viewport classifies the terminal width in pixels. Before the first resize it is unknown and
// treated as desktop.
func (m *Model) viewport() listing.Viewport {
	if m.width == 0 {
		return listing.Desktop
	}
	return listing.ClassFor(m.width * m.deps.CellWidth)
}

func (m *Model) navigated() {
	m.cursor = 0
	if m.view == FocusView {
		m.view = ListView
	}
}

func (m *Model) shows() []models.Show {
	if st := m.list.State(); st.Status == listing.Ready && st.Page != nil {
		return st.Page.Shows
	}
	return nil
}

func (m *Model) current() (models.Show, bool) {
	shows := m.shows()
	if m.cursor < 0 || m.cursor >= len(shows) {
		return models.Show{}, false
	}
	return shows[m.cursor], true
}

func (m *Model) pageCount() int {
	st := m.list.State()
	if st.Page == nil {
		return 0
	}
	return listing.PageCount(st.Page.TotalCount, listing.PageSize)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.shows())
	m.cursor = max(0, min(m.cursor, n-1))

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *Model) visibleRows() int {
	return max(m.height-12, 5)
}
