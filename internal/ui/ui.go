package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/session"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
)

// searchDebounce is how long the search input must be quiet before a query
// is issued.
const searchDebounce = 500 * time.Millisecond

// noticeTimeout is how long a transient notice stays on screen.
const noticeTimeout = 4 * time.Second

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	RegisterView
	PlaylistListView
	PlaylistFormView
	ConfirmDeleteView
	SongListView
)

// Backend is the subset of the API client the TUI drives.
type Backend interface {
	Authenticate(ctx context.Context, token string) error
	Login(ctx context.Context, creds models.Credentials) (*api.LoginResult, error)
	Register(ctx context.Context, reg models.Registration) error
	Playlists(ctx context.Context, code, refreshToken string) (*api.PlaylistsResult, error)
	CreatePlaylist(ctx context.Context, form models.PlaylistForm, refreshToken string) error
	UpdatePlaylist(ctx context.Context, form models.PlaylistForm, refreshToken, playlistID string) error
	DeletePlaylist(ctx context.Context, playlistID string) error
	PlaylistSongs(ctx context.Context, playlistID, refreshToken string) ([]models.Track, error)
	SearchTracks(ctx context.Context, query, refreshToken string) ([]models.Track, error)
	AddTrack(ctx context.Context, trackID, playlistID, refreshToken string) (bool, error)
	RemoveTrack(ctx context.Context, trackID, playlistID, refreshToken string) error
}

// TokenStore is the subset of the token store the TUI needs.
type TokenStore interface {
	Get(name string) (string, error)
	Set(name, value string) error
	Clear() error
	Snapshot() (map[string]string, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	client Backend
	tokens TokenStore
	cache  session.PlaylistCacher
	config *shared.Config
	logger *log.Logger

	view   ViewState
	width  int
	height int
	keys   keyMap
	help   help.Model
	spin   spinner.Model

	pending   pendingCounter
	notice    string
	noticeSeq int

	// redirected keeps the authorization hand-off to a single attempt per
	// session, including the reauth-required path.
	redirected bool

	loginForm    *form
	registerForm *form
	playlistForm *form
	editing      models.Playlist

	playlists    []models.Playlist
	playlistList list.Model
	deleting     models.Playlist

	current     models.Playlist
	trackList   list.Model
	searchInput textinput.Model
	searchList  list.Model
	searchOpen  bool
	debounce    debouncer
}

// NewModel creates a new TUI model with the provided dependencies. cache may
// be nil.
func NewModel(ctx context.Context, client Backend, tokens TokenStore, cache session.PlaylistCacher, config *shared.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.ok

	search := textinput.New()
	search.Placeholder = "Search tracks"
	search.CharLimit = 128

	m := &Model{
		ctx:          ctx,
		client:       client,
		tokens:       tokens,
		cache:        cache,
		config:       config,
		logger:       logger,
		keys:         newKeyMap(),
		help:         help.New(),
		spin:         spin,
		loginForm:    newLoginForm(),
		registerForm: newRegisterForm(),
		searchInput:  search,
		playlistList: newItemList("Playlists"),
		trackList:    newItemList("Tracks"),
		searchList:   newItemList("Results"),
	}

	m.view = initialView(tokens)

	return m
}

func newItemList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

// initialView applies the route guards to pick the first screen. A present
// token lands on playlists, where the session bootstrap runs.
func initialView(tokens TokenStore) ViewState {
	if d := session.RequireAuth(tokens); d.Allow {
		return PlaylistListView
	}
	return LoginView
}

// Init starts the spinner and, when the session token admits us to the
// playlist screen, runs the one-shot session bootstrap.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.view == PlaylistListView {
		cmds = append(cmds, m.bootstrapCmd(""))
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.trackList.SetSize(msg.Width-4, msg.Height-10)
		m.searchList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case bootstrapDoneMsg:
		return m.handleBootstrapDone(msg)
	case redirectDoneMsg:
		return m.handleRedirectDone(msg)
	case authDoneMsg:
		return m.handleAuthDone(msg)
	case playlistsFetchedMsg:
		return m.handlePlaylistsFetched(msg)
	case playlistMutatedMsg:
		return m.handlePlaylistMutated(msg)
	case songsFetchedMsg:
		return m.handleSongsFetched(msg)
	case searchTickMsg:
		return m.handleSearchTick(msg)
	case searchDoneMsg:
		return m.handleSearchDone(msg)
	case trackMutatedMsg:
		return m.handleTrackMutated(msg)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case LoginView:
		return m.handleLoginKeys(msg)
	case RegisterView:
		return m.handleRegisterKeys(msg)
	case PlaylistListView:
		return m.handlePlaylistListKeys(msg)
	case PlaylistFormView:
		return m.handlePlaylistFormKeys(msg)
	case ConfirmDeleteView:
		return m.handleConfirmDeleteKeys(msg)
	case SongListView:
		return m.handleSongListKeys(msg)
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "down", "up":
		m.loginForm.next()
		return m, nil
	case "ctrl+r":
		// Register is gated to anonymous sessions, same as login.
		if d := session.RequireAnonymous(m.tokens); !d.Allow {
			m.view = PlaylistListView
			return m, nil
		}
		m.view = RegisterView
		return m, nil
	case "enter":
		creds := m.loginForm.credentials()
		if errs := creds.Validate(); !errs.Valid() {
			m.loginForm.setErrors(errs)
			return m, nil
		}
		m.pending.begin()
		return m, m.loginCmd(creds)
	}

	return m, m.loginForm.update(msg)
}

func (m *Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LoginView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.registerForm.next()
		return m, nil
	case "enter":
		reg := m.registerForm.registration()
		if errs := reg.Validate(); !errs.Valid() {
			m.registerForm.setErrors(errs)
			return m, nil
		}
		m.pending.begin()
		return m, m.registerCmd(reg)
	}

	return m, m.registerForm.update(msg)
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, m.logout()
	case "n":
		m.editing = models.Playlist{}
		m.playlistForm = newPlaylistForm(m.editing)
		m.view = PlaylistFormView
		return m, nil
	case "e":
		if pl, ok := m.selectedPlaylist(); ok {
			m.editing = pl
			m.playlistForm = newPlaylistForm(pl)
			m.view = PlaylistFormView
		}
		return m, nil
	case "d":
		if pl, ok := m.selectedPlaylist(); ok {
			m.deleting = pl
			m.view = ConfirmDeleteView
		}
		return m, nil
	case "enter":
		if pl, ok := m.selectedPlaylist(); ok {
			m.current = pl
			m.pending.begin()
			return m, m.songsCmd(pl)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.playlistForm.next()
		return m, nil
	case "enter":
		pform := m.playlistForm.playlistForm()
		if errs := pform.Validate(); !errs.Valid() {
			m.playlistForm.setErrors(errs)
			return m, nil
		}
		m.pending.begin()
		return m, m.savePlaylistCmd(pform, m.editing)
	}

	return m, m.playlistForm.update(msg)
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.pending.begin()
		return m, m.deletePlaylistCmd(m.deleting)
	case "n", "esc", "q":
		m.deleting = models.Playlist{}
		m.view = PlaylistListView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchOpen && m.searchInput.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closeSearch()
			return m, nil
		case "enter", "down":
			// Hand focus to the result list.
			m.searchInput.Blur()
			return m, nil
		default:
			before := m.searchInput.Value()
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			if m.searchInput.Value() != before {
				seq := m.debounce.arm()
				return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
					return searchTickMsg{seq: seq}
				}))
			}
			return m, cmd
		}
	}

	if m.searchOpen {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closeSearch()
			return m, nil
		case "/":
			m.searchInput.Focus()
			return m, nil
		case "enter":
			if item, ok := m.searchList.SelectedItem().(trackItem); ok {
				m.pending.begin()
				return m, m.addTrackCmd(item.track)
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.searchList, cmd = m.searchList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "/":
		m.searchOpen = true
		m.searchInput.Focus()
		return m, nil
	case "d":
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			m.pending.begin()
			return m, m.removeTrackCmd(item.track)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) selectedPlaylist() (models.Playlist, bool) {
	if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
		return item.playlist, true
	}
	return models.Playlist{}, false
}

func (m *Model) closeSearch() {
	m.searchOpen = false
	m.searchInput.Blur()
	m.searchInput.SetValue("")
	m.searchList.SetItems([]list.Item{})
	// Invalidate any armed timer so a late tick cannot fire a query.
	m.debounce.arm()
}

// showNotice displays a transient message and schedules its expiry. A newer
// notice supersedes the timer of an older one.
func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) refreshToken() string {
	token, err := m.tokens.Get(store.KeyRefreshToken)
	if err != nil {
		m.logger.Warn("refresh token read failed", "error", err)
		return ""
	}
	return token
}

func (m *Model) logout() tea.Cmd {
	if err := m.tokens.Clear(); err != nil {
		return m.showNotice("Could not clear session")
	}
	m.view = LoginView
	m.loginForm = newLoginForm()
	m.registerForm = newRegisterForm()
	m.playlists = nil
	m.playlistList.SetItems([]list.Item{})
	m.redirected = false
	return nil
}
