package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/server"
	"github.com/plx-dev/plx/internal/session"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
)

// apiMessage extracts the backend's message from an error for display,
// falling back to a generic line.
func apiMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong"
}

// bootstrapCmd runs a fresh one-shot session bootstrap. code is non-empty
// only right after an authorization hand-off.
func (m *Model) bootstrapCmd(code string) tea.Cmd {
	boot := session.NewBootstrap(m.tokens, m.client, m.cache, m.logger)

	return func() tea.Msg {
		inputs, err := session.ReadInputs(m.tokens, code)
		if err != nil {
			return bootstrapDoneMsg{err: err}
		}

		outcome, err := boot.Run(m.ctx, inputs)
		return bootstrapDoneMsg{outcome: outcome, err: err}
	}
}

// redirectCmd opens the external authorization endpoint in the browser and
// waits for the local callback to capture the one-time code.
func (m *Model) redirectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := shared.OpenBrowser(m.config.Auth.AuthorizeURL); err != nil {
			return redirectDoneMsg{err: err}
		}

		code, err := server.Capture(m.ctx, m.config.Auth.CallbackHost, m.config.Auth.CallbackPort, "", m.logger)
		return redirectDoneMsg{code: code, err: err}
	}
}

func (m *Model) loginCmd(creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Login(m.ctx, creds)
		if err != nil {
			return authDoneMsg{err: err}
		}

		if err := m.tokens.Set(store.KeySessionToken, result.Token); err != nil {
			return authDoneMsg{err: err}
		}
		if err := m.client.Authenticate(m.ctx, result.Token); err != nil {
			return authDoneMsg{err: err}
		}

		return authDoneMsg{}
	}
}

func (m *Model) registerCmd(reg models.Registration) tea.Cmd {
	return func() tea.Msg {
		err := m.client.Register(m.ctx, reg)
		return authDoneMsg{registered: true, err: err}
	}
}

// fetchPlaylistsCmd re-fetches the playlist collection after a mutation.
// Mutations are not applied optimistically; the refreshed list is the
// source of truth.
func (m *Model) fetchPlaylistsCmd() tea.Cmd {
	refresh := m.refreshToken()

	return func() tea.Msg {
		result, err := m.client.Playlists(m.ctx, "", refresh)
		if err != nil {
			return playlistsFetchedMsg{err: err}
		}

		if result.RefreshToken != "" {
			if err := m.tokens.Set(store.KeyRefreshToken, result.RefreshToken); err != nil {
				return playlistsFetchedMsg{err: err}
			}
		}
		if m.cache != nil {
			if err := m.cache.Replace(result.Playlists); err != nil {
				m.logger.Warn("playlist cache update failed", "error", err)
			}
		}

		return playlistsFetchedMsg{playlists: result.Playlists}
	}
}

func (m *Model) savePlaylistCmd(pform models.PlaylistForm, editing models.Playlist) tea.Cmd {
	refresh := m.refreshToken()

	return func() tea.Msg {
		var err error
		if editing.ID == "" {
			err = m.client.CreatePlaylist(m.ctx, pform, refresh)
		} else {
			err = m.client.UpdatePlaylist(m.ctx, pform, refresh, editing.ID)
		}
		return playlistMutatedMsg{err: err}
	}
}

func (m *Model) deletePlaylistCmd(pl models.Playlist) tea.Cmd {
	return func() tea.Msg {
		return playlistMutatedMsg{err: m.client.DeletePlaylist(m.ctx, pl.SpotifyID)}
	}
}

func (m *Model) songsCmd(pl models.Playlist) tea.Cmd {
	refresh := m.refreshToken()

	return func() tea.Msg {
		tracks, err := m.client.PlaylistSongs(m.ctx, pl.SpotifyID, refresh)
		return songsFetchedMsg{playlist: pl, tracks: tracks, err: err}
	}
}

func (m *Model) searchCmd(query string, seq int) tea.Cmd {
	refresh := m.refreshToken()

	return func() tea.Msg {
		tracks, err := m.client.SearchTracks(m.ctx, query, refresh)
		return searchDoneMsg{seq: seq, tracks: tracks, err: err}
	}
}

func (m *Model) addTrackCmd(track models.Track) tea.Cmd {
	refresh := m.refreshToken()
	playlistID := m.current.SpotifyID

	return func() tea.Msg {
		success, err := m.client.AddTrack(m.ctx, track.ID, playlistID, refresh)
		return trackMutatedMsg{added: true, success: success, err: err}
	}
}

func (m *Model) removeTrackCmd(track models.Track) tea.Cmd {
	refresh := m.refreshToken()
	playlistID := m.current.SpotifyID

	return func() tea.Msg {
		err := m.client.RemoveTrack(m.ctx, track.ID, playlistID, refresh)
		return trackMutatedMsg{success: true, err: err}
	}
}

func (m *Model) handleBootstrapDone(msg bootstrapDoneMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		m.logger.Error("session bootstrap failed", "error", msg.err)
		return m, m.showNotice("Could not load session")
	}

	switch msg.outcome.State {
	case session.StateReady:
		m.setPlaylists(msg.outcome.Playlists)
		return m, nil
	case session.StateNeedRedirect, session.StateReauthRequired:
		if m.redirected {
			return m, nil
		}
		m.redirected = true
		m.pending.begin()
		return m, m.redirectCmd()
	default:
		// Fetch failed for an ordinary reason; already logged upstream.
		return m, nil
	}
}

func (m *Model) handleRedirectDone(msg redirectDoneMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		m.logger.Error("authorization hand-off failed", "error", msg.err)
		return m, m.showNotice("Authorization failed")
	}

	m.pending.begin()
	return m, m.bootstrapCmd(msg.code)
}

func (m *Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		return m, m.showNotice(apiMessage(msg.err))
	}

	if msg.registered {
		m.view = LoginView
		m.registerForm = newRegisterForm()
		return m, m.showNotice("Account created, sign in to continue")
	}

	m.view = PlaylistListView
	m.loginForm = newLoginForm()
	m.pending.begin()
	return m, m.bootstrapCmd("")
}

func (m *Model) handlePlaylistsFetched(msg playlistsFetchedMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		if errors.Is(msg.err, shared.ErrReauthRequired) && !m.redirected {
			m.redirected = true
			m.pending.begin()
			return m, m.redirectCmd()
		}
		m.logger.Warn("playlist fetch failed", "error", msg.err)
		return m, nil
	}

	m.setPlaylists(msg.playlists)
	return m, nil
}

func (m *Model) handlePlaylistMutated(msg playlistMutatedMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		return m, m.showNotice(apiMessage(msg.err))
	}

	m.view = PlaylistListView
	m.deleting = models.Playlist{}
	m.pending.begin()
	return m, m.fetchPlaylistsCmd()
}

func (m *Model) handleSongsFetched(msg songsFetchedMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		return m, m.showNotice("Could not load tracks")
	}

	m.current = msg.playlist
	items := make([]list.Item, len(msg.tracks))
	for i, track := range msg.tracks {
		items[i] = trackItem{track: track}
	}
	m.trackList.SetItems(items)
	m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.playlist.Name)
	m.view = SongListView
	return m, nil
}

func (m *Model) handleSearchTick(msg searchTickMsg) (tea.Model, tea.Cmd) {
	if !m.debounce.current(msg.seq) {
		return m, nil
	}

	query := m.searchInput.Value()
	if query == "" {
		m.searchList.SetItems([]list.Item{})
		return m, nil
	}

	m.pending.begin()
	return m, m.searchCmd(query, msg.seq)
}

func (m *Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if !m.debounce.current(msg.seq) {
		return m, nil
	}

	if msg.err != nil {
		return m, m.showNotice("Search failed")
	}

	items := make([]list.Item, len(msg.tracks))
	for i, track := range msg.tracks {
		items[i] = trackItem{track: track}
	}
	m.searchList.SetItems(items)
	return m, nil
}

func (m *Model) handleTrackMutated(msg trackMutatedMsg) (tea.Model, tea.Cmd) {
	m.pending.done()

	if msg.err != nil {
		return m, m.showNotice(apiMessage(msg.err))
	}
	if msg.added && !msg.success {
		return m, m.showNotice("Could not add track")
	}

	m.pending.begin()
	return m, m.songsCmd(m.current)
}

func (m *Model) setPlaylists(playlists []models.Playlist) {
	m.playlists = playlists
	items := make([]list.Item, len(playlists))
	for i, pl := range playlists {
		items[i] = playlistItem{playlist: pl}
	}
	m.playlistList.SetItems(items)
}
