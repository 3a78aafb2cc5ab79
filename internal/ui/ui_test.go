package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/session"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
)

type fakeTokens struct {
	values map[string]string
}

func newFakeTokens(values map[string]string) *fakeTokens {
	if values == nil {
		values = map[string]string{}
	}
	return &fakeTokens{values: values}
}

func (f *fakeTokens) Get(name string) (string, error) { return f.values[name], nil }
func (f *fakeTokens) Set(name, value string) error    { f.values[name] = value; return nil }
func (f *fakeTokens) Clear() error                    { f.values = map[string]string{}; return nil }
func (f *fakeTokens) Snapshot() (map[string]string, error) {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out, nil
}

type fakeBackend struct {
	searches []string
	tracks   []models.Track

	songsPlaylistID string
	deletedID       string
	addedToPlaylist string
	removedFromList string
}

func (f *fakeBackend) Authenticate(context.Context, string) error { return nil }
func (f *fakeBackend) Login(context.Context, models.Credentials) (*api.LoginResult, error) {
	return &api.LoginResult{Token: "jwt"}, nil
}
func (f *fakeBackend) Register(context.Context, models.Registration) error { return nil }
func (f *fakeBackend) Playlists(context.Context, string, string) (*api.PlaylistsResult, error) {
	return &api.PlaylistsResult{}, nil
}
func (f *fakeBackend) CreatePlaylist(context.Context, models.PlaylistForm, string) error { return nil }
func (f *fakeBackend) UpdatePlaylist(context.Context, models.PlaylistForm, string, string) error {
	return nil
}
func (f *fakeBackend) DeletePlaylist(_ context.Context, playlistID string) error {
	f.deletedID = playlistID
	return nil
}
func (f *fakeBackend) PlaylistSongs(_ context.Context, playlistID, _ string) ([]models.Track, error) {
	f.songsPlaylistID = playlistID
	return nil, nil
}
func (f *fakeBackend) SearchTracks(_ context.Context, query, _ string) ([]models.Track, error) {
	f.searches = append(f.searches, query)
	return f.tracks, nil
}
func (f *fakeBackend) AddTrack(_ context.Context, _, playlistID, _ string) (bool, error) {
	f.addedToPlaylist = playlistID
	return true, nil
}
func (f *fakeBackend) RemoveTrack(_ context.Context, _, playlistID, _ string) error {
	f.removedFromList = playlistID
	return nil
}

func newTestModel(tokens *fakeTokens, backend *fakeBackend) *Model {
	return NewModel(context.Background(), backend, tokens, nil, shared.DefaultConfig(), shared.NewLogger(nil))
}

func TestPendingCounter(t *testing.T) {
	t.Run("OverlappingRequestsKeepOverlayUp", func(t *testing.T) {
		var p pendingCounter

		p.begin()
		p.begin()
		p.done()
		if !p.active() {
			t.Error("expected overlay to stay up until the last request completes")
		}

		p.done()
		if p.active() {
			t.Error("expected overlay to clear after the last request")
		}
	})

	t.Run("DoneNeverGoesNegative", func(t *testing.T) {
		var p pendingCounter

		p.done()
		p.begin()
		if !p.active() {
			t.Error("expected a fresh begin to activate the overlay")
		}
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("NewKeystrokeInvalidatesOldTimer", func(t *testing.T) {
		var d debouncer

		first := d.arm()
		second := d.arm()

		if d.current(first) {
			t.Error("expected first timer to be stale")
		}
		if !d.current(second) {
			t.Error("expected second timer to be current")
		}
	})
}

func TestInitialView(t *testing.T) {
	t.Run("TokenPresentLandsOnPlaylists", func(t *testing.T) {
		tokens := newFakeTokens(map[string]string{store.KeySessionToken: "jwt"})
		if v := initialView(tokens); v != PlaylistListView {
			t.Errorf("expected playlist view, got %v", v)
		}
	})

	t.Run("TokenAbsentLandsOnLogin", func(t *testing.T) {
		if v := initialView(newFakeTokens(nil)); v != LoginView {
			t.Errorf("expected login view, got %v", v)
		}
	})
}

func TestFormErrors(t *testing.T) {
	t.Run("EditingAFieldClearsOnlyItsError", func(t *testing.T) {
		f := newLoginForm()
		f.setErrors(models.FieldErrors{"email": "Email is required", "password": "Password is required"})

		f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

		if _, ok := f.errors["email"]; ok {
			t.Error("expected edited field's error to clear")
		}
		if _, ok := f.errors["password"]; !ok {
			t.Error("expected untouched field's error to remain")
		}
	})
}

func TestSearchDebounce(t *testing.T) {
	t.Run("StaleTickIssuesNoQuery", func(t *testing.T) {
		backend := &fakeBackend{}
		m := newTestModel(newFakeTokens(nil), backend)
		m.searchInput.SetValue("query")

		stale := m.debounce.arm()
		m.debounce.arm()

		_, cmd := m.handleSearchTick(searchTickMsg{seq: stale})
		if cmd != nil {
			t.Error("expected stale tick to be dropped")
		}
		if m.pending.active() {
			t.Error("expected no request to start")
		}
	})

	t.Run("CurrentTickQueries", func(t *testing.T) {
		backend := &fakeBackend{tracks: []models.Track{{ID: "t1", Title: "Song"}}}
		m := newTestModel(newFakeTokens(nil), backend)
		m.searchInput.SetValue("query")

		seq := m.debounce.arm()
		_, cmd := m.handleSearchTick(searchTickMsg{seq: seq})
		if cmd == nil {
			t.Fatal("expected a search command")
		}
		if !m.pending.active() {
			t.Error("expected a pending request")
		}

		msg := cmd()
		done, ok := msg.(searchDoneMsg)
		if !ok {
			t.Fatalf("expected searchDoneMsg, got %T", msg)
		}
		if done.seq != seq || len(done.tracks) != 1 {
			t.Errorf("unexpected search result: %+v", done)
		}
		if len(backend.searches) != 1 || backend.searches[0] != "query" {
			t.Errorf("unexpected queries: %v", backend.searches)
		}
	})

	t.Run("EmptyQueryClearsResultsWithoutRequest", func(t *testing.T) {
		backend := &fakeBackend{}
		m := newTestModel(newFakeTokens(nil), backend)
		m.searchInput.SetValue("")

		seq := m.debounce.arm()
		_, cmd := m.handleSearchTick(searchTickMsg{seq: seq})
		if cmd != nil {
			t.Error("expected no command for an empty query")
		}
		if len(backend.searches) != 0 {
			t.Error("expected no backend call")
		}
	})

	t.Run("StaleResultsAreDiscarded", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})

		stale := m.debounce.arm()
		m.debounce.arm()

		m.handleSearchDone(searchDoneMsg{seq: stale, tracks: []models.Track{{ID: "old"}}})
		if len(m.searchList.Items()) != 0 {
			t.Error("expected stale results to be dropped")
		}
	})
}

func TestBootstrapHandling(t *testing.T) {
	t.Run("ReadyPopulatesPlaylists", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})
		m.pending.begin()

		outcome := &session.Outcome{
			State:     session.StateReady,
			Playlists: []models.Playlist{{ID: "p1", Name: "Focus"}},
		}
		m.handleBootstrapDone(bootstrapDoneMsg{outcome: outcome})

		if len(m.playlists) != 1 || m.playlists[0].Name != "Focus" {
			t.Errorf("unexpected playlists: %v", m.playlists)
		}
		if m.pending.active() {
			t.Error("expected pending request to complete")
		}
	})

	t.Run("ReauthRedirectsExactlyOnce", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})

		outcome := &session.Outcome{State: session.StateReauthRequired}

		_, cmd := m.handleBootstrapDone(bootstrapDoneMsg{outcome: outcome})
		if cmd == nil {
			t.Fatal("expected a redirect command on first reauth")
		}
		if !m.redirected {
			t.Error("expected redirect flag to be set")
		}

		_, cmd = m.handleBootstrapDone(bootstrapDoneMsg{outcome: outcome})
		if cmd != nil {
			t.Error("expected no second redirect")
		}
	})

	t.Run("SwallowedFailureShowsNoNotice", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})

		outcome := &session.Outcome{State: session.StateReuseRefresh}
		m.handleBootstrapDone(bootstrapDoneMsg{outcome: outcome})

		if m.notice != "" {
			t.Errorf("expected no notice, got %q", m.notice)
		}
	})
}

func TestMutationRefetch(t *testing.T) {
	t.Run("SuccessfulMutationRefetchesPlaylists", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})
		m.view = PlaylistFormView
		m.pending.begin()

		_, cmd := m.handlePlaylistMutated(playlistMutatedMsg{})
		if cmd == nil {
			t.Fatal("expected a re-fetch command")
		}
		if m.view != PlaylistListView {
			t.Errorf("expected return to playlist view, got %v", m.view)
		}
		if !m.pending.active() {
			t.Error("expected re-fetch to be pending")
		}
	})

	t.Run("FailedMutationShowsBackendMessage", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})
		m.pending.begin()

		err := &api.APIError{Status: 400, Message: "Name already taken"}
		m.handlePlaylistMutated(playlistMutatedMsg{err: err})

		if m.notice != "Name already taken" {
			t.Errorf("expected backend message, got %q", m.notice)
		}
	})
}

func TestPlaylistIdentifierOnWire(t *testing.T) {
	pl := models.Playlist{ID: "local-row", SpotifyID: "sp-42", Name: "Focus"}

	t.Run("SongsFetchSendsSpotifyID", func(t *testing.T) {
		backend := &fakeBackend{}
		m := newTestModel(newFakeTokens(nil), backend)

		m.songsCmd(pl)()
		if backend.songsPlaylistID != pl.SpotifyID {
			t.Errorf("songs fetch sent %q, want %q", backend.songsPlaylistID, pl.SpotifyID)
		}
	})

	t.Run("DeleteSendsSpotifyID", func(t *testing.T) {
		backend := &fakeBackend{}
		m := newTestModel(newFakeTokens(nil), backend)

		m.deletePlaylistCmd(pl)()
		if backend.deletedID != pl.SpotifyID {
			t.Errorf("delete sent %q, want %q", backend.deletedID, pl.SpotifyID)
		}
	})

	t.Run("TrackMutationsSendSpotifyID", func(t *testing.T) {
		backend := &fakeBackend{}
		m := newTestModel(newFakeTokens(nil), backend)
		m.current = pl

		m.addTrackCmd(models.Track{ID: "t1"})()
		if backend.addedToPlaylist != pl.SpotifyID {
			t.Errorf("add-track sent %q, want %q", backend.addedToPlaylist, pl.SpotifyID)
		}

		m.removeTrackCmd(models.Track{ID: "t1"})()
		if backend.removedFromList != pl.SpotifyID {
			t.Errorf("remove-track sent %q, want %q", backend.removedFromList, pl.SpotifyID)
		}
	})
}

func TestNotices(t *testing.T) {
	t.Run("StaleExpiryLeavesNewerNoticeAlone", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})

		m.showNotice("first")
		firstSeq := m.noticeSeq
		m.showNotice("second")

		m.Update(noticeExpiredMsg{seq: firstSeq})
		if m.notice != "second" {
			t.Errorf("expected newer notice to survive, got %q", m.notice)
		}

		m.Update(noticeExpiredMsg{seq: m.noticeSeq})
		if m.notice != "" {
			t.Errorf("expected notice to clear, got %q", m.notice)
		}
	})
}

func TestAuthFlow(t *testing.T) {
	t.Run("LoginSuccessMountsPlaylists", func(t *testing.T) {
		tokens := newFakeTokens(nil)
		m := newTestModel(tokens, &fakeBackend{})
		m.pending.begin()

		_, cmd := m.handleAuthDone(authDoneMsg{})
		if m.view != PlaylistListView {
			t.Errorf("expected playlist view, got %v", m.view)
		}
		if cmd == nil {
			t.Error("expected bootstrap command")
		}
	})

	t.Run("RegisterSuccessReturnsToLogin", func(t *testing.T) {
		m := newTestModel(newFakeTokens(nil), &fakeBackend{})
		m.view = RegisterView
		m.pending.begin()

		m.handleAuthDone(authDoneMsg{registered: true})
		if m.view != LoginView {
			t.Errorf("expected login view, got %v", m.view)
		}
		if m.notice == "" {
			t.Error("expected confirmation notice")
		}
	})

	t.Run("LogoutClearsSession", func(t *testing.T) {
		tokens := newFakeTokens(map[string]string{
			store.KeySessionToken: "jwt",
			store.KeyRefreshToken: "rt",
		})
		m := newTestModel(tokens, &fakeBackend{})
		m.view = PlaylistListView

		m.logout()
		if m.view != LoginView {
			t.Errorf("expected login view, got %v", m.view)
		}
		if len(tokens.values) != 0 {
			t.Errorf("expected token store to be cleared, got %v", tokens.values)
		}
	})
}
