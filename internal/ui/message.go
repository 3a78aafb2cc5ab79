package ui

import (
	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/session"
)

// bootstrapDoneMsg carries the outcome of the one-shot session bootstrap.
type bootstrapDoneMsg struct {
	outcome *session.Outcome
	err     error
}

// redirectDoneMsg carries the code captured from the authorization hand-off.
type redirectDoneMsg struct {
	code string
	err  error
}

// authDoneMsg carries the result of a login or register submission.
type authDoneMsg struct {
	registered bool
	err        error
}

// playlistsFetchedMsg carries a playlist re-fetch after a mutation.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// playlistMutatedMsg signals a create, update or delete completed.
type playlistMutatedMsg struct {
	err error
}

// songsFetchedMsg carries the tracks of the opened playlist.
type songsFetchedMsg struct {
	playlist models.Playlist
	tracks   []models.Track
	err      error
}

// searchTickMsg fires when the debounce interval elapses. Ticks whose seq no
// longer matches the newest keystroke are discarded.
type searchTickMsg struct {
	seq int
}

// searchDoneMsg carries search results tagged with the seq of the query that
// produced them. Stale seqs are discarded.
type searchDoneMsg struct {
	seq    int
	tracks []models.Track
	err    error
}

// trackMutatedMsg signals an add or remove completed. added distinguishes
// the soft-failure add response from a removal.
type trackMutatedMsg struct {
	added   bool
	success bool
	err     error
}

// noticeExpiredMsg clears a transient notice. Stale seqs leave newer
// notices alone.
type noticeExpiredMsg struct {
	seq int
}
