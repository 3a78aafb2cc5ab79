// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the screens of a playlist manager:
//  1. [LoginView] / [RegisterView] : Credential forms, gated to anonymous sessions
//  2. [PlaylistListView] : Browse playlists fetched during session bootstrap
//  3. [PlaylistFormView] : Create or rename a playlist
//  4. [ConfirmDeleteView] : Confirm playlist deletion
//  5. [SongListView] : Playlist tracks plus debounced search-and-add
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. Every
// backend call increments a pending-request counter and decrements it on
// completion, so the spinner overlay stays up while any request is in flight
// and overlapping requests never blank it early. Search keystrokes arm a
// debounce timer tagged with a sequence number; ticks and responses carrying
// a stale sequence are discarded, so only the newest query's results render.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
