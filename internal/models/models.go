package models

// Playlist represents a playlist managed through the backend.
//
// SpotifyID identifies the playlist on the streaming service and is the
// identifier used for song listing, track mutations and deletion.
type Playlist struct {
	ID          string
	Name        string
	Description string
	SpotifyID   string
}

// Track is the canonical song shape used everywhere inside the client.
//
// The backend speaks two distinct track representations (the persisted shape
// and the search-result shape); both are mapped onto this type at the API
// boundary. Fields absent from one wire shape are simply left empty.
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	AlbumArtURL string
	SpotifyURL  string
}

// PlaylistExport pairs a playlist with its full track listing, as produced
// for file exports.
type PlaylistExport struct {
	Playlist Playlist
	Tracks   []Track
}

// User represents the account returned by a successful login.
type User struct {
	ID    string
	Name  string
	Email string
}
