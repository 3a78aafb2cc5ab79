// Backend wire shapes and their mapping onto the canonical [models] types.
//
// The backend speaks two different track representations: the persisted shape
// stored with a playlist and the search-result shape returned by the streaming
// integration. Both are mapped to [models.Track] here so nothing outside this
// package ever sees the split.
package api

import "github.com/plx-dev/plx/internal/models"

type userWire struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u userWire) toModel() models.User {
	return models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

type playlistWire struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpotifyID   string `json:"playlistSpotifyId"`
}

func (p playlistWire) toModel() models.Playlist {
	return models.Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SpotifyID:   p.SpotifyID,
	}
}

// songWire is the persisted-track shape returned by /playlist/songs.
type songWire struct {
	TrackID    string `json:"trackId"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	SpotifyURL string `json:"spotify_url"`
}

func (s songWire) toModel() models.Track {
	return models.Track{
		ID:         s.TrackID,
		Title:      s.Title,
		Artist:     s.Artist,
		Album:      s.Album,
		SpotifyURL: s.SpotifyURL,
	}
}

type imageWire struct {
	URL string `json:"url"`
}

type artistWire struct {
	Name string `json:"name"`
}

type albumWire struct {
	Name   string      `json:"name"`
	Images []imageWire `json:"images"`
}

// searchTrackWire is the search-result shape returned by /playlist/search.
type searchTrackWire struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Artists []artistWire `json:"artists"`
	Album   albumWire    `json:"album"`
}

func (s searchTrackWire) toModel() models.Track {
	track := models.Track{
		ID:    s.ID,
		Title: s.Name,
		Album: s.Album.Name,
	}

	if len(s.Artists) > 0 {
		track.Artist = s.Artists[0].Name
	}
	if len(s.Album.Images) > 0 {
		track.AlbumArtURL = s.Album.Images[0].URL
	}

	track.SpotifyURL = trackURL(s.ID)
	return track
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type playlistsRequest struct {
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// playlistsResponse carries the playlist collection and, on a fresh code
// exchange, a new refresh token. The field name reproduces the backend's
// spelling exactly.
type playlistsResponse struct {
	Playlists    []playlistWire `json:"playlists"`
	RefreshToken string         `json:"refteshToken"`
}

type playlistMutationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	PlaylistID  string `json:"playlistId,omitempty"`
}

type songsResponse struct {
	Tracks []songWire `json:"tracks"`
}

type searchResponse struct {
	Tracks []searchTrackWire `json:"tracks"`
}

type addTrackResponse struct {
	Success bool `json:"success"`
}

type removeTrackRequest struct {
	TrackID      string `json:"trackId"`
	PlaylistID   string `json:"playlistId"`
	RefreshToken string `json:"refreshToken"`
}
