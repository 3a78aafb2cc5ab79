package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPlaylistSongs(t *testing.T) {
	t.Run("Maps Persisted Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlist/songs" {
				t.Errorf("expected path /playlist/songs, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("playlistId"); got != "sp1" {
				t.Errorf("expected playlistId sp1, got %q", got)
			}
			if got := r.URL.Query().Get("refreshToken"); got != "refresh-1" {
				t.Errorf("expected refreshToken, got %q", got)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"tracks": []map[string]string{
					{
						"trackId":     "t1",
						"title":       "Holocene",
						"artist":      "Bon Iver",
						"album":       "Bon Iver, Bon Iver",
						"spotify_url": "https://open.spotify.com/track/t1",
					},
				},
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		tracks, err := c.PlaylistSongs(context.Background(), "sp1", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 1 {
			t.Fatalf("expected one track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.ID != "t1" || track.Title != "Holocene" || track.Artist != "Bon Iver" {
			t.Errorf("unexpected canonical track: %+v", track)
		}
		if track.SpotifyURL != "https://open.spotify.com/track/t1" {
			t.Errorf("expected wire URL to be kept, got %q", track.SpotifyURL)
		}
	})

	t.Run("Missing Playlist ID", func(t *testing.T) {
		c := NewClient("http://example.com", nil, nil)
		c.Authenticate(context.Background(), "session-token")

		if _, err := c.PlaylistSongs(context.Background(), "", "refresh"); err == nil {
			t.Error("expected error for missing playlist ID")
		}
	})
}

func TestSearchTracks(t *testing.T) {
	t.Run("Maps Search Shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlist/search" {
				t.Errorf("expected path /playlist/search, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("query"); got != "holocene" {
				t.Errorf("expected query holocene, got %q", got)
			}

			json.NewEncoder(w).Encode(map[string]any{
				"tracks": []map[string]any{
					{
						"id":      "t1",
						"name":    "Holocene",
						"artists": []map[string]string{{"name": "Bon Iver"}},
						"album": map[string]any{
							"name":   "Bon Iver, Bon Iver",
							"images": []map[string]string{{"url": "https://img.example/cover.jpg"}},
						},
					},
				},
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		tracks, err := c.SearchTracks(context.Background(), "holocene", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 1 {
			t.Fatalf("expected one track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.Title != "Holocene" || track.Artist != "Bon Iver" || track.Album != "Bon Iver, Bon Iver" {
			t.Errorf("unexpected canonical track: %+v", track)
		}
		if track.AlbumArtURL != "https://img.example/cover.jpg" {
			t.Errorf("expected album art URL, got %q", track.AlbumArtURL)
		}
		if track.SpotifyURL != "https://open.spotify.com/track/t1" {
			t.Errorf("expected derived track URL, got %q", track.SpotifyURL)
		}
	})

	t.Run("Empty Query Short-Circuits", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		tracks, err := c.SearchTracks(context.Background(), "", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tracks != nil {
			t.Errorf("expected nil result set, got %v", tracks)
		}
		if called {
			t.Error("expected no request for empty query")
		}
	})

	t.Run("Empty Artist And Art Lists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"tracks": []map[string]any{
					{"id": "t2", "name": "Untitled", "artists": []any{}, "album": map[string]any{"name": ""}},
				},
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		tracks, err := c.SearchTracks(context.Background(), "untitled", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tracks[0].Artist != "" || tracks[0].AlbumArtURL != "" {
			t.Errorf("expected empty optional fields, got %+v", tracks[0])
		}
	})
}

func TestAddRemoveTrack(t *testing.T) {
	t.Run("Add Success Flag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlist/add-track" {
				t.Errorf("expected path /playlist/add-track, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		ok, err := c.AddTrack(context.Background(), "t1", "sp1", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Error("expected success flag true")
		}
	})

	t.Run("Add Soft Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]bool{"success": false})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		ok, err := c.AddTrack(context.Background(), "t1", "sp1", "refresh-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected success flag false")
		}
	})

	t.Run("Remove Sends Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/playlist/remove-track" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}

			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["trackId"] != "t1" || body["playlistId"] != "sp1" || body["refreshToken"] != "refresh-1" {
				t.Errorf("unexpected body: %v", body)
			}
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, nil)
		c.Authenticate(context.Background(), "session-token")

		if err := c.RemoveTrack(context.Background(), "t1", "sp1", "refresh-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestEmbedURL(t *testing.T) {
	if got := EmbedURL("t1"); got != "https://open.spotify.com/embed/track/t1" {
		t.Errorf("unexpected embed URL: %s", got)
	}
}
