package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/plx-dev/plx/internal/models"
)

// PlaylistSongs lists the tracks persisted on a playlist.
func (c *Client) PlaylistSongs(ctx context.Context, playlistID, refreshToken string) ([]models.Track, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlist ID is required")
	}

	endpoint := fmt.Sprintf("/playlist/songs?playlistId=%s&refreshToken=%s",
		url.QueryEscape(playlistID), url.QueryEscape(refreshToken))

	var resp songsResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp, true); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(resp.Tracks))
	for _, s := range resp.Tracks {
		tracks = append(tracks, s.toModel())
	}

	return tracks, nil
}

// SearchTracks searches the streaming catalog through the backend.
//
// An empty query short-circuits to an empty result set without a request.
// Requests are rate limited; the limiter wait respects ctx cancellation.
func (c *Client) SearchTracks(ctx context.Context, query, refreshToken string) ([]models.Track, error) {
	if query == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("/playlist/search?refreshToken=%s&query=%s",
		url.QueryEscape(refreshToken), url.QueryEscape(query))

	var resp searchResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp, true); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(resp.Tracks))
	for _, s := range resp.Tracks {
		tracks = append(tracks, s.toModel())
	}

	return tracks, nil
}

// AddTrack adds a track to a playlist. The backend signals a soft failure
// through success=false rather than a non-2xx status.
func (c *Client) AddTrack(ctx context.Context, trackID, playlistID, refreshToken string) (bool, error) {
	if trackID == "" || playlistID == "" {
		return false, fmt.Errorf("track ID and playlist ID are required")
	}

	endpoint := fmt.Sprintf("/playlist/add-track?refreshToken=%s&trackId=%s&playlistId=%s",
		url.QueryEscape(refreshToken), url.QueryEscape(trackID), url.QueryEscape(playlistID))

	var resp addTrackResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp, true); err != nil {
		return false, err
	}

	return resp.Success, nil
}

// RemoveTrack removes a track from a playlist.
func (c *Client) RemoveTrack(ctx context.Context, trackID, playlistID, refreshToken string) error {
	if trackID == "" || playlistID == "" {
		return fmt.Errorf("track ID and playlist ID are required")
	}

	body := removeTrackRequest{
		TrackID:      trackID,
		PlaylistID:   playlistID,
		RefreshToken: refreshToken,
	}
	return c.doRequest(ctx, http.MethodDelete, "/playlist/remove-track", body, nil, true)
}
