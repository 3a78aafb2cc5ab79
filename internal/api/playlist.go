package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/plx-dev/plx/internal/models"
)

// PlaylistsResult carries the fetched playlist collection and, when the
// backend performed a fresh code exchange, the refresh token to persist.
type PlaylistsResult struct {
	Playlists    []models.Playlist
	RefreshToken string
}

// Playlists fetches the playlist collection.
//
// Exactly one of code or refreshToken is expected to be set; the session
// bootstrap decides which. The distinguished errorCode "1001" failure unwraps
// to [shared.ErrReauthRequired].
func (c *Client) Playlists(ctx context.Context, code, refreshToken string) (*PlaylistsResult, error) {
	body := playlistsRequest{Code: code, RefreshToken: refreshToken}

	var resp playlistsResponse
	if err := c.doRequest(ctx, http.MethodPost, "/playlist/get", body, &resp, true); err != nil {
		return nil, err
	}

	result := &PlaylistsResult{RefreshToken: resp.RefreshToken}
	for _, p := range resp.Playlists {
		result.Playlists = append(result.Playlists, p.toModel())
	}

	return result, nil
}

// CreatePlaylist creates a playlist. The backend's mutation contract carries
// the refresh token in a field named "code".
func (c *Client) CreatePlaylist(ctx context.Context, form models.PlaylistForm, refreshToken string) error {
	body := playlistMutationRequest{
		Name:        form.Name,
		Description: form.Description,
		Code:        refreshToken,
	}
	return c.doRequest(ctx, http.MethodPost, "/playlist/add", body, nil, true)
}

// UpdatePlaylist edits an existing playlist identified by its backend ID.
func (c *Client) UpdatePlaylist(ctx context.Context, form models.PlaylistForm, refreshToken, playlistID string) error {
	if playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}

	body := playlistMutationRequest{
		Name:        form.Name,
		Description: form.Description,
		Code:        refreshToken,
		PlaylistID:  playlistID,
	}
	return c.doRequest(ctx, http.MethodPut, "/playlist/update", body, nil, true)
}

// DeletePlaylist removes a playlist by its backend ID.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) error {
	if playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}

	endpoint := "/playlist/remove?playlistId=" + url.QueryEscape(playlistID)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, true)
}
