package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/shared"
)

// SongsList prints the tracks of a playlist.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticate(ctx); err != nil {
		return err
	}

	tracks, err := r.client.PlaylistSongs(ctx, cmd.String("playlist-id"), r.refreshToken())
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No tracks\n")
	}

	for i, track := range tracks {
		line := fmt.Sprintf("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Album != "" {
			line = fmt.Sprintf("%s (%s)", line, track.Album)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// SongsSearch searches the catalog and prints matches with their embed URLs.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	if err := r.authenticate(ctx); err != nil {
		return err
	}

	tracks, err := r.client.SearchTracks(ctx, query, r.refreshToken())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	if len(tracks) == 0 {
		return r.writePlain("No matches for %q\n", query)
	}

	for _, track := range tracks {
		r.writePlain("%s  %s - %s\n", track.ID, track.Artist, track.Title)
		r.writePlain("    %s\n", api.EmbedURL(track.ID))
	}
	return nil
}

// SongsAdd adds a track to a playlist. The backend reports soft failures in
// the response body rather than via status codes.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticate(ctx); err != nil {
		return err
	}

	success, err := r.client.AddTrack(ctx, cmd.String("track-id"), cmd.String("playlist-id"), r.refreshToken())
	if err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}
	if !success {
		return fmt.Errorf("%w: track was not added", shared.ErrTrackNotFound)
	}

	return r.writePlain("✓ Track added\n")
}

// SongsRemove removes a track from a playlist.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.authenticate(ctx); err != nil {
		return err
	}

	if err := r.client.RemoveTrack(ctx, cmd.String("track-id"), cmd.String("playlist-id"), r.refreshToken()); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	return r.writePlain("✓ Track removed\n")
}
