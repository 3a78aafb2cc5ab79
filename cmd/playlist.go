package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/server"
	"github.com/plx-dev/plx/internal/session"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/tasks"
)

// fetchPlaylists establishes the session and returns the playlist
// collection. When no credential material exists it opens the external
// authorization page in the browser and waits for the local callback,
// exactly once.
func (r *Runner) fetchPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if err := r.authenticate(ctx); err != nil {
		return nil, err
	}

	tokens, cache, err := r.stores()
	if err != nil {
		return nil, err
	}

	outcome, err := r.runBootstrap(ctx, tokens, cache, "")
	if err != nil {
		return nil, err
	}

	if outcome.State == session.StateNeedRedirect || outcome.State == session.StateReauthRequired {
		r.logger.Info("authorization required, opening browser", "url", r.config.Auth.AuthorizeURL)
		if err := shared.OpenBrowser(r.config.Auth.AuthorizeURL); err != nil {
			return nil, fmt.Errorf("failed to open browser: %w", err)
		}

		code, err := server.Capture(ctx, r.config.Auth.CallbackHost, r.config.Auth.CallbackPort, "", r.logger)
		if err != nil {
			return nil, fmt.Errorf("authorization hand-off failed: %w", err)
		}

		outcome, err = r.runBootstrap(ctx, tokens, cache, code)
		if err != nil {
			return nil, err
		}
	}

	if outcome.State != session.StateReady {
		return nil, fmt.Errorf("%w: could not establish a playlist session", shared.ErrAuthFailed)
	}

	return outcome.Playlists, nil
}

// runBootstrap executes one fresh bootstrap pass. Each pass is its own
// one-shot instance.
func (r *Runner) runBootstrap(ctx context.Context, tokens session.TokenStore, cache session.PlaylistCacher, code string) (*session.Outcome, error) {
	inputs, err := session.ReadInputs(tokens, code)
	if err != nil {
		return nil, err
	}

	boot := session.NewBootstrap(tokens, r.client, cache, r.logger)
	return boot.Run(ctx, inputs)
}

// PlaylistList prints the playlist collection.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	var playlists []models.Playlist
	var err error

	if cmd.Bool("cached") {
		_, cache, serr := r.stores()
		if serr != nil {
			return serr
		}
		playlists, err = cache.List()
	} else {
		playlists, err = r.fetchPlaylists(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists\n")
	}

	for _, pl := range playlists {
		if pl.Description != "" {
			r.writePlain("%s  %s - %s\n", pl.SpotifyID, pl.Name, pl.Description)
			continue
		}
		r.writePlain("%s  %s\n", pl.SpotifyID, pl.Name)
	}
	return nil
}

// PlaylistCreate creates a playlist and prints the refreshed collection.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	form := models.PlaylistForm{
		Name:        cmd.StringArg("name"),
		Description: cmd.String("description"),
	}

	if errs := form.Validate(); !errs.Valid() {
		for field, msg := range errs {
			r.writePlain("%s: %s\n", field, msg)
		}
		return fmt.Errorf("%w: invalid playlist", shared.ErrInvalidInput)
	}

	if err := r.authenticate(ctx); err != nil {
		return err
	}

	if err := r.client.CreatePlaylist(ctx, form, r.refreshToken()); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created '%s'\n", form.Name)
	return r.refreshList(ctx)
}

// PlaylistUpdate renames a playlist or changes its description.
func (r *Runner) PlaylistUpdate(ctx context.Context, cmd *cli.Command) error {
	form := models.PlaylistForm{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
	}

	if errs := form.Validate(); !errs.Valid() {
		for field, msg := range errs {
			r.writePlain("%s: %s\n", field, msg)
		}
		return fmt.Errorf("%w: invalid playlist", shared.ErrInvalidInput)
	}

	if err := r.authenticate(ctx); err != nil {
		return err
	}

	if err := r.client.UpdatePlaylist(ctx, form, r.refreshToken(), cmd.String("id")); err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	r.writePlain("✓ Updated '%s'\n", form.Name)
	return r.refreshList(ctx)
}

// PlaylistDelete removes a playlist after confirmation.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to confirm deletion", shared.ErrMissingArgument)
	}

	if err := r.authenticate(ctx); err != nil {
		return err
	}

	if err := r.client.DeletePlaylist(ctx, cmd.String("id")); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	r.writePlain("✓ Deleted\n")
	return r.refreshList(ctx)
}

// refreshList re-fetches the collection after a mutation so the printed
// state reflects the backend, not an optimistic local edit.
func (r *Runner) refreshList(ctx context.Context) error {
	playlists, err := r.fetchPlaylists(ctx)
	if err != nil {
		r.logger.Warn("playlist re-fetch failed", "error", err)
		return nil
	}

	r.writePlainln("%d playlists:", len(playlists))
	for _, pl := range playlists {
		r.writePlain("  %s  %s\n", pl.ID, pl.Name)
	}
	return nil
}

// PlaylistExport bulk-exports playlists to local files.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	playlists, err := r.fetchPlaylists(ctx)
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		return r.writePlain("No playlists to export\n")
	}

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.BulkExport(ctx, prog, playlists, r.refreshToken(), tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	})
	close(prog)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d playlists to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%d exports failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}
