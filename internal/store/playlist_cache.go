package store

import (
	"database/sql"
	"fmt"

	"github.com/plx-dev/plx/internal/models"
)

// PlaylistCache persists the last fetched playlist collection.
//
// The cache mirrors the client's in-memory list semantics: every successful
// fetch replaces the whole set, so the table never accumulates rows from
// older responses.
type PlaylistCache struct {
	db *sql.DB
}

// NewPlaylistCache creates a PlaylistCache over an open database connection.
func NewPlaylistCache(db *sql.DB) *PlaylistCache {
	return &PlaylistCache{db: db}
}

// Replace swaps the cached collection for the given one in a single
// transaction. An empty slice clears the cache.
func (c *PlaylistCache) Replace(playlists []models.Playlist) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlist_cache"); err != nil {
		return fmt.Errorf("failed to clear playlist cache: %w", err)
	}

	query := "INSERT INTO playlist_cache (id, name, description, spotify_id, position) VALUES (?, ?, ?, ?, ?)"
	for i, p := range playlists {
		if _, err := tx.Exec(query, p.ID, p.Name, p.Description, p.SpotifyID, i); err != nil {
			return fmt.Errorf("failed to cache playlist %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// List returns the cached collection in fetch order.
func (c *PlaylistCache) List() ([]models.Playlist, error) {
	rows, err := c.db.Query("SELECT id, name, description, spotify_id FROM playlist_cache ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist cache: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.SpotifyID); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}
