package store

import (
	"testing"

	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return New(db)
}

func TestStore(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		s := newTestStore(t)

		value, err := s.Get(KeySessionToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty string for missing key, got %q", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.Set(KeySessionToken, "abc"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, err := s.Get(KeySessionToken)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if value != "abc" {
			t.Errorf("expected abc, got %q", value)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		s := newTestStore(t)

		s.Set(KeyRefreshToken, "old")
		if err := s.Set(KeyRefreshToken, "new"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		value, _ := s.Get(KeyRefreshToken)
		if value != "new" {
			t.Errorf("expected last write to win, got %q", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := newTestStore(t)

		s.Set(KeyAuthCode, "one-time")
		if err := s.Delete(KeyAuthCode); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		value, _ := s.Get(KeyAuthCode)
		if value != "" {
			t.Errorf("expected deleted key to be empty, got %q", value)
		}

		if err := s.Delete(KeyAuthCode); err != nil {
			t.Errorf("deleting a missing key should not fail: %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		s := newTestStore(t)

		s.Set(KeySessionToken, "a")
		s.Set(KeyRefreshToken, "b")
		s.Set(KeyAuthCode, "c")

		if err := s.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		for _, key := range []string{KeySessionToken, KeyRefreshToken, KeyAuthCode} {
			if value, _ := s.Get(key); value != "" {
				t.Errorf("expected %s to be cleared, got %q", key, value)
			}
		}
	})

	t.Run("Snapshot", func(t *testing.T) {
		s := newTestStore(t)

		s.Set(KeySessionToken, "tok")
		s.Set(KeyRefreshToken, "ref")

		snapshot, err := s.Snapshot()
		if err != nil {
			t.Fatalf("failed to snapshot: %v", err)
		}

		if snapshot[KeySessionToken] != "tok" || snapshot[KeyRefreshToken] != "ref" {
			t.Errorf("unexpected snapshot: %v", snapshot)
		}
		if _, ok := snapshot[KeyAuthCode]; ok {
			t.Error("expected absent key to be missing from snapshot")
		}
	})
}

func TestPlaylistCache(t *testing.T) {
	newCache := func(t *testing.T) *PlaylistCache {
		t.Helper()
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		return NewPlaylistCache(db)
	}

	t.Run("Replace And List", func(t *testing.T) {
		c := newCache(t)

		playlists := []models.Playlist{
			{ID: "p1", Name: "Chill", Description: "evening", SpotifyID: "sp1"},
			{ID: "p2", Name: "Focus", SpotifyID: "sp2"},
		}
		if err := c.Replace(playlists); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		got, err := c.List()
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}

		if len(got) != 2 {
			t.Fatalf("expected two playlists, got %d", len(got))
		}
		if got[0].ID != "p1" || got[1].ID != "p2" {
			t.Errorf("expected fetch order to be preserved, got %v", got)
		}
	})

	t.Run("Replace Is Wholesale", func(t *testing.T) {
		c := newCache(t)

		c.Replace([]models.Playlist{{ID: "p1", Name: "Chill"}, {ID: "p2", Name: "Focus"}})
		c.Replace([]models.Playlist{{ID: "p3", Name: "Workout"}})

		got, err := c.List()
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}

		if len(got) != 1 || got[0].ID != "p3" {
			t.Errorf("expected old rows to be swept, got %v", got)
		}
	})

	t.Run("Replace Empty Clears", func(t *testing.T) {
		c := newCache(t)

		c.Replace([]models.Playlist{{ID: "p1", Name: "Chill"}})
		if err := c.Replace(nil); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		got, _ := c.List()
		if len(got) != 0 {
			t.Errorf("expected empty cache, got %v", got)
		}
	})
}

func TestMigrations(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migration failed: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected rollback with no applied migrations to fail")
		}
	})
}
