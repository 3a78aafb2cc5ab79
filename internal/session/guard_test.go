package session

import (
	"errors"
	"testing"

	"github.com/plx-dev/plx/internal/store"
)

type stubTokens struct {
	values map[string]string
	err    error
}

func (s *stubTokens) Get(name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}

	return s.values[name], nil
}

func TestRequireAuth(t *testing.T) {
	t.Run("AllowsWhenTokenPresent", func(t *testing.T) {
		tokens := &stubTokens{values: map[string]string{store.KeySessionToken: "jwt"}}

		d := RequireAuth(tokens)
		if !d.Allow {
			t.Error("expected guard to allow")
		}
	})

	t.Run("RedirectsToLoginWhenTokenAbsent", func(t *testing.T) {
		tokens := &stubTokens{values: map[string]string{}}

		d := RequireAuth(tokens)
		if d.Allow {
			t.Error("expected guard to deny")
		}
		if d.RedirectTo != RouteLogin {
			t.Errorf("expected redirect to %q, got %q", RouteLogin, d.RedirectTo)
		}
	})

	t.Run("TreatsReadFailureAsAbsent", func(t *testing.T) {
		tokens := &stubTokens{err: errors.New("db closed")}

		d := RequireAuth(tokens)
		if d.Allow {
			t.Error("expected guard to deny on read failure")
		}
	})

	t.Run("DoesNotValidateTokenContents", func(t *testing.T) {
		tokens := &stubTokens{values: map[string]string{store.KeySessionToken: "expired-or-garbage"}}

		d := RequireAuth(tokens)
		if !d.Allow {
			t.Error("expected presence alone to satisfy the guard")
		}
	})
}

func TestRequireAnonymous(t *testing.T) {
	t.Run("AllowsWhenTokenAbsent", func(t *testing.T) {
		tokens := &stubTokens{values: map[string]string{}}

		d := RequireAnonymous(tokens)
		if !d.Allow {
			t.Error("expected guard to allow")
		}
	})

	t.Run("RedirectsToPlaylistsWhenTokenPresent", func(t *testing.T) {
		tokens := &stubTokens{values: map[string]string{store.KeySessionToken: "jwt"}}

		d := RequireAnonymous(tokens)
		if d.Allow {
			t.Error("expected guard to deny")
		}
		if d.RedirectTo != RoutePlaylists {
			t.Errorf("expected redirect to %q, got %q", RoutePlaylists, d.RedirectTo)
		}
	})
}
