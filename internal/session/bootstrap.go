package session

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/plx-dev/plx/internal/api"
	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
)

// State is a phase of the session bootstrap.
type State int

const (
	// StateNeedRedirect means no credential material exists beyond the
	// session token. The caller must hand off to the external authorization
	// endpoint; no playlist fetch is attempted.
	StateNeedRedirect State = iota

	// StateExchangeCode means a one-time redirect code is available and will
	// be sent to the backend in exchange for a refresh token.
	StateExchangeCode

	// StateReuseRefresh means a stored refresh token is available. It takes
	// precedence over any code that may also be present.
	StateReuseRefresh

	// StateReady means the playlist fetch succeeded and the session is
	// usable.
	StateReady

	// StateReauthRequired means the backend rejected the credential with its
	// distinguished re-authorization code. The caller must hand off to the
	// external authorization endpoint, exactly once, with no notice shown.
	StateReauthRequired
)

func (s State) String() string {
	switch s {
	case StateNeedRedirect:
		return "need_redirect"
	case StateExchangeCode:
		return "exchange_code"
	case StateReuseRefresh:
		return "reuse_refresh"
	case StateReady:
		return "ready"
	case StateReauthRequired:
		return "reauth_required"
	default:
		return "unknown"
	}
}

// Inputs is a single consistent snapshot of the credential material the
// bootstrap decides on. All three values are read together; the decision
// never mixes reads from different points in time.
type Inputs struct {
	Code         string
	RefreshToken string
	SessionToken string
}

// TokenStore is the subset of the token store the bootstrap needs.
type TokenStore interface {
	Set(name, value string) error
	Snapshot() (map[string]string, error)
}

// PlaylistFetcher is the backend call the bootstrap drives.
type PlaylistFetcher interface {
	Playlists(ctx context.Context, code, refreshToken string) (*api.PlaylistsResult, error)
}

// PlaylistCacher persists the fetched playlists for offline listing.
type PlaylistCacher interface {
	Replace(playlists []models.Playlist) error
}

// ReadInputs snapshots the three bootstrap inputs from the token store in one
// transaction. A non-empty code carried in from a fresh authorization
// redirect overrides the stored one.
func ReadInputs(tokens TokenStore, redirectCode string) (Inputs, error) {
	values, err := tokens.Snapshot()
	if err != nil {
		return Inputs{}, err
	}

	in := Inputs{
		Code:         values[store.KeyAuthCode],
		RefreshToken: values[store.KeyRefreshToken],
		SessionToken: values[store.KeySessionToken],
	}
	if redirectCode != "" {
		in.Code = redirectCode
	}

	return in, nil
}

// Resolve picks the bootstrap path from a snapshot of the inputs. It is a
// pure function; Run applies its decision.
func Resolve(in Inputs) State {
	if in.Code == "" && in.RefreshToken == "" && in.SessionToken != "" {
		return StateNeedRedirect
	}

	if in.RefreshToken != "" {
		return StateReuseRefresh
	}

	return StateExchangeCode
}

// Outcome is the terminal result of one bootstrap run.
type Outcome struct {
	State     State
	Playlists []models.Playlist
}

// Bootstrap drives the one-shot session establishment flow. A single value
// is good for exactly one run; repeat calls return the first outcome.
type Bootstrap struct {
	tokens TokenStore
	client PlaylistFetcher
	cache  PlaylistCacher
	logger *log.Logger

	once    sync.Once
	outcome *Outcome
	err     error
}

// NewBootstrap wires a bootstrap over the token store, backend client and
// playlist cache. cache may be nil when offline caching is not wanted.
func NewBootstrap(tokens TokenStore, client PlaylistFetcher, cache PlaylistCacher, logger *log.Logger) *Bootstrap {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Bootstrap{tokens: tokens, client: client, cache: cache, logger: logger}
}

// Run executes the bootstrap against a snapshot of inputs. It never returns
// a user-visible error for fetch failures: the distinguished backend
// rejection becomes StateReauthRequired and everything else is logged and
// swallowed, leaving the state at the attempted path.
func (b *Bootstrap) Run(ctx context.Context, in Inputs) (*Outcome, error) {
	b.once.Do(func() {
		b.outcome, b.err = b.run(ctx, in)
	})

	return b.outcome, b.err
}

func (b *Bootstrap) run(ctx context.Context, in Inputs) (*Outcome, error) {
	state := Resolve(in)
	b.logger.Debug("session bootstrap", "state", state)

	if state == StateNeedRedirect {
		return &Outcome{State: state}, nil
	}

	// The code is persisted before the exchange so an interrupted run can
	// retry with the same material on the next mount.
	if in.Code != "" {
		if err := b.tokens.Set(store.KeyAuthCode, in.Code); err != nil {
			return nil, err
		}
	}

	code, refresh := in.Code, in.RefreshToken
	if state == StateReuseRefresh {
		code = ""
	}

	result, err := b.client.Playlists(ctx, code, refresh)
	if err != nil {
		if errors.Is(err, shared.ErrReauthRequired) {
			return &Outcome{State: StateReauthRequired}, nil
		}

		b.logger.Warn("playlist fetch failed", "state", state, "error", err)

		return &Outcome{State: state}, nil
	}

	if result.RefreshToken != "" {
		if err := b.tokens.Set(store.KeyRefreshToken, result.RefreshToken); err != nil {
			return nil, err
		}
	}

	if b.cache != nil {
		if err := b.cache.Replace(result.Playlists); err != nil {
			b.logger.Warn("playlist cache update failed", "error", err)
		}
	}

	return &Outcome{State: StateReady, Playlists: result.Playlists}, nil
}
