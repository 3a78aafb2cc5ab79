package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/session"
	"github.com/plx-dev/plx/internal/shared"
	"github.com/plx-dev/plx/internal/store"
)

// AuthLogin signs in with email and password and stores the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := models.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if errs := creds.Validate(); !errs.Valid() {
		for field, msg := range errs {
			r.writePlain("%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid credentials")
	}

	tokens, _, err := r.stores()
	if err != nil {
		return err
	}
	if d := session.RequireAnonymous(tokens); !d.Allow && !cmd.Bool("force") {
		return fmt.Errorf("%w: pass --force to replace the stored session", shared.ErrAlreadyAuthenticated)
	}

	r.logger.Info("signing in", "email", creds.Email)

	result, err := r.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := tokens.Set(store.KeySessionToken, result.Token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	if result.User.Name != "" {
		return r.writePlain("✓ Signed in as %s\n", result.User.Name)
	}
	return r.writePlain("✓ Signed in\n")
}

// AuthRegister creates a new account. The session still requires a login.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	reg := models.Registration{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if errs := reg.Validate(); !errs.Valid() {
		for field, msg := range errs {
			r.writePlain("%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid registration")
	}

	if err := r.client.Register(ctx, reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created\n")
	return r.writePlain("Run 'plx auth login' to sign in\n")
}

// AuthStatus reports which credentials are stored locally.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	tokens, _, err := r.stores()
	if err != nil {
		return err
	}

	snapshot, err := tokens.Snapshot()
	has := func(key string) string {
		if err == nil && snapshot[key] != "" {
			return "✓"
		}
		return "✗"
	}

	r.writePlain("Session token:  %s\n", has(store.KeySessionToken))
	r.writePlain("Refresh token:  %s\n", has(store.KeyRefreshToken))
	r.writePlain("Pending code:   %s\n", has(store.KeyAuthCode))
	return err
}

// AuthLogout clears every stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	tokens, _, err := r.stores()
	if err != nil {
		return err
	}

	if err := tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Signed out\n")
}
