package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// Credentials is an optional email/password pair. Absence is an expected
// state that routes the flow to manual login, not a failure.
type Credentials struct {
	Email    string
	Password string
}

// Present reports whether both fields are usable.
func (c Credentials) Present() bool {
	return c.Email != "" && c.Password != ""
}

// authState enumerates the login state machine.
type authState int

const (
	authNotChecked authState = iota
	authAuthenticated
	authCredentialLogin
	authManualRequired
	authLoginFailed
)

// Login form selectors. The login page has been stable for years, so no
// fallback chain here.
const (
	selLoginEmail    = "input#username"
	selLoginPassword = "input#password"
	selLoginSubmit   = `button[type="submit"]`
)

const loginPollInterval = 500 * time.Millisecond

// authenticator walks the login state machine for one post attempt.
type authenticator struct {
	d      Driver
	creds  Credentials
	cfg    config.LinkedInConfig
	logger *zap.Logger
}

// ensure drives the machine from the probed state to a terminal one. It
// returns (true, zero Outcome) when the session ends up authenticated, or
// (false, outcome) with the terminal outcome for this attempt. Login is
// attempted at most once; retrying is the caller's decision.
func (a *authenticator) ensure(ctx context.Context, probed SessionState) (bool, Outcome) {
	state := authNotChecked
	var loginErr error

	for {
		switch state {
		case authNotChecked:
			switch probed {
			case StateAuthenticated:
				state = authAuthenticated
			default:
				if a.creds.Present() {
					state = authCredentialLogin
				} else {
					state = authManualRequired
				}
			}

		case authAuthenticated:
			a.logger.Info("Session authenticated.")
			return true, Outcome{}

		case authCredentialLogin:
			if err := a.credentialLogin(ctx); err != nil {
				loginErr = err
				state = authLoginFailed
			} else {
				state = authAuthenticated
			}

		case authManualRequired:
			a.logger.Info("No credentials configured; leaving window open for manual login.")
			return false, Outcome{Status: StatusAuthRequired, Message: msgManualLogin}

		case authLoginFailed:
			a.logger.Warn("Credential login failed.", zap.Error(loginErr))
			return false, Outcome{
				Status: StatusAuthRequired,
				Message: fmt.Sprintf(
					"Login failed. Check your credentials and complete any security checks. Error: %v",
					loginErr),
			}
		}
	}
}

// credentialLogin fills the form, submits, and waits for the browser to
// land on the feed. The wait is generous because LinkedIn may interpose an
// interactive security challenge the operator completes in the window.
func (a *authenticator) credentialLogin(ctx context.Context) error {
	a.logger.Info("Attempting credential login.")

	if err := a.d.Fill(ctx, selLoginEmail, a.creds.Email); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := a.d.Fill(ctx, selLoginPassword, a.creds.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := a.d.Click(ctx, selLoginSubmit, a.cfg.FallbackWait); err != nil {
		return fmt.Errorf("submitting login form: %w", err)
	}

	if err := a.waitForFeed(ctx); err != nil {
		return fmt.Errorf("waiting for post-login navigation: %w", err)
	}

	a.logger.Info("Credential login succeeded.")
	return nil
}

// waitForFeed polls the current URL until it reaches the authenticated feed
// or the configured wait elapses.
func (a *authenticator) waitForFeed(ctx context.Context) error {
	deadline := time.Now().Add(a.cfg.LoginWait)
	ticker := time.NewTicker(loginPollInterval)
	defer ticker.Stop()

	for {
		loc, err := a.d.Location(ctx)
		if err == nil && strings.HasPrefix(loc, a.cfg.FeedURL) {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %s waiting for %s", a.cfg.LoginWait, a.cfg.FeedURL)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
