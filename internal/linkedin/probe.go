package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SessionState classifies the browser's authentication state against the
// platform. Exactly one state is derived per post attempt.
type SessionState int

const (
	StateIndeterminate SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "indeterminate"
	}
}

// probeSession loads the feed and classifies the session from the URL the
// browser lands on: LinkedIn bounces unauthenticated visitors to /login or
// /signup. A navigation failure yields StateIndeterminate with the error;
// the caller must treat that as terminal rather than guess.
func probeSession(ctx context.Context, d Driver, feedURL string, timeout time.Duration) (SessionState, error) {
	if err := d.Navigate(ctx, feedURL, timeout); err != nil {
		return StateIndeterminate, fmt.Errorf("probing session: %w", err)
	}

	loc, err := d.Location(ctx)
	if err != nil {
		return StateIndeterminate, fmt.Errorf("probing session: %w", err)
	}

	if strings.Contains(loc, "login") || strings.Contains(loc, "signup") {
		return StateUnauthenticated, nil
	}
	return StateAuthenticated, nil
}
