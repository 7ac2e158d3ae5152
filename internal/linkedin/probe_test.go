package linkedin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSession(t *testing.T) {
	feedURL := "https://www.linkedin.com/feed/"

	t.Run("Authenticated when feed loads in place", func(t *testing.T) {
		d := newFakeDriver()

		state, err := probeSession(context.Background(), d, feedURL, 0)

		require.NoError(t, err)
		assert.Equal(t, StateAuthenticated, state)
		assert.Equal(t, []string{feedURL}, d.navigated)
	})

	t.Run("Unauthenticated when bounced to login", func(t *testing.T) {
		d := newFakeDriver()
		d.redirects[feedURL] = "https://www.linkedin.com/login"

		state, err := probeSession(context.Background(), d, feedURL, 0)

		require.NoError(t, err)
		assert.Equal(t, StateUnauthenticated, state)
	})

	t.Run("Unauthenticated when bounced to signup", func(t *testing.T) {
		d := newFakeDriver()
		d.redirects[feedURL] = "https://www.linkedin.com/signup/cold-join"

		state, err := probeSession(context.Background(), d, feedURL, 0)

		require.NoError(t, err)
		assert.Equal(t, StateUnauthenticated, state)
	})

	t.Run("Indeterminate on navigation failure", func(t *testing.T) {
		d := newFakeDriver()
		d.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

		state, err := probeSession(context.Background(), d, feedURL, 0)

		require.Error(t, err)
		assert.Equal(t, StateIndeterminate, state)
	})

	t.Run("Indeterminate when URL cannot be read", func(t *testing.T) {
		d := newFakeDriver()
		d.locErr = errors.New("target closed")

		state, err := probeSession(context.Background(), d, feedURL, 0)

		require.Error(t, err)
		assert.Equal(t, StateIndeterminate, state)
	})
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "indeterminate", StateIndeterminate.String())
}
