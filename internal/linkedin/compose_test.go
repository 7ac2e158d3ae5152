package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLocate(t *testing.T) {
	strategies := []Strategy{
		{Query: "a", Timeout: time.Millisecond},
		{Query: "b", Timeout: time.Millisecond},
		{Query: "c", Timeout: time.Millisecond},
	}

	t.Run("First match wins", func(t *testing.T) {
		d := newFakeDriver()
		d.visible["a"] = true
		d.visible["b"] = true

		got, err := locate(context.Background(), d, strategies)

		require.NoError(t, err)
		assert.Equal(t, "a", got.Query)
	})

	t.Run("Falls through to a later strategy", func(t *testing.T) {
		d := newFakeDriver()
		d.visible["c"] = true

		got, err := locate(context.Background(), d, strategies)

		require.NoError(t, err)
		assert.Equal(t, "c", got.Query)
	})

	t.Run("Exhausted chain yields errNoMatch", func(t *testing.T) {
		d := newFakeDriver()

		_, err := locate(context.Background(), d, strategies)

		assert.ErrorIs(t, err, errNoMatch)
	})

	t.Run("Cancellation is not folded into errNoMatch", func(t *testing.T) {
		d := newFakeDriver()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := locate(ctx, d, strategies)

		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, errNoMatch)
	})
}

func newTestComposer(t *testing.T, d Driver) *composer {
	cfg := testConfig()
	return &composer{d: d, browser: cfg.Browser, cfg: cfg.LinkedIn, logger: zaptest.NewLogger(t)}
}

func TestComposerSubmit(t *testing.T) {
	t.Run("Fills primary editor and clicks primary button once", func(t *testing.T) {
		d := newFakeDriver()
		d.visible["div.ql-editor"] = true
		d.visible["button.share-actions__primary-action"] = true
		c := newTestComposer(t, d)

		outcome, err := c.submit(context.Background(), "hello world")

		require.NoError(t, err)
		assert.Equal(t, Outcome{}, outcome, "zero outcome hands off to the classifier")
		assert.Equal(t, "hello world", d.fills["div.ql-editor"])
		require.Equal(t, 1, d.clickCount())
		assert.Equal(t, "button.share-actions__primary-action", d.clicks[0])
	})

	t.Run("Secondary button match still clicks exactly once", func(t *testing.T) {
		d := newFakeDriver()
		d.visible[`div[role="textbox"]`] = true
		d.visible[`//button[contains(., "Post")]`] = true
		c := newTestComposer(t, d)

		outcome, err := c.submit(context.Background(), "fallback content")

		require.NoError(t, err)
		assert.Equal(t, Outcome{}, outcome)
		assert.Equal(t, "fallback content", d.fills[`div[role="textbox"]`])
		require.Equal(t, 1, d.clickCount())
		assert.Equal(t, `//button[contains(., "Post")]`, d.clicks[0])
	})

	t.Run("Missing editor is an expected negative", func(t *testing.T) {
		d := newFakeDriver()
		c := newTestComposer(t, d)

		outcome, err := c.submit(context.Background(), "content")

		require.NoError(t, err)
		assert.Equal(t, StatusEditorNotFound, outcome.Status)
		assert.Empty(t, d.fills)
		assert.Zero(t, d.clickCount())
	})

	t.Run("Missing button is an expected negative", func(t *testing.T) {
		d := newFakeDriver()
		d.visible["div.ql-editor"] = true
		c := newTestComposer(t, d)

		outcome, err := c.submit(context.Background(), "content")

		require.NoError(t, err)
		assert.Equal(t, StatusSubmitNotFound, outcome.Status)
		assert.Zero(t, d.clickCount())
	})

	t.Run("Navigation failure is operational", func(t *testing.T) {
		d := newFakeDriver()
		d.navErr = errors.New("net::ERR_CONNECTION_RESET")
		c := newTestComposer(t, d)

		_, err := c.submit(context.Background(), "content")

		require.Error(t, err)
	})

	t.Run("Fill failure is operational", func(t *testing.T) {
		d := newFakeDriver()
		d.visible["div.ql-editor"] = true
		d.fillErr = errors.New("node destroyed")
		c := newTestComposer(t, d)

		_, err := c.submit(context.Background(), "content")

		require.Error(t, err)
		assert.Zero(t, d.clickCount())
	})
}
