package linkedin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// Strategy pairs a selector with the wait budget it gets before the next
// fallback is tried. The share UI is volatile; keeping the alternatives as
// data means UI drift is a list edit, not a control-flow change.
type Strategy struct {
	Query   string
	Timeout time.Duration
}

// errNoMatch reports that every strategy in a fallback chain missed.
var errNoMatch = errors.New("no selector strategy matched")

// locate tries each strategy in order and returns the first that matches.
// A context cancellation aborts the chain as an operational error rather
// than being folded into errNoMatch.
func locate(ctx context.Context, d Driver, strategies []Strategy) (Strategy, error) {
	var lastErr error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return Strategy{}, err
		}
		if err := d.WaitVisible(ctx, s.Query, s.Timeout); err != nil {
			lastErr = err
			continue
		}
		return s, nil
	}
	if lastErr != nil {
		return Strategy{}, fmt.Errorf("%w: %v", errNoMatch, lastErr)
	}
	return Strategy{}, errNoMatch
}

// editorStrategies is the fallback chain for the compose surface. The
// primary selector gets the long wait; the alternatives are quick probes.
func editorStrategies(cfg config.LinkedInConfig) []Strategy {
	return []Strategy{
		{Query: "div.ql-editor", Timeout: cfg.EditorWait},
		{Query: `div[data-placeholder="What do you want to talk about?"]`, Timeout: cfg.FallbackWait},
		{Query: `div[role="textbox"]`, Timeout: cfg.FallbackWait},
		{Query: `div[contenteditable="true"]`, Timeout: cfg.FallbackWait},
	}
}

// submitStrategies is the fallback chain for the post button.
func submitStrategies(cfg config.LinkedInConfig) []Strategy {
	return []Strategy{
		{Query: "button.share-actions__primary-action", Timeout: cfg.FallbackWait},
		{Query: `button[type="submit"]`, Timeout: cfg.FallbackWait},
		{Query: `//button[contains(., "Post")]`, Timeout: cfg.FallbackWait},
		{Query: `//button[contains(., "Share")]`, Timeout: cfg.FallbackWait},
	}
}

// composer locates the compose surface, injects the content, and fires the
// submission. Only reached on an authenticated session.
type composer struct {
	d       Driver
	browser config.BrowserConfig
	cfg     config.LinkedInConfig
	logger  *zap.Logger
}

// submit returns a zero Outcome when the click was fired and the classifier
// should take over; a populated Outcome for the expected negatives; and an
// error for operational failures the caller turns into StatusError.
func (c *composer) submit(ctx context.Context, content string) (Outcome, error) {
	if err := c.d.Navigate(ctx, c.cfg.ShareURL, c.browser.NavigationTimeout); err != nil {
		return Outcome{}, fmt.Errorf("opening share view: %w", err)
	}

	editor, err := locate(ctx, c.d, editorStrategies(c.cfg))
	if err != nil {
		if errors.Is(err, errNoMatch) {
			c.logger.Warn("Post editor not found.", zap.Error(err))
			return Outcome{Status: StatusEditorNotFound, Message: msgEditorNotFound}, nil
		}
		return Outcome{}, err
	}
	c.logger.Debug("Editor located.", zap.String("selector", editor.Query))

	if err := c.d.Fill(ctx, editor.Query, content); err != nil {
		return Outcome{}, fmt.Errorf("filling post editor: %w", err)
	}

	// Give the UI a beat to enable the submit button after the content
	// lands. Known fragility: this is tuning, not a guarantee.
	sleepCtx(ctx, c.cfg.ComposeSettle)

	button, err := locate(ctx, c.d, submitStrategies(c.cfg))
	if err != nil {
		if errors.Is(err, errNoMatch) {
			c.logger.Warn("Post button not found.", zap.Error(err))
			return Outcome{Status: StatusSubmitNotFound, Message: msgSubmitNotFound}, nil
		}
		return Outcome{}, err
	}
	c.logger.Debug("Submit control located.", zap.String("selector", button.Query))

	// Exactly one click across the whole fallback chain.
	if err := c.d.Click(ctx, button.Query, c.cfg.FallbackWait); err != nil {
		return Outcome{}, fmt.Errorf("clicking %s: %w", button.Query, err)
	}

	c.logger.Info("Post submitted.")
	return Outcome{}, nil
}

// sleepCtx sleeps for d unless ctx finishes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
