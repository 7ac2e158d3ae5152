package linkedin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// confirmStrategies are the success-message heuristics, in preference
// order. LinkedIn shows one of two toasts when a post lands.
func confirmStrategies(cfg config.LinkedInConfig) []Strategy {
	return []Strategy{
		{Query: `//*[contains(text(), "Post successful")]`, Timeout: cfg.ConfirmWait},
		{Query: `//*[contains(text(), "Your post was shared")]`, Timeout: cfg.AltConfirmWait},
	}
}

// classifier interprets post-submission browser state into a definitive
// outcome.
type classifier struct {
	d      Driver
	cfg    config.LinkedInConfig
	logger *zap.Logger
}

// classify confirms the submission heuristically. It never claims failure
// just because confirmation text is missing; the post may well have gone
// through, so the honest answer in that case is Indeterminate.
func (c *classifier) classify(ctx context.Context) (Outcome, error) {
	if _, err := locate(ctx, c.d, confirmStrategies(c.cfg)); err == nil {
		c.logger.Info("Post confirmed by success message.")
		return Outcome{Status: StatusSuccess, Message: msgPosted}, nil
	} else if !errors.Is(err, errNoMatch) {
		return Outcome{}, err
	}

	// No toast appeared. Fall back to URL inspection after a short settle;
	// still being on the feed is weak but real evidence of success.
	sleepCtx(ctx, c.cfg.ConfirmSettle)

	loc, err := c.d.Location(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("reading URL for confirmation: %w", err)
	}
	if strings.Contains(loc, "feed") {
		c.logger.Info("Post likely succeeded (on feed, no confirmation text).")
		return Outcome{Status: StatusSuccess, Message: msgPosted}, nil
	}

	c.logger.Warn("Could not confirm post outcome.")
	return Outcome{Status: StatusIndeterminate, Message: msgIndeterminate}, nil
}
