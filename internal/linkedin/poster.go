package linkedin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// ErrEmptyContent rejects blank posts before any browser activity.
var ErrEmptyContent = errors.New("post content must not be empty")

const (
	closeGrace   = 15 * time.Second
	captureGrace = 10 * time.Second
)

// AcquireFunc produces the browser session for one post attempt.
type AcquireFunc func(ctx context.Context) (Driver, error)

// Poster runs the posting pipeline: probe, authenticate, compose, classify.
// Stages run strictly in sequence against a single browser session, and
// nothing is retried automatically; a failed attempt surfaces to the caller,
// who may run the whole pipeline again with a fresh session.
type Poster struct {
	cfg     *config.Config
	creds   Credentials
	acquire AcquireFunc
	logger  *zap.Logger
}

// NewPoster builds the production Poster, acquiring real Chrome sessions
// against the configured persistent profile.
func NewPoster(cfg *config.Config, logger *zap.Logger) *Poster {
	p := newPoster(cfg, Credentials{Email: cfg.LinkedIn.Email, Password: cfg.LinkedIn.Password}, nil, logger)
	p.acquire = func(ctx context.Context) (Driver, error) {
		return Acquire(ctx, cfg.Browser, p.logger)
	}
	return p
}

// newPoster wires a Poster with an explicit acquisition path; tests use it
// to substitute a scripted driver.
func newPoster(cfg *config.Config, creds Credentials, acquire AcquireFunc, logger *zap.Logger) *Poster {
	return &Poster{
		cfg:     cfg,
		creds:   creds,
		acquire: acquire,
		logger:  logger.Named("poster"),
	}
}

// Post publishes content. The error return is reserved for input
// validation; every operational result, good or bad, comes back as exactly
// one Outcome variant.
func (p *Poster) Post(ctx context.Context, content string) (Outcome, error) {
	if strings.TrimSpace(content) == "" {
		return Outcome{}, ErrEmptyContent
	}

	p.logger.Info("Starting post attempt.", zap.Int("content_len", len(content)))

	d, err := p.acquire(ctx)
	if err != nil {
		p.logger.Error("Browser acquisition failed.", zap.Error(err))
		return Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("could not acquire browser session: %v", err),
		}, nil
	}

	// The session must be released on every exit path, including caller
	// cancellation, so the close runs under its own background deadline.
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeGrace)
		defer cancel()
		if cerr := d.Close(closeCtx); cerr != nil {
			p.logger.Warn("Browser close failed.", zap.Error(cerr))
		}
	}()

	return p.run(ctx, d, content), nil
}

// run executes the pipeline stages, each proceeding only on explicit prior
// success.
func (p *Poster) run(ctx context.Context, d Driver, content string) Outcome {
	state, err := probeSession(ctx, d, p.cfg.LinkedIn.FeedURL, p.cfg.Browser.NavigationTimeout)
	if err != nil {
		return p.operationalFailure(d, err)
	}
	p.logger.Info("Session probed.", zap.Stringer("state", state))

	auth := &authenticator{d: d, creds: p.creds, cfg: p.cfg.LinkedIn, logger: p.logger.Named("auth")}
	ok, outcome := auth.ensure(ctx, state)
	if !ok {
		return outcome
	}

	comp := &composer{d: d, browser: p.cfg.Browser, cfg: p.cfg.LinkedIn, logger: p.logger.Named("composer")}
	outcome, err = comp.submit(ctx, content)
	if err != nil {
		return p.operationalFailure(d, err)
	}
	if outcome.Status != "" {
		return outcome
	}

	cls := &classifier{d: d, cfg: p.cfg.LinkedIn, logger: p.logger.Named("classifier")}
	outcome, err = cls.classify(ctx)
	if err != nil {
		return p.operationalFailure(d, err)
	}
	return outcome
}

// operationalFailure turns an unexpected error into a terminal Error
// outcome, capturing a diagnostic screenshot on a best-effort basis. The
// capture runs under its own context so it still works when the pipeline's
// context is already dead.
func (p *Poster) operationalFailure(d Driver, cause error) Outcome {
	p.logger.Error("Post attempt failed.", zap.Error(cause))
	out := Outcome{Status: StatusError, Message: cause.Error()}

	capCtx, cancel := context.WithTimeout(context.Background(), captureGrace)
	defer cancel()

	shot, err := d.Screenshot(capCtx)
	if err != nil {
		p.logger.Warn("Diagnostic screenshot failed.", zap.Error(err))
		return out
	}

	path := p.cfg.LinkedIn.ScreenshotPath
	if werr := os.WriteFile(path, shot, 0o644); werr != nil {
		p.logger.Warn("Could not write diagnostic screenshot.", zap.Error(werr))
		return out
	}

	p.logger.Info("Diagnostic screenshot saved.", zap.String("path", path))
	out.DiagnosticPath = path
	return out
}
