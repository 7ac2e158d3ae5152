package linkedin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

const (
	browserStartTimeout = 30 * time.Second
	locationTimeout     = 5 * time.Second
	fillTimeout         = 10 * time.Second
	screenshotTimeout   = 10 * time.Second
)

// Browser is the chromedp-backed Driver. It owns one Chrome process bound
// to the persistent profile directory for the duration of a post attempt.
type Browser struct {
	id          string
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *zap.Logger

	mu     sync.Mutex
	closed bool
}

var _ Driver = (*Browser)(nil)

// Acquire launches Chrome against the persistent profile and verifies the
// process is responsive. The caller must Close the returned Browser on
// every exit path.
func Acquire(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	if err := os.MkdirAll(cfg.UserDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating browser profile directory: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(cfg.UserDataDir),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		id:          uuid.New().String(),
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}
	b.logger = logger.Named("browser").With(zap.String("session_id", b.id))

	// Start the process eagerly so acquisition failures surface here, not
	// on the first pipeline step.
	startCtx, startCancel := context.WithTimeout(browserCtx, browserStartTimeout)
	defer startCancel()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("browser failed to start: %w", err)
	}

	b.logger.Debug("Browser session acquired.", zap.String("profile", cfg.UserDataDir))
	return b, nil
}

// ID returns the unique identifier of this browser session.
func (b *Browser) ID() string { return b.id }

// run executes chromedp actions under both the session lifetime and the
// caller's context, with an optional per-call timeout.
func (b *Browser) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := combineContext(b.ctx, ctx)
	defer cancel()

	if timeout > 0 {
		var tcancel context.CancelFunc
		runCtx, tcancel = context.WithTimeout(runCtx, timeout)
		defer tcancel()
	}

	return chromedp.Run(runCtx, actions...)
}

// matchKind picks the chromedp query option for a selector: XPath for
// "//"-prefixed strings, CSS otherwise.
func matchKind(selector string) chromedp.QueryOption {
	if strings.HasPrefix(selector, "//") || strings.HasPrefix(selector, "(") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// Navigate loads url, bounded by timeout.
func (b *Browser) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := b.run(ctx, timeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Location returns the current page URL.
func (b *Browser) Location(ctx context.Context) (string, error) {
	var loc string
	if err := b.run(ctx, locationTimeout, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return loc, nil
}

// WaitVisible blocks until selector is visible, bounded by timeout.
func (b *Browser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := b.run(ctx, timeout, chromedp.WaitVisible(selector, matchKind(selector))); err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return nil
}

// fillScript replaces the full content of the first element matching a CSS
// selector and fires the input/change events the page's UI listens for.
// Works for both form inputs and contenteditable editors.
const fillScript = `(() => {
	const el = document.querySelector(%q);
	if (!el) { return false; }
	el.focus();
	if (el.isContentEditable) {
		el.innerText = %q;
	} else {
		el.value = %q;
	}
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`

// Fill replaces (not appends) the content of the matched element.
func (b *Browser) Fill(ctx context.Context, selector, text string) error {
	script := fmt.Sprintf(fillScript, selector, text, text)
	var ok bool
	if err := b.run(ctx, fillTimeout, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	if !ok {
		return fmt.Errorf("filling %s: no matching element", selector)
	}
	return nil
}

// Click fires one click on the matched element, bounded by timeout.
func (b *Browser) Click(ctx context.Context, selector string, timeout time.Duration) error {
	if err := b.run(ctx, timeout, chromedp.Click(selector, matchKind(selector))); err != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

// Screenshot captures the current page as PNG.
func (b *Browser) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := b.run(ctx, screenshotTimeout, chromedp.ActionFunc(func(c context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			Do(c)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return buf, nil
}

// Close releases the Chrome process and the allocator. Safe to call more
// than once; only the first call does work.
func (b *Browser) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.logger.Debug("Closing browser session.")

	// Ask the browser to shut down cleanly before tearing the process down.
	if err := chromedp.Cancel(b.ctx); err != nil {
		b.logger.Debug("Graceful browser cancel failed.", zap.Error(err))
	}
	b.cancel()
	b.allocCancel()
	return nil
}
