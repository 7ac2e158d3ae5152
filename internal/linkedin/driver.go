package linkedin

import (
	"context"
	"time"
)

// Driver is the minimal browser surface the posting pipeline needs. The
// production implementation drives Chrome through chromedp; tests substitute
// a scripted fake. Selectors are CSS, or XPath when prefixed with "//".
type Driver interface {
	// Navigate loads url and waits for the navigation to settle, bounded
	// by timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)

	// WaitVisible blocks until an element matching selector is visible,
	// bounded by timeout.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Fill replaces the full content of the matched element. It handles
	// both form inputs and contenteditable surfaces.
	Fill(ctx context.Context, selector, text string) error

	// Click fires exactly one click on the matched element, bounded by
	// timeout.
	Click(ctx context.Context, selector string, timeout time.Duration) error

	// Screenshot captures the current page state.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the browser session. Must be idempotent.
	Close(ctx context.Context) error
}
