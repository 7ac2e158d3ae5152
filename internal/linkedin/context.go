package linkedin

import "context"

// combineContext derives a context from primary that is additionally
// canceled when secondary is done. chromedp carries its connection state in
// context values, so operational deadlines must be layered onto the session
// context rather than replacing it.
func combineContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(primary)

	go func() {
		select {
		case <-secondary.Done():
			cancel()
		case <-combined.Done():
		}
	}()

	return combined, cancel
}
