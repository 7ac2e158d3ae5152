package linkedin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestCombineContext(t *testing.T) {
	t.Run("Secondary cancellation propagates", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		secondary, cancelSecondary := context.WithCancel(context.Background())
		combined, cancel := combineContext(context.Background(), secondary)
		defer cancel()

		cancelSecondary()

		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context not canceled after secondary cancellation")
		}
	})

	t.Run("Primary cancellation propagates", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		primary, cancelPrimary := context.WithCancel(context.Background())
		combined, cancel := combineContext(primary, context.Background())
		defer cancel()

		cancelPrimary()

		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context not canceled after primary cancellation")
		}
	})

	t.Run("Cancel func releases the watcher goroutine", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		combined, cancel := combineContext(context.Background(), context.Background())
		cancel()

		assert.Error(t, combined.Err())
	})
}
