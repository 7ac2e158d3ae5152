package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("Renders topic and research into the template", func(t *testing.T) {
		text, err := Build("Platform Engineering", "Teams are consolidating tooling.")

		require.NoError(t, err)
		assert.Contains(t, text, "Exciting developments in Platform Engineering!")
		assert.Contains(t, text, "Teams are consolidating tooling.")
		assert.Contains(t, text, "#PlatformEngineering")
	})

	t.Run("Empty topic is rejected", func(t *testing.T) {
		_, err := Build("  ", "research")
		assert.ErrorIs(t, err, ErrEmptyTopic)
	})

	t.Run("Empty research still produces a draft", func(t *testing.T) {
		text, err := Build("Go", "")

		require.NoError(t, err)
		assert.Contains(t, text, "Exciting developments in Go!")
	})

	t.Run("Long research is truncated with an ellipsis", func(t *testing.T) {
		long := strings.Repeat("a", maxSummaryLen+100)

		text, err := Build("Go", long)

		require.NoError(t, err)
		assert.Contains(t, text, strings.Repeat("a", maxSummaryLen)+"...")
		assert.NotContains(t, text, strings.Repeat("a", maxSummaryLen+1))
	})

	t.Run("Hashtag strips spaces from the topic", func(t *testing.T) {
		text, err := Build("large language models", "r")

		require.NoError(t, err)
		assert.Contains(t, text, "#largelanguagemodels")
	})
}
