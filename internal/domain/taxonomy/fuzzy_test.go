package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatch(t *testing.T) {
	t.Run("exact candidate returns target", func(t *testing.T) {
		got, ok := FuzzyMatch("tech", []string{"news", "tech"})
		assert.True(t, ok)
		assert.Equal(t, "tech", got)
	})

	t.Run("singular matches plural", func(t *testing.T) {
		got, ok := FuzzyMatch("beginner guide", []string{"beginner guides"})
		assert.True(t, ok)
		assert.Equal(t, "beginner guides", got)
	})

	t.Run("target containing candidate", func(t *testing.T) {
		got, ok := FuzzyMatch("fly fishing tips", []string{"fishing"})
		assert.True(t, ok)
		assert.Equal(t, "fishing", got)
	})

	t.Run("closest length wins", func(t *testing.T) {
		got, ok := FuzzyMatch("fish", []string{"fishing equipment", "fishing"})
		assert.True(t, ok)
		assert.Equal(t, "fishing", got)
	})

	t.Run("tie broken by first occurrence", func(t *testing.T) {
		got, ok := FuzzyMatch("fish", []string{"fisher", "fished"})
		assert.True(t, ok)
		assert.Equal(t, "fisher", got)
	})

	t.Run("no qualifying candidate", func(t *testing.T) {
		_, ok := FuzzyMatch("gardening", []string{"tech", "news"})
		assert.False(t, ok)
	})

	t.Run("empty target never matches", func(t *testing.T) {
		_, ok := FuzzyMatch("", []string{"tech"})
		assert.False(t, ok)
	})

	t.Run("empty candidates", func(t *testing.T) {
		_, ok := FuzzyMatch("tech", nil)
		assert.False(t, ok)
	})
}
