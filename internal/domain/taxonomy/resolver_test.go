package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAdd(t *testing.T) {
	ix := Index{}

	ix.Add(Term{ID: 5, Name: "Tech &amp; Gadgets", Slug: "tech-gadgets"})
	assert.Equal(t, 5, ix["tech & gadgets"])
	assert.Equal(t, 5, ix["tech &amp; gadgets"])
	assert.Equal(t, 5, ix["tech-gadgets"])

	// missing id or name is skipped, not an error
	ix.Add(Term{Name: "No ID"})
	ix.Add(Term{ID: 9})
	assert.Len(t, ix, 3)
}

func TestResolveIDs(t *testing.T) {
	ix := Index{"tech": 5, "news": 10}

	res := ResolveIDs([]string{"Tech", "News", "Unknown"}, ix)
	assert.Equal(t, []int{5, 10}, res.IDs)
	assert.Equal(t, []string{"Unknown"}, res.Unmatched)
}

func TestResolveIDsFollowsInputOrder(t *testing.T) {
	ix := Index{"alpha": 1, "beta": 2, "gamma": 3}

	res := ResolveIDs([]string{"gamma", "alpha", "beta"}, ix)
	assert.Equal(t, []int{3, 1, 2}, res.IDs)
	assert.Empty(t, res.Unmatched)
}

func TestResolveIDsFuzzyFallback(t *testing.T) {
	ix := Index{"beginner guides": 7}

	res := ResolveIDs([]string{"Beginner Guide"}, ix)
	assert.Equal(t, []int{7}, res.IDs)
	assert.Empty(t, res.Unmatched)
}

func TestResolveIDsEmptyInput(t *testing.T) {
	res := ResolveIDs(nil, Index{"tech": 5})
	assert.Empty(t, res.IDs)
	assert.Empty(t, res.Unmatched)

	res = ResolveIDs([]string{"tech"}, Index{})
	assert.Empty(t, res.IDs)
	assert.Equal(t, []string{"tech"}, res.Unmatched)
}
