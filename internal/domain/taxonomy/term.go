package taxonomy

import (
	"context"
	"sort"
	"strings"
)

// Kind selects one of the two WordPress taxonomy namespaces. Categories and
// tags are indexed separately and never merged.
type Kind string

const (
	KindCategories Kind = "categories"
	KindTags       Kind = "tags"
)

// Term is a single taxonomy item as returned by the WordPress REST API.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Index maps normalized term names (and slugs) to term IDs for one taxonomy
// kind of one site. It is built per resolution call and holds no other state.
type Index map[string]int

// Add indexes a term under four keys: normalized name, raw lower-cased name,
// and the same pair for the slug when present. Terms without an id or name
// are skipped.
func (ix Index) Add(t Term) {
	if t.ID == 0 || t.Name == "" {
		return
	}
	ix[Normalize(t.Name)] = t.ID
	ix[strings.ToLower(t.Name)] = t.ID
	if t.Slug != "" {
		ix[Normalize(t.Slug)] = t.ID
		ix[strings.ToLower(t.Slug)] = t.ID
	}
}

// Keys returns the index keys in sorted order so fuzzy-match tie-breaks are
// deterministic.
func (ix Index) Keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResolutionResult is what a publish attempt gets back from taxonomy
// reconciliation. IDs are de-duplicated; unmatched names are reported so the
// caller can surface them.
type ResolutionResult struct {
	CategoryIDs         []int    `json:"category_ids"`
	TagIDs              []int    `json:"tag_ids"`
	UnmatchedCategories []string `json:"unmatched_categories,omitempty"`
}

// Lister fetches every term of one taxonomy kind from the remote site.
//
// A mid-pagination failure is not an error: the partial index accumulated so
// far is returned with a nil error. The returned error is non-nil only when
// the very first page request fails, meaning the site could not be reached
// at all.
type Lister interface {
	FetchAllTerms(ctx context.Context, kind Kind) (Index, error)
}

// Creator creates tags that resolved to nothing. Individual create failures
// are logged and skipped; the returned slice holds only the IDs that were
// actually created, in creation order.
type Creator interface {
	CreateTags(ctx context.Context, names []string) []int
}

// Cache is an optional index cache layered over a Lister. Entries are keyed
// by site URL and kind, and expire wholesale; there is no partial
// invalidation.
type Cache interface {
	Get(ctx context.Context, siteURL string, kind Kind) (Index, bool)
	Set(ctx context.Context, siteURL string, kind Kind, ix Index)
}
