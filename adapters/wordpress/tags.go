package wordpress

import (
	"context"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/haanhpham/autopress/internal/domain/taxonomy"
)

// WordPress rejects longer term names; skip them instead of failing the batch.
const maxTagNameLength = 200

// CreateTags creates one tag per name and returns the new IDs in creation
// order. A failed create is logged and skipped, it never aborts the rest of
// the batch.
func (c *Client) CreateTags(ctx context.Context, names []string) []int {
	ids := make([]int, 0, len(names))

	for _, name := range names {
		if utf8.RuneCountInString(name) > maxTagNameLength {
			c.log.Warn("tag name over length limit, skip", zap.Int("length", utf8.RuneCountInString(name)))
			continue
		}

		var created taxonomy.Term
		err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/tags", nil, map[string]string{"name": name}, &created)
		if err != nil {
			c.log.Warn("create tag failed, skip", zap.String("name", name), zap.Error(err))
			continue
		}
		if created.ID == 0 {
			c.log.Warn("create tag returned no id, skip", zap.String("name", name))
			continue
		}

		ids = append(ids, created.ID)
	}

	return ids
}
