package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/haanhpham/autopress/internal/domain/taxonomy"
)

const termsPerPage = 100

// FetchAllTerms pages through the listing endpoint of one taxonomy kind and
// builds the lookup index. Pagination stops at the first short or empty
// page. A failure after page one keeps the partial index and returns no
// error; a failure on page one means the site is unreachable and is the one
// hard-error case.
func (c *Client) FetchAllTerms(ctx context.Context, kind taxonomy.Kind) (taxonomy.Index, error) {
	ix := taxonomy.Index{}
	path := "/wp-json/wp/v2/" + string(kind)

	for page := 1; ; page++ {
		var terms []taxonomy.Term
		query := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(termsPerPage)},
		}

		if err := c.do(ctx, http.MethodGet, path, query, nil, &terms); err != nil {
			if page == 1 {
				return ix, fmt.Errorf("list %s failed: %w", kind, err)
			}
			c.log.Warn("taxonomy listing interrupted, keep partial index",
				zap.String("kind", string(kind)),
				zap.Int("page", page),
				zap.Int("indexed", len(ix)),
				zap.Error(err))
			return ix, nil
		}

		for _, t := range terms {
			ix.Add(t)
		}

		if len(terms) < termsPerPage {
			return ix, nil
		}

		// Polite delay so a large site does not see a request burst.
		select {
		case <-ctx.Done():
			return ix, nil
		case <-time.After(c.pageDelay):
		}
	}
}
