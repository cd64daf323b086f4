package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haanhpham/autopress/internal/config"
	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var cfg config.Config
	cfg.WordPress.SiteURL = srv.URL + "/"
	cfg.WordPress.Username = "bot"
	cfg.WordPress.AppPassword = "app-pass"
	cfg.Taxonomy.PageDelay = time.Millisecond

	c, err := NewClient(cfg, logger.NewZapLogger("development"))
	require.NoError(t, err)
	return c, srv
}

func termPage(start, count int) []taxonomy.Term {
	terms := make([]taxonomy.Term, count)
	for i := 0; i < count; i++ {
		n := start + i
		terms[i] = taxonomy.Term{ID: n, Name: fmt.Sprintf("Term %d", n), Slug: fmt.Sprintf("term-%d", n)}
	}
	return terms
}

func TestFetchAllTermsPagination(t *testing.T) {
	var requests int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/categories", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot", user)
		assert.Equal(t, "app-pass", pass)

		requests++
		// 250 items: pages of 100, 100, 50
		switch r.URL.Query().Get("page") {
		case "1":
			json.NewEncoder(w).Encode(termPage(1, 100))
		case "2":
			json.NewEncoder(w).Encode(termPage(101, 100))
		case "3":
			json.NewEncoder(w).Encode(termPage(201, 50))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	c, _ := newTestClient(t, handler)
	ix, err := c.FetchAllTerms(context.Background(), taxonomy.KindCategories)
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	for i := 1; i <= 250; i++ {
		assert.Equal(t, i, ix[fmt.Sprintf("term %d", i)])
	}
}

func TestFetchAllTermsEmptyFirstPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]taxonomy.Term{})
	})

	c, _ := newTestClient(t, handler)
	ix, err := c.FetchAllTerms(context.Background(), taxonomy.KindTags)
	require.NoError(t, err)
	assert.Empty(t, ix)
}

func TestFetchAllTermsPartialFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(termPage(1, 100))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})

	c, _ := newTestClient(t, handler)
	ix, err := c.FetchAllTerms(context.Background(), taxonomy.KindTags)
	require.NoError(t, err)

	// page 1 survives, the interruption is not an error
	assert.Equal(t, 1, ix["term 1"])
	assert.Equal(t, 100, ix["term 100"])
	_, ok := ix["term 101"]
	assert.False(t, ok)
}

func TestFetchAllTermsFirstPageFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"code": "rest_cannot_read", "message": "Sorry"})
	})

	c, _ := newTestClient(t, handler)
	ix, err := c.FetchAllTerms(context.Background(), taxonomy.KindCategories)
	assert.Error(t, err)
	assert.Empty(t, ix)
}

func TestFetchAllTermsSkipsMalformedItems(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Cats &amp; Dogs", "slug": "cats-dogs"},
			{"id": 2, "name": nil},
			{"name": "No ID"},
		})
	})

	c, _ := newTestClient(t, handler)
	ix, err := c.FetchAllTerms(context.Background(), taxonomy.KindCategories)
	require.NoError(t, err)

	// normalized name, raw lower-cased name, slug; malformed items dropped
	assert.Equal(t, 1, ix["cats & dogs"])
	assert.Equal(t, 1, ix["cats &amp; dogs"])
	assert.Equal(t, 1, ix["cats-dogs"])
	assert.Len(t, ix, 3)
}
