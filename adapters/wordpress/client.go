package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/haanhpham/autopress/internal/config"
	"github.com/haanhpham/autopress/pkg/logger"
)

// Client talks to one WordPress site's REST API (wp-json/wp/v2) using an
// application password over basic auth. It implements taxonomy.Lister,
// taxonomy.Creator and service.Publisher.
type Client struct {
	siteURL     string
	username    string
	appPassword string
	httpc       *http.Client
	pageDelay   time.Duration
	log         logger.Logger
}

func NewClient(cfg config.Config, log logger.Logger) (*Client, error) {
	if cfg.WordPress.SiteURL == "" {
		return nil, fmt.Errorf("wordpress site_url has not config")
	}

	return &Client{
		siteURL:     strings.TrimRight(cfg.WordPress.SiteURL, "/"),
		username:    cfg.WordPress.Username,
		appPassword: cfg.WordPress.AppPassword,
		httpc:       &http.Client{Timeout: 30 * time.Second},
		pageDelay:   cfg.Taxonomy.PageDelay,
		log:         log,
	}, nil
}

// SiteURL returns the normalized base URL; taxonomy caches key by it.
func (c *Client) SiteURL() string {
	return c.siteURL
}

type apiError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wordpress api error (HTTP %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("wordpress api error (HTTP %d)", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.siteURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.SetBasicAuth(c.username, c.appPassword)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{StatusCode: resp.StatusCode}
		// WP error bodies carry code/message; ignore decode failures.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response of %s %s failed: %w", method, path, err)
		}
	}
	return nil
}
