package wordpress

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haanhpham/autopress/internal/application/service"
	"github.com/haanhpham/autopress/internal/domain/article"
)

type createPostBody struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt,omitempty"`
	Status     string `json:"status"`
	Categories []int  `json:"categories,omitempty"`
	Tags       []int  `json:"tags,omitempty"`
}

type createPostResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// PublishPost pushes an assembled article to the posts endpoint.
func (c *Client) PublishPost(ctx context.Context, a article.Article) (*service.PublishedPost, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	status := a.Status
	if status == "" {
		status = "draft"
	}

	body := createPostBody{
		Title:      a.Title,
		Content:    a.Content,
		Excerpt:    a.Excerpt,
		Status:     status,
		Categories: a.CategoryIDs,
		Tags:       a.TagIDs,
	}

	var resp createPostResponse
	if err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/posts", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("create post failed: %w", err)
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("create post returned no id")
	}

	return &service.PublishedPost{ID: resp.ID, Link: resp.Link}, nil
}
