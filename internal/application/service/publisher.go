package service

import (
	"context"

	"github.com/haanhpham/autopress/internal/domain/article"
)

// PublishedPost identifies the post WordPress created.
type PublishedPost struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

type Publisher interface {
	PublishPost(ctx context.Context, a article.Article) (*PublishedPost, error)
}
