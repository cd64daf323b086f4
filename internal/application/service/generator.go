package service

import "context"

// ArticleBrief is the input handed to the text-generation backend.
type ArticleBrief struct {
	Topic string
	Title string
}

// GeneratedArticle is the structured output of one generation call. The
// model may suggest its own category and tag names; those go through the
// same taxonomy reconciliation as caller-supplied names.
type GeneratedArticle struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	CategoryNames []string `json:"categories"`
	TagNames      []string `json:"tags"`
}

type ContentGenerator interface {
	GenerateArticle(ctx context.Context, brief ArticleBrief) (*GeneratedArticle, error)
}
