package article

import "errors"

var ErrEmptyArticle = errors.New("article has no title or content")

// Article is a fully assembled post, ready to be pushed to WordPress.
type Article struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	Excerpt          string `json:"excerpt,omitempty"`
	Status           string `json:"status"`
	CategoryIDs      []int  `json:"category_ids"`
	TagIDs           []int  `json:"tag_ids"`
	FeaturedImageURL string `json:"featured_image_url,omitempty"`
}

func (a *Article) Validate() error {
	if a.Title == "" && a.Content == "" {
		return ErrEmptyArticle
	}
	return nil
}
