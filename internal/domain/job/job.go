package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("publish job not found")

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPublished  Status = "published"
	StatusFailed     Status = "failed"
)

// Request is the caller's publish order, stored verbatim on the job row.
// Name lists are already normalized to []string at the HTTP boundary.
type Request struct {
	Topic         string   `json:"topic,omitempty"`
	Title         string   `json:"title,omitempty"`
	Content       string   `json:"content,omitempty"`
	Status        string   `json:"status,omitempty"`
	CategoryNames []string `json:"category_names,omitempty"`
	TagNames      []string `json:"tag_names,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Generate      bool     `json:"generate"`
}

// Result records what actually got published.
type Result struct {
	PostID              int      `json:"post_id"`
	Link                string   `json:"link,omitempty"`
	CategoryIDs         []int    `json:"category_ids"`
	TagIDs              []int    `json:"tag_ids"`
	UnmatchedCategories []string `json:"unmatched_categories,omitempty"`
}

type PublishJob struct {
	ID        uuid.UUID `json:"id"`
	Status    Status    `json:"status"`
	Request   Request   `json:"request"`
	Result    *Result   `json:"result,omitempty"`
	ErrorText string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, j *PublishJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*PublishJob, error)
	Update(ctx context.Context, j *PublishJob) error
}
