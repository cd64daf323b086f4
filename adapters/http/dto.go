package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/haanhpham/autopress/internal/domain/job"
)

// StringList accepts the shapes callers (and models) actually send for name
// lists: a JSON array of strings, a bare string, or null. A bare string is
// treated as a comma separated list. The rest of the service only ever sees
// []string.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("string list must contain only strings: %w", err)
		}
		*s = cleanNames(items)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("string list must be a string or array of strings: %w", err)
	}
	*s = cleanNames(strings.Split(single, ","))
	return nil
}

func cleanNames(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type PublishRequest struct {
	Topic         string     `json:"topic"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	CategoryNames StringList `json:"category_names"`
	TagNames      StringList `json:"tag_names"`
	ImageURL      string     `json:"image_url"`
	Generate      bool       `json:"generate"`
}

func (r *PublishRequest) ToJobRequest() job.Request {
	return job.Request{
		Topic:         r.Topic,
		Title:         r.Title,
		Content:       r.Content,
		Status:        r.Status,
		CategoryNames: r.CategoryNames,
		TagNames:      r.TagNames,
		ImageURL:      r.ImageURL,
		Generate:      r.Generate,
	}
}

type JobResultDTO struct {
	PostID              int      `json:"post_id"`
	Link                string   `json:"link,omitempty"`
	CategoryIDs         []int    `json:"category_ids"`
	TagIDs              []int    `json:"tag_ids"`
	UnmatchedCategories []string `json:"unmatched_categories,omitempty"`
}

type JobDTO struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Result    *JobResultDTO `json:"result,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func ToJobDTO(j *job.PublishJob) JobDTO {
	dto := JobDTO{
		ID:        j.ID.String(),
		Status:    string(j.Status),
		Error:     j.ErrorText,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.Result != nil {
		dto.Result = &JobResultDTO{
			PostID:              j.Result.PostID,
			Link:                j.Result.Link,
			CategoryIDs:         j.Result.CategoryIDs,
			TagIDs:              j.Result.TagIDs,
			UnmatchedCategories: j.Result.UnmatchedCategories,
		}
	}
	return dto
}
