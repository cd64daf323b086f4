package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/haanhpham/autopress/internal/application/service"
	"github.com/haanhpham/autopress/internal/config"
	"github.com/haanhpham/autopress/pkg/logger"
)

const articlePrompt = `You are a blog writer. Write a complete blog post about the topic below.
Respond with a single JSON object and nothing else, using exactly these keys:
{"title": string, "content": string (HTML body), "excerpt": string (1-2 sentences),
"categories": array of 1-2 short category names, "tags": array of 3-6 short tag names}

Topic: %s`

type openAIAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewOpenAIAdapter(cfg config.Config, log logger.Logger) (service.ContentGenerator, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api_key has not config")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}

	client := openai.NewClientWithConfig(clientConfig)

	log.Info("OpenAI (LLM) Adapter initialized")
	return &openAIAdapter{client: client, model: cfg.OpenAI.Model, log: log}, nil
}

func (a *openAIAdapter) GenerateArticle(ctx context.Context, brief service.ArticleBrief) (*service.GeneratedArticle, error) {
	topic := brief.Topic
	if topic == "" {
		topic = brief.Title
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(articlePrompt, topic),
			},
		},
	}

	resp, err := a.createWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no chat choices")
	}

	var generated service.GeneratedArticle
	raw := repairJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	if generated.Title == "" && generated.Content == "" {
		return nil, fmt.Errorf("model output has no title and no content")
	}
	return &generated, nil
}

// createWithRetry retries once after a rate-limit response.
func (a *openAIAdapter) createWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err == nil || !isRateLimited(err) {
		return resp, err
	}

	a.log.Warn("rate limited by model API, retry once")
	select {
	case <-ctx.Done():
		return resp, ctx.Err()
	case <-time.After(5 * time.Second):
	}
	return a.client.CreateChatCompletion(ctx, req)
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429
	}
	return false
}

// repairJSON peels the markdown code fences models wrap JSON in and trims
// chatter outside the outermost object.
func repairJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
