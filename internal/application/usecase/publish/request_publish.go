package publish

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/haanhpham/autopress/adapters/event"
	"github.com/haanhpham/autopress/internal/domain/job"
	"github.com/haanhpham/autopress/pkg/apperror"
	"github.com/haanhpham/autopress/pkg/logger"
)

var tracer = otel.Tracer("publish_usecase")

// JobEventPublisher hands the job id to the worker pipeline.
type JobEventPublisher interface {
	PublishJobEvent(ctx context.Context, payload event.PublishJobPayload) error
}

type RequestPublishUseCase struct {
	jobRepo job.Repository
	events  JobEventPublisher
	logger  logger.Logger
}

func NewRequestPublishUseCase(repo job.Repository, events JobEventPublisher, log logger.Logger) *RequestPublishUseCase {
	return &RequestPublishUseCase{
		jobRepo: repo,
		events:  events,
		logger:  log,
	}
}

type RequestPublishOutput struct {
	JobID uuid.UUID
}

// Execute records the publish order and kicks the async pipeline. The post
// itself is assembled later by the worker.
func (uc *RequestPublishUseCase) Execute(ctx context.Context, req job.Request) (*RequestPublishOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if req.Topic == "" && req.Title == "" && req.Content == "" {
		return nil, apperror.NewInvalidInput("one of 'topic', 'title' or 'content' is required", nil)
	}

	now := time.Now().UTC()
	j := &job.PublishJob{
		ID:        uuid.New(),
		Status:    job.StatusPending,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.jobRepo.Save(ctx, j); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save publish job", err)
	}

	go func() {
		err := uc.events.PublishJobEvent(context.Background(), event.PublishJobPayload{
			EventType: event.JobEventTypeRequested,
			JobID:     j.ID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'requested' event", err, zap.String("job_id", j.ID.String()))
		}
	}()

	span.SetAttributes(attribute.String("job_id", j.ID.String()))
	return &RequestPublishOutput{JobID: j.ID}, nil
}
