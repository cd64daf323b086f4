package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haanhpham/autopress/internal/application/service"
	taxonomyUC "github.com/haanhpham/autopress/internal/application/usecase/taxonomy"
	"github.com/haanhpham/autopress/internal/domain/article"
	"github.com/haanhpham/autopress/internal/domain/job"
	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

// TaxonomyReconciler maps requested names to term IDs; see the taxonomy
// use case for the full semantics.
type TaxonomyReconciler interface {
	Execute(ctx context.Context, input taxonomyUC.ReconcileInput) (*taxonomy.ResolutionResult, error)
}

// ComposePostUseCase is the worker-side pipeline for one publish job:
// generate the article, reconcile taxonomy names, attach the featured image,
// push the post to WordPress and record the outcome on the job row.
type ComposePostUseCase struct {
	jobRepo    job.Repository
	generator  service.ContentGenerator
	reconciler TaxonomyReconciler
	publisher  service.Publisher
	images     service.ImageProvider
	logger     logger.Logger
}

// NewComposePostUseCase wires the pipeline. images may be nil when no image
// backend is configured; image requests are then skipped with a warning.
func NewComposePostUseCase(
	repo job.Repository,
	generator service.ContentGenerator,
	reconciler TaxonomyReconciler,
	publisher service.Publisher,
	images service.ImageProvider,
	log logger.Logger,
) *ComposePostUseCase {
	return &ComposePostUseCase{
		jobRepo:    repo,
		generator:  generator,
		reconciler: reconciler,
		publisher:  publisher,
		images:     images,
		logger:     log,
	}
}

func (uc *ComposePostUseCase) Execute(ctx context.Context, jobID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "Compose")
	defer span.End()

	j, err := uc.loadPending(ctx, jobID)
	if err != nil || j == nil {
		return err
	}

	j.Status = job.StatusProcessing
	if err := uc.jobRepo.Update(ctx, j); err != nil {
		return fmt.Errorf("mark job processing failed: %w", err)
	}

	req := j.Request
	a := article.Article{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
	categoryNames := req.CategoryNames
	tagNames := req.TagNames

	if req.Generate || req.Content == "" {
		generated, err := uc.generator.GenerateArticle(ctx, service.ArticleBrief{
			Topic: req.Topic,
			Title: req.Title,
		})
		if err != nil {
			span.RecordError(err)
			return uc.failJob(ctx, j, fmt.Errorf("content generation failed: %w", err))
		}
		if a.Title == "" {
			a.Title = generated.Title
		}
		a.Content = generated.Content
		a.Excerpt = generated.Excerpt
		categoryNames = append(categoryNames, generated.CategoryNames...)
		tagNames = append(tagNames, generated.TagNames...)
	}

	resolution, err := uc.reconciler.Execute(ctx, taxonomyUC.ReconcileInput{
		CategoryNames: categoryNames,
		TagNames:      tagNames,
	})
	if err != nil {
		// site unreachable: publishing would fail the same way
		span.RecordError(err)
		return uc.failJob(ctx, j, fmt.Errorf("taxonomy reconciliation failed: %w", err))
	}
	a.CategoryIDs = resolution.CategoryIDs
	a.TagIDs = resolution.TagIDs

	if req.ImageURL != "" {
		uc.attachImage(ctx, j, req.ImageURL, &a)
	}

	published, err := uc.publisher.PublishPost(ctx, a)
	if err != nil {
		span.RecordError(err)
		return uc.failJob(ctx, j, fmt.Errorf("publish post failed: %w", err))
	}

	j.Status = job.StatusPublished
	j.ErrorText = ""
	j.Result = &job.Result{
		PostID:              published.ID,
		Link:                published.Link,
		CategoryIDs:         resolution.CategoryIDs,
		TagIDs:              resolution.TagIDs,
		UnmatchedCategories: resolution.UnmatchedCategories,
	}
	if err := uc.jobRepo.Update(ctx, j); err != nil {
		return fmt.Errorf("record published job failed: %w", err)
	}

	uc.logger.Info("Published post",
		zap.String("job_id", j.ID.String()),
		zap.Int("post_id", published.ID),
		zap.Ints("category_ids", resolution.CategoryIDs),
		zap.Ints("tag_ids", resolution.TagIDs))
	return nil
}

func (uc *ComposePostUseCase) loadPending(ctx context.Context, jobID uuid.UUID) (*job.PublishJob, error) {
	j, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			uc.logger.Warn("Job not found, skip", zap.String("job_id", jobID.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("get job failed: %w", err)
	}

	if j.Status != job.StatusPending {
		uc.logger.Info("Job status != 'pending' (processed?), skip", zap.String("job_id", jobID.String()), zap.String("status", string(j.Status)))
		return nil, nil
	}
	return j, nil
}

// attachImage is best effort: a missing image degrades the post, it never
// fails the job.
func (uc *ComposePostUseCase) attachImage(ctx context.Context, j *job.PublishJob, srcURL string, a *article.Article) {
	if uc.images == nil {
		uc.logger.Warn("image requested but no image backend configured, skip", zap.String("job_id", j.ID.String()))
		return
	}

	hosted, err := uc.images.Attach(ctx, srcURL, j.ID.String())
	if err != nil {
		uc.logger.Warn("attach image failed, publish without it", zap.String("job_id", j.ID.String()), zap.Error(err))
		return
	}

	a.FeaturedImageURL = hosted
	a.Content = fmt.Sprintf("<figure class=\"featured-image\"><img src=%q alt=%q /></figure>\n%s", hosted, a.Title, a.Content)
}

func (uc *ComposePostUseCase) failJob(ctx context.Context, j *job.PublishJob, cause error) error {
	j.Status = job.StatusFailed
	j.ErrorText = cause.Error()
	if err := uc.jobRepo.Update(ctx, j); err != nil {
		uc.logger.Error("Failed to record job failure", err, zap.String("job_id", j.ID.String()))
	}
	return cause
}
