package publish

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/haanhpham/autopress/internal/domain/job"
	"github.com/haanhpham/autopress/pkg/apperror"
)

type GetJobUseCase struct {
	jobRepo job.Repository
}

func NewGetJobUseCase(repo job.Repository) *GetJobUseCase {
	return &GetJobUseCase{jobRepo: repo}
}

func (uc *GetJobUseCase) Execute(ctx context.Context, id uuid.UUID) (*job.PublishJob, error) {
	j, err := uc.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return nil, apperror.NewNotFound("publish job", id.String())
		}
		return nil, apperror.NewInternal("failed to load publish job", err)
	}
	return j, nil
}
