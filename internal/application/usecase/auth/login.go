package auth

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/haanhpham/autopress/pkg/apperror"
	"github.com/haanhpham/autopress/pkg/auth"
	"github.com/haanhpham/autopress/pkg/logger"
)

const adminRole = "admin"

// LoginUseCase checks the single admin credential and issues a JWT. There is
// no user table: the service has exactly one operator, configured as a
// bcrypt hash.
type LoginUseCase struct {
	adminPasswordHash string
	jwtSvc            *auth.JWTService
	logger            logger.Logger
}

func NewLoginUseCase(adminPasswordHash string, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		adminPasswordHash: adminPasswordHash,
		jwtSvc:            jwtSvc,
		logger:            log,
	}
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	_, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if uc.adminPasswordHash == "" {
		err := apperror.NewInternal("admin password hash is not configured", nil)
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, uc.adminPasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(adminRole)
	if err != nil {
		uc.logger.Error("Failed to generate token", err)
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	return &LoginOutput{AccessToken: token}, nil
}
