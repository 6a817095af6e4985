package quotationservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"go.uber.org/zap"
)

type Repo interface {
	FindForOwner(ctx context.Context, email string, requestType *domain.RequestType, requestID *int64) (*domain.Request, error)
	ListForOwner(ctx context.Context, email string) ([]domain.Request, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var ErrRequestNotFound = fmt.Errorf("%w: request", domain.ErrNotFoundOrForbidden)

// FindRequestForOwner returns the request of ownerEmail. Without a type every
// registered type is searched; a request owned by someone else is reported as
// not found.
func (s *Service) FindRequestForOwner(ctx context.Context, ownerEmail string, requestType *domain.RequestType, requestID *int64) (*domain.Request, error) {
	ctx, span := tracing.StartSpan(ctx, "quotationservice.FindRequestForOwner")
	defer span.End()

	if ownerEmail == "" {
		return nil, fmt.Errorf("%w: requester email is required", domain.ErrValidation)
	}
	if requestType != nil && !registry.IsRegistered(*requestType) {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownRequestType, *requestType)
	}

	req, err := s.repo.FindForOwner(ctx, ownerEmail, requestType, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		zap.L().Info("request not found for owner", zap.Stringp("request_type", (*string)(requestType)), zap.Int64p("request_id", requestID))
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *Service) ListRequestsForOwner(ctx context.Context, ownerEmail string) ([]domain.Request, error) {
	ctx, span := tracing.StartSpan(ctx, "quotationservice.ListRequestsForOwner")
	defer span.End()

	requests, err := s.repo.ListForOwner(ctx, ownerEmail)
	if err != nil {
		zap.L().Error("failed to list requests", zap.Error(err))
		return nil, err
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	return requests, nil
}
