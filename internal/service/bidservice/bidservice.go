package bidservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"go.uber.org/zap"
)

type BidRepo interface {
	Create(ctx context.Context, bid *domain.Bid) (*domain.Bid, error)
	FindByID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Bid, error)
	ListByRequest(ctx context.Context, requestType domain.RequestType, requestID int64) ([]domain.Bid, error)
	UpdateStatus(ctx context.Context, bidID int64, from, to domain.BidStatus, orderID *string) (bool, error)
	Delete(ctx context.Context, bidID, supplierID int64) (bool, error)
}

type RequestRepo interface {
	FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error)
}

type Service struct {
	bidRepo     BidRepo
	requestRepo RequestRepo
}

func New(bidRepo BidRepo, requestRepo RequestRepo) *Service {
	return &Service{
		bidRepo:     bidRepo,
		requestRepo: requestRepo,
	}
}

var (
	ErrBidNotFound     = fmt.Errorf("%w: bid", domain.ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("%w: request", domain.ErrNotFound)
	ErrRequestClosed   = fmt.Errorf("%w: request is no longer open for bids", domain.ErrConflict)
	ErrBidNotPending   = fmt.Errorf("%w: bid is not pending", domain.ErrInvalidState)
	ErrNegativeCost    = fmt.Errorf("%w: costs must not be negative", domain.ErrValidation)
)

type SubmitInput struct {
	RequestType domain.RequestType
	RequestID   int64
	SupplierID  int64
	Costs       domain.Costs
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Bid, error) {
	ctx, span := tracing.StartSpan(ctx, "bidservice.Submit")
	defer span.End()

	if !registry.IsRegistered(in.RequestType) {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownRequestType, in.RequestType)
	}
	if in.Costs.MovingCost.IsNegative() || in.Costs.TruckCost.IsNegative() || in.Costs.AdditionalServicesCost.IsNegative() {
		return nil, ErrNegativeCost
	}

	req, err := s.requestRepo.FindByKey(ctx, in.RequestType, in.RequestID, false)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != domain.RequestOpen {
		return nil, ErrRequestClosed
	}

	bid, err := s.bidRepo.Create(ctx, &domain.Bid{
		RequestType: in.RequestType,
		RequestID:   in.RequestID,
		SupplierID:  in.SupplierID,
		Costs: domain.Costs{
			MovingCost:             in.Costs.MovingCost.Round(2),
			TruckCost:              in.Costs.TruckCost.Round(2),
			AdditionalServicesCost: in.Costs.AdditionalServicesCost.Round(2),
		},
	})
	if err != nil {
		return nil, err
	}
	metrics.BidsSubmittedTotal.Inc()
	zap.L().Info("bid submitted", zap.Int64("bid_id", bid.ID), zap.Int64("supplier_id", bid.SupplierID))
	return bid, nil
}

// List returns the bids of a request oldest first.
func (s *Service) List(ctx context.Context, requestType domain.RequestType, requestID int64) ([]domain.Bid, error) {
	if !registry.IsRegistered(requestType) {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownRequestType, requestType)
	}
	bids, err := s.bidRepo.ListByRequest(ctx, requestType, requestID)
	if err != nil {
		zap.L().Error("failed to list bids", zap.Error(err))
		return nil, err
	}
	return bids, nil
}

// Decline rejects a pending bid.
func (s *Service) Decline(ctx context.Context, bidID int64) error {
	ok, err := s.bidRepo.UpdateStatus(ctx, bidID, domain.BidPending, domain.BidRejected, nil)
	if err != nil {
		return err
	}
	if ok {
		zap.L().Info("bid declined", zap.Int64("bid_id", bidID))
		return nil
	}
	bid, err := s.bidRepo.FindByID(ctx, bidID, false)
	if err != nil {
		return err
	}
	if bid == nil {
		return ErrBidNotFound
	}
	return ErrBidNotPending
}

// Delete removes a pending bid owned by supplierID. Bids of other suppliers
// are reported as not found.
func (s *Service) Delete(ctx context.Context, bidID, supplierID int64) error {
	ok, err := s.bidRepo.Delete(ctx, bidID, supplierID)
	if err != nil {
		return err
	}
	if ok {
		zap.L().Info("bid deleted", zap.Int64("bid_id", bidID))
		return nil
	}
	bid, err := s.bidRepo.FindByID(ctx, bidID, false)
	if err != nil {
		return err
	}
	if bid == nil || bid.SupplierID != supplierID {
		return ErrBidNotFound
	}
	return ErrBidNotPending
}
