package checkoutservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/settlement"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error)
}

type BidRepo interface {
	FindByID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Bid, error)
}

type RequestRepo interface {
	FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error)
}

type CheckoutRepo interface {
	Upsert(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Checkout, error)
}

type Service struct {
	txManager    pg.TXManager
	orderRepo    OrderRepo
	bidRepo      BidRepo
	requestRepo  RequestRepo
	checkoutRepo CheckoutRepo
	policy       pricing.InsurancePolicy
}

func New(txManager pg.TXManager, orderRepo OrderRepo, bidRepo BidRepo, requestRepo RequestRepo, checkoutRepo CheckoutRepo, policy pricing.InsurancePolicy) *Service {
	return &Service{
		txManager:    txManager,
		orderRepo:    orderRepo,
		bidRepo:      bidRepo,
		requestRepo:  requestRepo,
		checkoutRepo: checkoutRepo,
		policy:       policy,
	}
}

var (
	ErrCheckoutNotVisible = fmt.Errorf("%w: checkout", domain.ErrNotFoundOrForbidden)
	ErrCheckoutNotFound   = fmt.Errorf("%w: checkout", domain.ErrNotFound)
)

// View is the customer-facing checkout: the persisted row plus the price breakdown.
type View struct {
	Checkout *domain.Checkout
	Costs    domain.Costs
	Quote    pricing.Quote
	Split    pricing.Split
}

// ComputeAndPersist prices the order of requesterEmail and upserts its checkout
// row. Repeated calls with unchanged inputs rewrite the same amounts.
func (s *Service) ComputeAndPersist(ctx context.Context, orderID, requesterEmail string) (*View, error) {
	ctx, span := tracing.StartSpan(ctx, "checkoutservice.ComputeAndPersist")
	defer span.End()

	var view View
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.FindByID(ctx, orderID, true)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrCheckoutNotVisible
		}
		req, err := s.requestRepo.FindByKey(ctx, order.RequestType, order.RequestID, false)
		if err != nil {
			return err
		}
		if req == nil || auth.NormalizeEmail(req.RequesterEmail) != auth.NormalizeEmail(requesterEmail) {
			zap.L().Info("checkout requested by non-owner", zap.String("order_id", orderID))
			return ErrCheckoutNotVisible
		}
		bid, err := s.bidRepo.FindByID(ctx, order.BidID, false)
		if err != nil {
			return err
		}
		if bid == nil {
			return fmt.Errorf("%w: order %s has no bid %d", domain.ErrInvariant, orderID, order.BidID)
		}

		quote := settlement.Quote(bid, order.Commission, req, s.policy)
		checkout, err := settlement.Checkout(orderID, quote, order.PaymentStatus)
		if err != nil {
			zap.L().Error("checkout invariant violated", zap.String("order_id", orderID), zap.Error(err))
			return err
		}
		saved, err := s.checkoutRepo.Upsert(ctx, checkout)
		if err != nil {
			return err
		}
		view = View{
			Checkout: saved,
			Costs:    bid.Costs,
			Quote:    quote,
			Split:    settlement.AmountDue(quote, order.PaymentStatus),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CheckoutsComputedTotal.Inc()
	return &view, nil
}

// GetCheckout returns the persisted row without recomputing it.
func (s *Service) GetCheckout(ctx context.Context, orderID string) (*domain.Checkout, error) {
	checkout, err := s.checkoutRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get checkout", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	if checkout == nil {
		return nil, ErrCheckoutNotFound
	}
	return checkout, nil
}
