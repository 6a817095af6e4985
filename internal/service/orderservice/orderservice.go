package orderservice

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/internal/notify"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/settlement"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BidRepo interface {
	FindByID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Bid, error)
	UpdateStatus(ctx context.Context, bidID int64, from, to domain.BidStatus, orderID *string) (bool, error)
	RejectOtherPending(ctx context.Context, requestType domain.RequestType, requestID, keepID int64) (int64, error)
}

type RequestRepo interface {
	FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error)
	MarkAwarded(ctx context.Context, requestType domain.RequestType, requestID int64) (bool, error)
}

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error)
	FindByBidID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Order, error)
	CompareAndSetOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
	SetCustomerRejected(ctx context.Context, orderID string, at time.Time) (bool, error)
}

type CheckoutRepo interface {
	Upsert(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error)
}

type PinRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.CustomerPIN, error)
	Save(ctx context.Context, email, pinHash string) error
}

type Limiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

type Deps struct {
	TxManager    pg.TXManager
	BidRepo      BidRepo
	RequestRepo  RequestRepo
	OrderRepo    OrderRepo
	CheckoutRepo CheckoutRepo
	PinRepo      PinRepo
	Hash         auth.HashServiceInterface
	Limiter      Limiter
	Notifier     Notifier
}

type Options struct {
	EscrowHoldDays    int
	InsurancePolicy   pricing.InsurancePolicy
	OperatorMailboxID int64
}

type Service struct {
	Deps
	opts Options
	now  func() time.Time
}

func New(deps Deps, opts Options) *Service {
	return &Service{
		Deps: deps,
		opts: opts,
		now:  time.Now,
	}
}

var (
	ErrBidNotFound        = fmt.Errorf("%w: bid", domain.ErrNotFound)
	ErrOrderNotFound      = fmt.Errorf("%w: order", domain.ErrNotFound)
	ErrRequestNotFound    = fmt.Errorf("%w: request", domain.ErrNotFound)
	ErrOrderNotVisible    = fmt.Errorf("%w: order", domain.ErrNotFoundOrForbidden)
	ErrBidNotPending      = fmt.Errorf("%w: bid is not pending", domain.ErrInvalidState)
	ErrBidNotApproved     = fmt.Errorf("%w: bid is not approved", domain.ErrInvalidState)
	ErrRequestClosed      = fmt.Errorf("%w: request is already awarded", domain.ErrConflict)
	ErrAlreadyRejected    = fmt.Errorf("%w: order is already rejected by the customer", domain.ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: order status transition not allowed", domain.ErrInvalidState)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown order status", domain.ErrValidation)
	ErrInvalidPercentage  = fmt.Errorf("%w: commission percentages must be between 0 and 100", domain.ErrValidation)
	ErrInvalidPinFormat   = fmt.Errorf("%w: PIN must be 4 digits", domain.ErrValidation)
	ErrTooManyPinAttempts = fmt.Errorf("%w: too many incorrect PIN attempts, try again later", domain.ErrTooManyAttempts)
)

var pinFormat = regexp.MustCompile(`^[0-9]{4}$`)

// OrderID derives the human-readable id of the order created from bid.
func OrderID(bid *domain.Bid) string {
	return fmt.Sprintf("%s-%d-%d", bid.RequestType, bid.RequestID, bid.ID)
}

type Approval struct {
	Order    *domain.Order
	Checkout *domain.Checkout
	Quote    pricing.Quote
}

func validCommission(c domain.Commission) bool {
	for _, p := range []decimal.Decimal{c.MovingPricePercentage, c.AdditionalServicePercentage, c.TruckCostPercentage} {
		if !pricing.ValidPercentage(p) {
			return false
		}
	}
	return true
}

// ApproveBid turns a pending bid into an order priced with commission. Competing
// bids are rejected and the request is closed in the same transaction.
func (s *Service) ApproveBid(ctx context.Context, bidID int64, commission domain.Commission) (*Approval, error) {
	ctx, span := tracing.StartSpan(ctx, "orderservice.ApproveBid")
	defer span.End()

	if !validCommission(commission) {
		return nil, ErrInvalidPercentage
	}

	var approval Approval
	var bid *domain.Bid
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		bid, err = s.BidRepo.FindByID(ctx, bidID, true)
		if err != nil {
			return err
		}
		if bid == nil {
			return ErrBidNotFound
		}
		if bid.Status != domain.BidPending {
			return ErrBidNotPending
		}

		req, err := s.RequestRepo.FindByKey(ctx, bid.RequestType, bid.RequestID, true)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRequestNotFound
		}
		if req.Status != domain.RequestOpen {
			return ErrRequestClosed
		}

		quote := settlement.Quote(bid, commission, req, s.opts.InsurancePolicy)
		orderID := OrderID(bid)
		order, err := s.OrderRepo.Create(ctx, &domain.Order{
			OrderID:           orderID,
			BidID:             bid.ID,
			RequestType:       bid.RequestType,
			RequestID:         bid.RequestID,
			SupplierID:        bid.SupplierID,
			FinalPrice:        quote.FinalPrice,
			InsuranceFee:      quote.InsuranceFee,
			Commission:        commission,
			PaymentStatus:     domain.PaymentAwaitingInitial,
			OrderStatus:       domain.OrderPending,
			EscrowReleaseDate: settlement.EscrowReleaseDate(req, s.opts.EscrowHoldDays),
		})
		if err != nil {
			return err
		}

		ok, err := s.BidRepo.UpdateStatus(ctx, bid.ID, domain.BidPending, domain.BidApproved, &orderID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBidNotPending
		}
		rejected, err := s.BidRepo.RejectOtherPending(ctx, bid.RequestType, bid.RequestID, bid.ID)
		if err != nil {
			return err
		}
		ok, err = s.RequestRepo.MarkAwarded(ctx, bid.RequestType, bid.RequestID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRequestClosed
		}

		checkout, err := settlement.Checkout(orderID, quote, domain.PaymentAwaitingInitial)
		if err != nil {
			zap.L().Error("checkout invariant violated on approval", zap.String("order_id", orderID), zap.Error(err))
			return err
		}
		saved, err := s.CheckoutRepo.Upsert(ctx, checkout)
		if err != nil {
			return err
		}

		zap.L().Info("bid approved",
			zap.Int64("bid_id", bid.ID),
			zap.String("order_id", orderID),
			zap.Int64("competing_bids_rejected", rejected),
		)
		approval = Approval{Order: order, Checkout: saved, Quote: quote}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BidsApprovedTotal.Inc()
	s.notify(ctx, notify.Notification{
		RecipientID:   bid.SupplierID,
		RecipientType: notify.RecipientSupplier,
		Template:      notify.TemplateBidApproved,
		Payload:       map[string]any{"bid_id": bid.ID, "order_id": approval.Order.OrderID},
	})
	return &approval, nil
}

// SetPin stores the order-confirmation PIN of email, replacing any previous one.
func (s *Service) SetPin(ctx context.Context, email, pin string) error {
	if !pinFormat.MatchString(pin) {
		return ErrInvalidPinFormat
	}
	hash, err := s.Hash.HashPIN(pin)
	if err != nil {
		zap.L().Error("failed to hash pin", zap.Error(err))
		return err
	}
	return s.PinRepo.Save(ctx, email, hash)
}

// VerifyOrderPin checks pin against the PIN configured by email. Failed attempts
// are counted and locked out once the limit is reached.
func (s *Service) VerifyOrderPin(ctx context.Context, email, pin string) error {
	allowed, err := s.Limiter.Allowed(ctx, email)
	if err != nil {
		zap.L().Error("pin limiter unavailable", zap.Error(err))
		return err
	}
	if !allowed {
		return ErrTooManyPinAttempts
	}

	stored, err := s.PinRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if stored == nil {
		return domain.ErrPinNotConfigured
	}

	if !s.Hash.ComparePIN(stored.PinHash, pin) {
		metrics.PinFailuresTotal.Inc()
		if err := s.Limiter.Fail(ctx, email); err != nil {
			zap.L().Error("failed to record pin attempt", zap.Error(err))
		}
		return domain.ErrPinIncorrect
	}
	if err := s.Limiter.Reset(ctx, email); err != nil {
		zap.L().Warn("failed to reset pin attempts", zap.Error(err))
	}
	return nil
}

// UpdateStatusByCustomer applies a customer-requested transition after the PIN
// check. Orders of other customers are reported as not found.
func (s *Service) UpdateStatusByCustomer(ctx context.Context, email, orderID, pin string, to domain.OrderStatus) (*domain.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "orderservice.UpdateStatusByCustomer")
	defer span.End()

	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.VerifyOrderPin(ctx, email, pin); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.findOwnedOrder(ctx, email, orderID)
		if err != nil {
			return err
		}
		return s.transition(ctx, order, to)
	})
	if err != nil {
		return nil, err
	}
	s.notifyStatusChange(ctx, order)
	return order, nil
}

func (s *Service) UpdateStatusByOperator(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "orderservice.UpdateStatusByOperator")
	defer span.End()

	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	var order *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.OrderRepo.FindByID(ctx, orderID, true)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		return s.transition(ctx, order, to)
	})
	if err != nil {
		return nil, err
	}
	s.notifyStatusChange(ctx, order)
	return order, nil
}

// findOwnedOrder locks the order and checks that email owns its request.
func (s *Service) findOwnedOrder(ctx context.Context, email, orderID string) (*domain.Order, error) {
	order, err := s.OrderRepo.FindByID(ctx, orderID, true)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotVisible
	}
	if err := s.checkOwner(ctx, email, order.RequestType, order.RequestID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) checkOwner(ctx context.Context, email string, requestType domain.RequestType, requestID int64) error {
	req, err := s.RequestRepo.FindByKey(ctx, requestType, requestID, false)
	if err != nil {
		return err
	}
	if req == nil || auth.NormalizeEmail(req.RequesterEmail) != auth.NormalizeEmail(email) {
		zap.L().Info("request owner mismatch", zap.String("request_type", string(requestType)), zap.Int64("request_id", requestID))
		return ErrOrderNotVisible
	}
	return nil
}

func (s *Service) transition(ctx context.Context, order *domain.Order, to domain.OrderStatus) error {
	from := order.OrderStatus
	if !domain.CanTransitionOrder(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	ok, err := s.OrderRepo.CompareAndSetOrderStatus(ctx, order.OrderID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	order.OrderStatus = to
	zap.L().Info("order status changed",
		zap.String("order_id", order.OrderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

// CustomerReject flags the approved bid as rejected by the owner of its
// request and tells the supplier and the operator mailbox.
func (s *Service) CustomerReject(ctx context.Context, email string, bidID int64) (*domain.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "orderservice.CustomerReject")
	defer span.End()

	var order *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		bid, err := s.BidRepo.FindByID(ctx, bidID, false)
		if err != nil {
			return err
		}
		if bid == nil {
			return ErrOrderNotVisible
		}
		if err := s.checkOwner(ctx, email, bid.RequestType, bid.RequestID); err != nil {
			return err
		}
		if bid.Status != domain.BidApproved {
			return ErrBidNotApproved
		}
		order, err = s.OrderRepo.FindByBidID(ctx, bidID, true)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotVisible
		}

		at := s.now().UTC()
		ok, err := s.OrderRepo.SetCustomerRejected(ctx, order.OrderID, at)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyRejected
		}
		order.CustomerRejected = true
		order.CustomerRejectedAt = &at
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order rejected by customer", zap.String("order_id", order.OrderID))
	payload := map[string]any{"bid_id": bidID, "order_id": order.OrderID}
	s.notify(ctx, notify.Notification{
		RecipientID:   order.SupplierID,
		RecipientType: notify.RecipientSupplier,
		Template:      notify.TemplateCustomerRejected,
		Payload:       payload,
	})
	s.notify(ctx, notify.Notification{
		RecipientID:   s.opts.OperatorMailboxID,
		RecipientType: notify.RecipientOperator,
		Template:      notify.TemplateCustomerRejected,
		Payload:       payload,
	})
	return order, nil
}

type Escrow struct {
	OrderID       string
	PaymentStatus domain.PaymentStatus
	ReleaseDate   time.Time
	Releasable    bool
}

func (s *Service) EscrowStatus(ctx context.Context, orderID string) (*Escrow, error) {
	order, err := s.OrderRepo.FindByID(ctx, orderID, false)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return &Escrow{
		OrderID:       order.OrderID,
		PaymentStatus: order.PaymentStatus,
		ReleaseDate:   order.EscrowReleaseDate,
		Releasable:    settlement.Releasable(order, s.now()),
	}, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, order *domain.Order) {
	s.notify(ctx, notify.Notification{
		RecipientID:   order.SupplierID,
		RecipientType: notify.RecipientSupplier,
		Template:      notify.TemplateOrderStatusChange,
		Payload:       map[string]any{"order_id": order.OrderID, "order_status": order.OrderStatus},
	})
}

// notify delivers n best-effort; delivery failures never fail the operation.
func (s *Service) notify(ctx context.Context, n notify.Notification) {
	if err := s.Notifier.Notify(ctx, n); err != nil {
		zap.L().Error("failed to send notification",
			zap.String("template", n.Template),
			zap.Int64("recipient_id", n.RecipientID),
			zap.Error(err),
		)
	}
}
