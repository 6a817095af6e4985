package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/gateway"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/internal/notify"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/settlement"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinAmountMinorUnits is the smallest charge the gateway accepts.
const MinAmountMinorUnits = 50

// UnconfirmedChargeGrace is how long a charge the gateway has no record of is
// left processing before it is treated as never created.
const UnconfirmedChargeGrace = 2 * time.Minute

type Gateway interface {
	Currency() string
	CreateIntent(ctx context.Context, req gateway.CreateIntentRequest) (gateway.Intent, error)
	GetIntent(ctx context.Context, intentID string) (gateway.Intent, error)
	FindIntentByKey(ctx context.Context, idempotencyKey string) (gateway.Intent, error)
	VerifySignature(payload []byte, signature string) error
}

type OrderRepo interface {
	FindByID(ctx context.Context, orderID string, forUpdate bool) (*domain.Order, error)
	FindByBidID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Order, error)
	FindByPaymentIntent(ctx context.Context, intentID string, forUpdate bool) (*domain.Order, error)
	CompareAndSetPaymentStatus(ctx context.Context, orderID string, from, to domain.PaymentStatus) (bool, error)
	SetPaymentIntent(ctx context.Context, orderID, intentID string) error
	FindStaleProcessing(ctx context.Context, before time.Time, limit uint32) ([]domain.Order, error)
}

type BidRepo interface {
	FindByID(ctx context.Context, bidID int64, forUpdate bool) (*domain.Bid, error)
}

type RequestRepo interface {
	FindByKey(ctx context.Context, requestType domain.RequestType, requestID int64, forUpdate bool) (*domain.Request, error)
}

type CheckoutRepo interface {
	Upsert(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error)
}

type PaymentRepo interface {
	CreateIntent(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error)
	AttachGatewayIntent(ctx context.Context, id int64, gatewayIntentID string, status domain.IntentStatus) error
	UpdateStatus(ctx context.Context, id int64, status domain.IntentStatus) error
	FindByGatewayID(ctx context.Context, gatewayIntentID string) (*domain.PaymentIntent, error)
	FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.PaymentIntent, error)
	FindLatestByOrder(ctx context.Context, orderID string) (*domain.PaymentIntent, error)
	MarkEventProcessed(ctx context.Context, eventID string) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

type Deps struct {
	TxManager    pg.TXManager
	Gateway      Gateway
	OrderRepo    OrderRepo
	BidRepo      BidRepo
	RequestRepo  RequestRepo
	CheckoutRepo CheckoutRepo
	PaymentRepo  PaymentRepo
	Notifier     Notifier
}

type Service struct {
	Deps
	policy pricing.InsurancePolicy
	newKey func() string
	now    func() time.Time
}

func New(deps Deps, policy pricing.InsurancePolicy) *Service {
	return &Service{
		Deps:   deps,
		policy: policy,
		newKey: uuid.NewString,
		now:    time.Now,
	}
}

var (
	ErrBidNotFound       = fmt.Errorf("%w: bid", domain.ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("%w: no order for bid", domain.ErrNotFound)
	ErrNotPayable        = fmt.Errorf("%w: payment is not awaiting a charge", domain.ErrInvalidState)
	ErrNoGatewayIntent   = fmt.Errorf("%w: order has no gateway intent yet", domain.ErrInvalidState)
	ErrIntentNotAttached = fmt.Errorf("%w: gateway intent is not attached to an order yet", domain.ErrConflict)
	ErrPayerMismatch     = fmt.Errorf("%w: payer email does not match the request owner", domain.ErrOwnershipMismatch)
	ErrMissingMethodRef  = fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	ErrNotRequestedOwner = fmt.Errorf("%w: caller does not own the request", domain.ErrOwnershipMismatch)
)

type InitiateInput struct {
	BidID            int64
	PayerEmail       string
	PaymentMethodRef string
	// CallerEmail is the authenticated identity, never a client-supplied field.
	CallerEmail string
}

// Initiation is the client-facing handle of a started charge.
type Initiation struct {
	OrderID          string
	IntentID         string
	ClientSecret     string
	AmountMinorUnits int64
	Currency         string
	PaymentStatus    domain.PaymentStatus
}

type pendingCharge struct {
	order  *domain.Order
	intent *domain.PaymentIntent
}

// Initiate charges the amount currently due on the order of bidID. The order
// moves to processing before the gateway is called and stays there if the
// gateway cannot be reached.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (*Initiation, error) {
	ctx, span := tracing.StartSpan(ctx, "paymentservice.Initiate")
	defer span.End()

	if in.PaymentMethodRef == "" {
		return nil, ErrMissingMethodRef
	}

	var charge pendingCharge
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		bid, err := s.BidRepo.FindByID(ctx, in.BidID, false)
		if err != nil {
			return err
		}
		if bid == nil {
			return ErrBidNotFound
		}
		order, err := s.OrderRepo.FindByBidID(ctx, in.BidID, true)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotPayable
		}
		req, err := s.RequestRepo.FindByKey(ctx, order.RequestType, order.RequestID, false)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("%w: order %s has no request", domain.ErrInvariant, order.OrderID)
		}
		owner := auth.NormalizeEmail(req.RequesterEmail)
		if owner != auth.NormalizeEmail(in.CallerEmail) {
			return ErrNotRequestedOwner
		}
		if owner != auth.NormalizeEmail(in.PayerEmail) {
			return ErrPayerMismatch
		}
		if !order.PaymentStatus.Chargeable() {
			return fmt.Errorf("%w: %s", ErrNotPayable, order.PaymentStatus)
		}

		quote := settlement.Quote(bid, order.Commission, req, s.policy)
		amount := pricing.MinorUnits(settlement.AmountDue(quote, order.PaymentStatus).AmountToPay)
		if amount < MinAmountMinorUnits {
			return fmt.Errorf("%w: %d minor units", domain.ErrAmountTooSmall, amount)
		}

		if err := s.setPaymentStatus(ctx, order, domain.PaymentProcessing); err != nil {
			return err
		}
		intent, err := s.PaymentRepo.CreateIntent(ctx, &domain.PaymentIntent{
			OrderID:          order.OrderID,
			IdempotencyKey:   s.newKey(),
			AmountMinorUnits: amount,
			Currency:         s.Gateway.Currency(),
			Status:           domain.IntentCreated,
		})
		if err != nil {
			return err
		}
		charge = pendingCharge{order: order, intent: intent}
		return nil
	})
	if err != nil {
		return nil, err
	}

	gwIntent, err := s.Gateway.CreateIntent(ctx, gateway.CreateIntentRequest{
		OrderID:          charge.order.OrderID,
		AmountMinorUnits: charge.intent.AmountMinorUnits,
		PaymentMethodRef: in.PaymentMethodRef,
		IdempotencyKey:   charge.intent.IdempotencyKey,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrCardDeclined) {
			s.markDeclined(context.WithoutCancel(ctx), charge, gwIntent.ID)
			return nil, err
		}
		zap.L().Warn("payment left processing after gateway failure",
			zap.String("order_id", charge.order.OrderID),
			zap.String("idempotency_key", charge.intent.IdempotencyKey),
			zap.Error(err),
		)
		return nil, err
	}

	var completed *domain.Order
	err = s.TxManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.OrderRepo.SetPaymentIntent(ctx, charge.order.OrderID, gwIntent.ID); err != nil {
			return err
		}
		if err := s.PaymentRepo.AttachGatewayIntent(ctx, charge.intent.ID, gwIntent.ID, domain.IntentProcessing); err != nil {
			return err
		}
		if gwIntent.Status != gateway.StatusSucceeded {
			return nil
		}
		var err error
		completed, err = s.apply(ctx, gwIntent)
		return err
	})
	if err != nil {
		zap.L().Error("failed to record gateway intent",
			zap.String("order_id", charge.order.OrderID),
			zap.String("gateway_intent_id", gwIntent.ID),
			zap.Error(err),
		)
		return nil, err
	}
	s.notifyCompleted(ctx, completed)

	status := domain.PaymentProcessing
	if completed != nil {
		status = domain.PaymentCompleted
	}
	return &Initiation{
		OrderID:          charge.order.OrderID,
		IntentID:         gwIntent.ID,
		ClientSecret:     gwIntent.ClientSecret,
		AmountMinorUnits: charge.intent.AmountMinorUnits,
		Currency:         charge.intent.Currency,
		PaymentStatus:    status,
	}, nil
}

// markDeclined records a gateway decline. It runs even when the caller has gone away.
func (s *Service) markDeclined(ctx context.Context, charge pendingCharge, gatewayIntentID string) {
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		if gatewayIntentID != "" {
			if err := s.OrderRepo.SetPaymentIntent(ctx, charge.order.OrderID, gatewayIntentID); err != nil {
				return err
			}
			if err := s.PaymentRepo.AttachGatewayIntent(ctx, charge.intent.ID, gatewayIntentID, domain.IntentFailed); err != nil {
				return err
			}
		} else if err := s.PaymentRepo.UpdateStatus(ctx, charge.intent.ID, domain.IntentFailed); err != nil {
			return err
		}
		return s.setPaymentStatus(ctx, charge.order, domain.PaymentFailed)
	})
	if err != nil {
		zap.L().Error("failed to record declined payment", zap.String("order_id", charge.order.OrderID), zap.Error(err))
	}
}

// HandleCallback applies a signed gateway status callback. The status is
// re-read from the gateway and each event id is applied at most once.
func (s *Service) HandleCallback(ctx context.Context, payload []byte, signature string) error {
	ctx, span := tracing.StartSpan(ctx, "paymentservice.HandleCallback")
	defer span.End()

	if err := s.Gateway.VerifySignature(payload, signature); err != nil {
		zap.L().Warn("rejected gateway callback", zap.Error(err))
		return err
	}
	event, err := gateway.ParseEvent(payload)
	if err != nil {
		return err
	}
	intent, err := s.Gateway.GetIntent(ctx, event.IntentID)
	if err != nil {
		return err
	}

	var completed *domain.Order
	err = s.TxManager.Begin(ctx, func(ctx context.Context) error {
		fresh, err := s.PaymentRepo.MarkEventProcessed(ctx, event.ID)
		if err != nil {
			return err
		}
		if !fresh {
			zap.L().Info("gateway event already processed", zap.String("event_id", event.ID))
			return nil
		}
		completed, err = s.apply(ctx, intent)
		return err
	})
	if errors.Is(err, ErrIntentNotAttached) {
		// The event marker is rolled back with the transaction so the gateway redelivers.
		zap.L().Warn("gateway callback for unknown intent, asking for redelivery",
			zap.String("event_id", event.ID),
			zap.String("gateway_intent_id", intent.ID),
		)
		return err
	}
	if err != nil {
		return err
	}
	s.notifyCompleted(ctx, completed)
	return nil
}

// RefreshByBid reconciles the payment of the order created from bidID.
func (s *Service) RefreshByBid(ctx context.Context, bidID int64) (*domain.Order, error) {
	order, err := s.OrderRepo.FindByBidID(ctx, bidID, false)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.Reconcile(ctx, *order)
}

// Reconcile reads the gateway status of the order's intent and applies it. An
// order whose gateway handle was never stored is looked up by the idempotency
// key of its latest charge.
func (s *Service) Reconcile(ctx context.Context, order domain.Order) (*domain.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "paymentservice.Reconcile")
	defer span.End()

	if order.PaymentIntentID != nil {
		intent, err := s.Gateway.GetIntent(ctx, *order.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		return s.settle(ctx, intent)
	}

	local, err := s.PaymentRepo.FindLatestByOrder(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, ErrNoGatewayIntent
	}
	intent, err := s.Gateway.FindIntentByKey(ctx, local.IdempotencyKey)
	if errors.Is(err, gateway.ErrIntentNotFound) {
		return s.abandonCharge(ctx, order, local)
	}
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, intent)
}

// settle applies intent and returns the order it belongs to.
func (s *Service) settle(ctx context.Context, intent gateway.Intent) (*domain.Order, error) {
	var current, completed *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		completed, err = s.apply(ctx, intent)
		if err != nil {
			return err
		}
		current, err = s.OrderRepo.FindByPaymentIntent(ctx, intent.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifyCompleted(ctx, completed)
	return current, nil
}

// abandonCharge fails a processing payment whose charge the gateway never
// created. Young charges are left alone because their create call may still
// be in flight.
func (s *Service) abandonCharge(ctx context.Context, order domain.Order, local *domain.PaymentIntent) (*domain.Order, error) {
	if s.now().Sub(local.CreatedAt) < UnconfirmedChargeGrace {
		return nil, fmt.Errorf("%w: charge %s is not confirmed by the gateway", ErrNoGatewayIntent, local.IdempotencyKey)
	}

	var current *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		fresh, err := s.OrderRepo.FindByID(ctx, order.OrderID, true)
		if err != nil {
			return err
		}
		if fresh == nil {
			return ErrOrderNotFound
		}
		current = fresh
		if fresh.PaymentStatus != domain.PaymentProcessing || fresh.PaymentIntentID != nil {
			return nil
		}
		if err := s.PaymentRepo.UpdateStatus(ctx, local.ID, domain.IntentFailed); err != nil {
			return err
		}
		return s.setPaymentStatus(ctx, fresh, domain.PaymentFailed)
	})
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus == domain.PaymentFailed {
		zap.L().Warn("gateway has no charge for idempotency key, payment failed",
			zap.String("order_id", order.OrderID),
			zap.String("idempotency_key", local.IdempotencyKey),
		)
	}
	return current, nil
}

// StaleProcessing lists orders that have been processing for longer than age.
func (s *Service) StaleProcessing(ctx context.Context, age time.Duration, limit uint32) ([]domain.Order, error) {
	return s.OrderRepo.FindStaleProcessing(ctx, s.now().Add(-age), limit)
}

// apply moves the order of intent to the status the gateway reports. It
// returns the order when this call completed the payment.
func (s *Service) apply(ctx context.Context, intent gateway.Intent) (*domain.Order, error) {
	order, err := s.orderOf(ctx, intent)
	if err != nil || order == nil {
		return nil, err
	}

	var to domain.PaymentStatus
	var intentStatus domain.IntentStatus
	switch intent.Status {
	case gateway.StatusSucceeded:
		to, intentStatus = domain.PaymentCompleted, domain.IntentSucceeded
	case gateway.StatusFailed:
		to, intentStatus = domain.PaymentFailed, domain.IntentFailed
	default:
		return nil, nil
	}

	local, err := s.PaymentRepo.FindByGatewayID(ctx, intent.ID)
	if err != nil {
		return nil, err
	}
	if local != nil && local.Status != intentStatus {
		if err := s.PaymentRepo.UpdateStatus(ctx, local.ID, intentStatus); err != nil {
			return nil, err
		}
	}

	if order.PaymentStatus != domain.PaymentProcessing {
		zap.L().Info("payment transition already applied",
			zap.String("order_id", order.OrderID),
			zap.String("payment_status", string(order.PaymentStatus)),
			zap.String("gateway_status", intent.Status),
		)
		return nil, nil
	}
	if err := s.setPaymentStatus(ctx, order, to); err != nil {
		return nil, err
	}
	if to != domain.PaymentCompleted {
		return nil, nil
	}
	if err := s.refreshCheckout(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// orderOf returns the order intent belongs to, locked for update. An intent
// whose creation response never reached us is matched through its idempotency
// key and attached to the order here. A nil order means the intent was
// superseded by a newer charge.
func (s *Service) orderOf(ctx context.Context, intent gateway.Intent) (*domain.Order, error) {
	order, err := s.OrderRepo.FindByPaymentIntent(ctx, intent.ID, true)
	if err != nil || order != nil {
		return order, err
	}

	key := intent.IdempotencyKey()
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrIntentNotAttached, intent.ID)
	}
	local, err := s.PaymentRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, fmt.Errorf("%w: %s", ErrIntentNotAttached, intent.ID)
	}
	order, err = s.OrderRepo.FindByID(ctx, local.OrderID, true)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: payment intent %d has no order", domain.ErrInvariant, local.ID)
	}
	latest, err := s.PaymentRepo.FindLatestByOrder(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}
	superseded := latest == nil || latest.ID != local.ID ||
		(local.GatewayIntentID != nil && *local.GatewayIntentID != intent.ID)
	if superseded || order.PaymentIntentID != nil || order.PaymentStatus != domain.PaymentProcessing {
		zap.L().Warn("gateway intent superseded by a newer charge",
			zap.String("order_id", order.OrderID),
			zap.String("gateway_intent_id", intent.ID),
		)
		return nil, nil
	}

	if err := s.OrderRepo.SetPaymentIntent(ctx, order.OrderID, intent.ID); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.AttachGatewayIntent(ctx, local.ID, intent.ID, domain.IntentProcessing); err != nil {
		return nil, err
	}
	intentID := intent.ID
	order.PaymentIntentID = &intentID
	zap.L().Info("gateway intent attached by idempotency key",
		zap.String("order_id", order.OrderID),
		zap.String("gateway_intent_id", intent.ID),
	)
	return order, nil
}

// refreshCheckout rewrites the checkout row so it reflects the order's payment status.
func (s *Service) refreshCheckout(ctx context.Context, order *domain.Order) error {
	bid, err := s.BidRepo.FindByID(ctx, order.BidID, false)
	if err != nil {
		return err
	}
	req, err := s.RequestRepo.FindByKey(ctx, order.RequestType, order.RequestID, false)
	if err != nil {
		return err
	}
	if bid == nil || req == nil {
		return fmt.Errorf("%w: order %s lost its bid or request", domain.ErrInvariant, order.OrderID)
	}
	checkout, err := settlement.Checkout(order.OrderID, settlement.Quote(bid, order.Commission, req, s.policy), order.PaymentStatus)
	if err != nil {
		zap.L().Error("checkout invariant violated", zap.String("order_id", order.OrderID), zap.Error(err))
		return err
	}
	_, err = s.CheckoutRepo.Upsert(ctx, checkout)
	return err
}

// setPaymentStatus applies order.PaymentStatus -> to as a compare-and-set.
func (s *Service) setPaymentStatus(ctx context.Context, order *domain.Order, to domain.PaymentStatus) error {
	from := order.PaymentStatus
	if !domain.CanTransitionPayment(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrNotPayable, from, to)
	}
	ok, err := s.OrderRepo.CompareAndSetPaymentStatus(ctx, order.OrderID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s changed concurrently", ErrNotPayable, order.OrderID)
	}
	order.PaymentStatus = to
	metrics.PaymentTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	zap.L().Info("payment status changed",
		zap.String("order_id", order.OrderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

func (s *Service) notifyCompleted(ctx context.Context, order *domain.Order) {
	if order == nil {
		return
	}
	err := s.Notifier.Notify(ctx, notify.Notification{
		RecipientID:   order.SupplierID,
		RecipientType: notify.RecipientSupplier,
		Template:      notify.TemplatePaymentCompleted,
		Payload:       map[string]any{"order_id": order.OrderID},
	})
	if err != nil {
		zap.L().Error("failed to send notification", zap.String("order_id", order.OrderID), zap.Error(err))
	}
}
