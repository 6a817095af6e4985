package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/gateway"
	"github.com/GlebRadaev/movebroker/internal/notify"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

const (
	owner   = "anna@example.se"
	orderID = "private_move-1-5"
	key     = "2b1f9a6e-3f0c-4f43-9d59-8c9a2a0e7d11"
)

type mocks struct {
	gateway   *MockGateway
	orders    *MockOrderRepo
	bids      *MockBidRepo
	requests  *MockRequestRepo
	checkouts *MockCheckoutRepo
	payments  *MockPaymentRepo
	notifier  *MockNotifier
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	tx := pg.NewMockTXManager(ctrl)
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	m := &mocks{
		gateway:   NewMockGateway(ctrl),
		orders:    NewMockOrderRepo(ctrl),
		bids:      NewMockBidRepo(ctrl),
		requests:  NewMockRequestRepo(ctrl),
		checkouts: NewMockCheckoutRepo(ctrl),
		payments:  NewMockPaymentRepo(ctrl),
		notifier:  NewMockNotifier(ctrl),
	}
	m.gateway.EXPECT().Currency().Return("sek").AnyTimes()

	service := New(Deps{
		TxManager:    tx,
		Gateway:      m.gateway,
		OrderRepo:    m.orders,
		BidRepo:      m.bids,
		RequestRepo:  m.requests,
		CheckoutRepo: m.checkouts,
		PaymentRepo:  m.payments,
		Notifier:     m.notifier,
	}, pricing.InsuranceInformational)
	service.newKey = func() string { return key }
	return service, m
}

func strp(v string) *string {
	return &v
}

func bid(moving int64) *domain.Bid {
	return &domain.Bid{
		ID:          5,
		RequestType: registry.PrivateMove,
		RequestID:   1,
		SupplierID:  9,
		Status:      domain.BidApproved,
		Costs: domain.Costs{
			MovingCost:             decimal.NewFromInt(moving),
			TruckCost:              decimal.Zero,
			AdditionalServicesCost: decimal.Zero,
		},
	}
}

func order(status domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		OrderID:       orderID,
		BidID:         5,
		RequestType:   registry.PrivateMove,
		RequestID:     1,
		SupplierID:    9,
		PaymentStatus: status,
	}
}

func request() *domain.Request {
	return &domain.Request{Type: registry.PrivateMove, ID: 1, RequesterEmail: "Anna@Example.se"}
}

func expectLoad(m *mocks, b *domain.Bid, o *domain.Order) {
	m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(b, nil)
	m.orders.EXPECT().FindByBidID(gomock.Any(), int64(5), true).Return(o, nil)
	m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request(), nil)
}

func expectCharge(t *testing.T, m *mocks, from domain.PaymentStatus, amount int64) {
	m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, from, domain.PaymentProcessing).Return(true, nil)
	m.payments.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
			assert.Equal(t, amount, intent.AmountMinorUnits)
			assert.Equal(t, key, intent.IdempotencyKey)
			saved := *intent
			saved.ID = 42
			return &saved, nil
		})
}

func input() InitiateInput {
	return InitiateInput{BidID: 5, PayerEmail: owner, PaymentMethodRef: "pm_card_visa", CallerEmail: owner}
}

func TestInitiate(t *testing.T) {
	tests := []struct {
		name          string
		input         InitiateInput
		prepareMock   func(t *testing.T, m *mocks)
		expected      *Initiation
		expectedError error
	}{
		{
			name:  "Deposit is charged",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
				expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
				m.gateway.EXPECT().CreateIntent(gomock.Any(), gateway.CreateIntentRequest{
					OrderID: orderID, AmountMinorUnits: 20000, PaymentMethodRef: "pm_card_visa", IdempotencyKey: key,
				}).Return(gateway.Intent{ID: "pi_1", ClientSecret: "secret", Status: gateway.StatusProcessing}, nil)
				m.orders.EXPECT().SetPaymentIntent(gomock.Any(), orderID, "pi_1").Return(nil)
				m.payments.EXPECT().AttachGatewayIntent(gomock.Any(), int64(42), "pi_1", domain.IntentProcessing).Return(nil)
			},
			expected: &Initiation{
				OrderID: orderID, IntentID: "pi_1", ClientSecret: "secret",
				AmountMinorUnits: 20000, Currency: "sek", PaymentStatus: domain.PaymentProcessing,
			},
		},
		{
			name:  "Retry after failure charges the deposit again",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentFailed))
				expectCharge(t, m, domain.PaymentFailed, 20000)
				m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
					Return(gateway.Intent{ID: "pi_2", ClientSecret: "secret2", Status: gateway.StatusProcessing}, nil)
				m.orders.EXPECT().SetPaymentIntent(gomock.Any(), orderID, "pi_2").Return(nil)
				m.payments.EXPECT().AttachGatewayIntent(gomock.Any(), int64(42), "pi_2", domain.IntentProcessing).Return(nil)
			},
			expected: &Initiation{
				OrderID: orderID, IntentID: "pi_2", ClientSecret: "secret2",
				AmountMinorUnits: 20000, Currency: "sek", PaymentStatus: domain.PaymentProcessing,
			},
		},
		{
			name:  "Card declined marks the payment failed",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
				expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
				m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
					Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusFailed}, fmt.Errorf("%w: insufficient_funds", gateway.ErrCardDeclined))
				m.orders.EXPECT().SetPaymentIntent(gomock.Any(), orderID, "pi_1").Return(nil)
				m.payments.EXPECT().AttachGatewayIntent(gomock.Any(), int64(42), "pi_1", domain.IntentFailed).Return(nil)
				m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentFailed).Return(true, nil)
			},
			expectedError: domain.ErrPaymentDeclined,
		},
		{
			name:  "Declined without intent handle",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
				expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
				m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(gateway.Intent{}, gateway.ErrCardDeclined)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentFailed).Return(nil)
				m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentFailed).Return(true, nil)
			},
			expectedError: gateway.ErrCardDeclined,
		},
		{
			name:  "Gateway timeout leaves the payment processing",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
				expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
				m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(gateway.Intent{}, gateway.ErrTimeout)
			},
			expectedError: domain.ErrUpstream,
		},
		{
			name:  "Payer is not the request owner",
			input: InitiateInput{BidID: 5, PayerEmail: "bo@example.se", PaymentMethodRef: "pm_card_visa", CallerEmail: owner},
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
			},
			expectedError: ErrPayerMismatch,
		},
		{
			name:  "Caller is not the request owner",
			input: InitiateInput{BidID: 5, PayerEmail: owner, PaymentMethodRef: "pm_card_visa", CallerEmail: "bo@example.se"},
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
			},
			expectedError: domain.ErrOwnershipMismatch,
		},
		{
			name:  "Payment already processing",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentProcessing))
			},
			expectedError: ErrNotPayable,
		},
		{
			name:  "Payment completed",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1000), order(domain.PaymentCompleted))
			},
			expectedError: ErrNotPayable,
		},
		{
			name:  "Amount below gateway minimum",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				expectLoad(m, bid(1), order(domain.PaymentAwaitingInitial))
			},
			expectedError: domain.ErrAmountTooSmall,
		},
		{
			name:  "Bid missing",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:  "Bid not approved",
			input: input(),
			prepareMock: func(t *testing.T, m *mocks) {
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(1000), nil)
				m.orders.EXPECT().FindByBidID(gomock.Any(), int64(5), true).Return(nil, nil)
			},
			expectedError: ErrNotPayable,
		},
		{
			name:          "Missing payment method",
			input:         InitiateInput{BidID: 5, PayerEmail: owner, CallerEmail: owner},
			prepareMock:   func(t *testing.T, m *mocks) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(t, m)

			got, err := service.Initiate(context.Background(), tt.input)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), err.Error())
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInitiate_SucceededImmediately(t *testing.T) {
	service, m := NewMock(t)

	expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
	expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
	m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		Return(gateway.Intent{ID: "pi_1", ClientSecret: "secret", Status: gateway.StatusSucceeded}, nil)
	m.orders.EXPECT().SetPaymentIntent(gomock.Any(), orderID, "pi_1").Return(nil)
	m.payments.EXPECT().AttachGatewayIntent(gomock.Any(), int64(42), "pi_1", domain.IntentProcessing).Return(nil)

	processing := order(domain.PaymentProcessing)
	processing.PaymentIntentID = strp("pi_1")
	m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", true).Return(processing, nil)
	m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(&domain.PaymentIntent{ID: 42, Status: domain.IntentProcessing}, nil)
	m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentSucceeded).Return(nil)
	m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentCompleted).Return(true, nil)
	m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(1000), nil)
	m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request(), nil)
	m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Checkout) (*domain.Checkout, error) {
			assert.Equal(t, domain.PaymentCompleted, c.PaymentStatus)
			assert.True(t, decimal.NewFromInt(800).Equal(c.AmountPaid))
			return c, nil
		})
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notify.Notification) error {
			assert.Equal(t, notify.TemplatePaymentCompleted, n.Template)
			return nil
		})

	got, err := service.Initiate(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, got.PaymentStatus)
}

func keyed(id, status string) gateway.Intent {
	return gateway.Intent{ID: id, Status: status, Metadata: map[string]string{"idempotency_key": key}}
}

func localIntent(id int64) *domain.PaymentIntent {
	return &domain.PaymentIntent{ID: id, OrderID: orderID, IdempotencyKey: key, Status: domain.IntentCreated}
}

// expectCompletion covers the writes of a processing -> completed transition.
func expectCompletion(m *mocks) {
	m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentCompleted).Return(true, nil)
	m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(1000), nil)
	m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request(), nil)
	m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Checkout) (*domain.Checkout, error) { return c, nil })
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
}

// expectAttachByKey covers matching an unattached gateway intent to the local charge 42.
func expectAttachByKey(m *mocks, gatewayID string) {
	m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), gatewayID, true).Return(nil, nil)
	m.payments.EXPECT().FindByIdempotencyKey(gomock.Any(), key).Return(localIntent(42), nil)
	m.orders.EXPECT().FindByID(gomock.Any(), orderID, true).Return(order(domain.PaymentProcessing), nil)
	m.payments.EXPECT().FindLatestByOrder(gomock.Any(), orderID).Return(localIntent(42), nil)
	m.orders.EXPECT().SetPaymentIntent(gomock.Any(), orderID, gatewayID).Return(nil)
	m.payments.EXPECT().AttachGatewayIntent(gomock.Any(), int64(42), gatewayID, domain.IntentProcessing).Return(nil)
}

func callback(id, intentID string) []byte {
	return []byte(fmt.Sprintf(`{"id":%q,"type":"payment_intent.updated","intent_id":%q,"status":"succeeded"}`, id, intentID))
}

func TestHandleCallback(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		prepareMock   func(m *mocks, payload []byte)
		expectedError error
	}{
		{
			name:    "Success completes the payment",
			payload: callback("evt_1", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusSucceeded}, nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_1").Return(true, nil)
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", true).Return(order(domain.PaymentProcessing), nil)
				m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(&domain.PaymentIntent{ID: 42, Status: domain.IntentProcessing}, nil)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentSucceeded).Return(nil)
				m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentCompleted).Return(true, nil)
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(1000), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request(), nil)
				m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *domain.Checkout) (*domain.Checkout, error) { return c, nil })
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "Gateway reports failure",
			payload: callback("evt_2", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusFailed}, nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_2").Return(true, nil)
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", true).Return(order(domain.PaymentProcessing), nil)
				m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(&domain.PaymentIntent{ID: 42, Status: domain.IntentProcessing}, nil)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentFailed).Return(nil)
				m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentFailed).Return(true, nil)
			},
		},
		{
			name:    "Callback before the intent is attached completes the payment",
			payload: callback("evt_4", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(keyed("pi_1", gateway.StatusSucceeded), nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_4").Return(true, nil)
				expectAttachByKey(m, "pi_1")
				attached := localIntent(42)
				attached.GatewayIntentID = strp("pi_1")
				attached.Status = domain.IntentProcessing
				m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(attached, nil)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentSucceeded).Return(nil)
				expectCompletion(m)
			},
		},
		{
			name:    "Intent without a local charge is left for redelivery",
			payload: callback("evt_5", "pi_9"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_9").Return(gateway.Intent{ID: "pi_9", Status: gateway.StatusSucceeded}, nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_5").Return(true, nil)
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_9", true).Return(nil, nil)
			},
			expectedError: ErrIntentNotAttached,
		},
		{
			name:    "Superseded intent is acknowledged",
			payload: callback("evt_6", "pi_old"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_old").Return(keyed("pi_old", gateway.StatusSucceeded), nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_6").Return(true, nil)
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_old", true).Return(nil, nil)
				m.payments.EXPECT().FindByIdempotencyKey(gomock.Any(), key).Return(localIntent(41), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), orderID, true).Return(order(domain.PaymentProcessing), nil)
				m.payments.EXPECT().FindLatestByOrder(gomock.Any(), orderID).Return(localIntent(42), nil)
			},
		},
		{
			name:    "Replayed event is ignored",
			payload: callback("evt_1", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusSucceeded}, nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_1").Return(false, nil)
			},
		},
		{
			name:    "Already completed by another event",
			payload: callback("evt_3", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusSucceeded}, nil)
				m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_3").Return(true, nil)
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", true).Return(order(domain.PaymentCompleted), nil)
				m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(&domain.PaymentIntent{ID: 42, Status: domain.IntentSucceeded}, nil)
			},
		},
		{
			name:    "Bad signature",
			payload: callback("evt_1", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(gateway.ErrInvalidSignature)
			},
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:    "Malformed event",
			payload: []byte(`{"id":""}`),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
			},
			expectedError: domain.ErrValidation,
		},
		{
			name:    "Gateway unreachable on confirmation",
			payload: callback("evt_1", "pi_1"),
			prepareMock: func(m *mocks, payload []byte) {
				m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
				m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{}, gateway.ErrUnavailable)
			},
			expectedError: domain.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m, tt.payload)

			err := service.HandleCallback(context.Background(), tt.payload, "sig")
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRefreshByBid(t *testing.T) {
	service, m := NewMock(t)

	withIntent := order(domain.PaymentProcessing)
	withIntent.PaymentIntentID = strp("pi_1")
	m.orders.EXPECT().FindByBidID(gomock.Any(), int64(5), false).Return(withIntent, nil)
	m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(gateway.Intent{ID: "pi_1", Status: gateway.StatusProcessing}, nil)
	m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", true).Return(withIntent, nil)
	m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", false).Return(withIntent, nil)

	got, err := service.RefreshByBid(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentProcessing, got.PaymentStatus)

	m.orders.EXPECT().FindByBidID(gomock.Any(), int64(6), false).Return(order(domain.PaymentProcessing), nil)
	m.payments.EXPECT().FindLatestByOrder(gomock.Any(), orderID).Return(nil, nil)
	_, err = service.RefreshByBid(context.Background(), 6)
	assert.True(t, errors.Is(err, ErrNoGatewayIntent))

	m.orders.EXPECT().FindByBidID(gomock.Any(), int64(7), false).Return(nil, nil)
	_, err = service.RefreshByBid(context.Background(), 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStaleProcessing(t *testing.T) {
	service, m := NewMock(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	m.orders.EXPECT().FindStaleProcessing(gomock.Any(), now.Add(-10*time.Minute), uint32(20)).Return([]domain.Order{*order(domain.PaymentProcessing)}, nil)
	orders, err := service.StaleProcessing(context.Background(), 10*time.Minute, 20)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestInitiate_TimeoutThenCallbackCompletes(t *testing.T) {
	service, m := NewMock(t)

	expectLoad(m, bid(1000), order(domain.PaymentAwaitingInitial))
	expectCharge(t, m, domain.PaymentAwaitingInitial, 20000)
	m.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(gateway.Intent{}, gateway.ErrTimeout)

	_, err := service.Initiate(context.Background(), input())
	require.True(t, errors.Is(err, domain.ErrUpstream))

	payload := callback("evt_1", "pi_1")
	m.gateway.EXPECT().VerifySignature(payload, "sig").Return(nil)
	m.gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(keyed("pi_1", gateway.StatusSucceeded), nil)
	m.payments.EXPECT().MarkEventProcessed(gomock.Any(), "evt_1").Return(true, nil)
	expectAttachByKey(m, "pi_1")
	m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(localIntent(42), nil)
	m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentSucceeded).Return(nil)
	expectCompletion(m)

	require.NoError(t, service.HandleCallback(context.Background(), payload, "sig"))
}

func TestReconcile_UnattachedCharge(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		created       time.Time
		prepareMock   func(m *mocks)
		expected      domain.PaymentStatus
		expectedError error
	}{
		{
			name:    "Charge found by key is completed",
			created: now.Add(-time.Minute),
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().FindIntentByKey(gomock.Any(), key).Return(keyed("pi_1", gateway.StatusSucceeded), nil)
				expectAttachByKey(m, "pi_1")
				m.payments.EXPECT().FindByGatewayID(gomock.Any(), "pi_1").Return(localIntent(42), nil)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentSucceeded).Return(nil)
				expectCompletion(m)
				completed := order(domain.PaymentCompleted)
				completed.PaymentIntentID = strp("pi_1")
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", false).Return(completed, nil)
			},
			expected: domain.PaymentCompleted,
		},
		{
			name:    "Charge still processing gets its handle",
			created: now.Add(-time.Minute),
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().FindIntentByKey(gomock.Any(), key).Return(keyed("pi_1", gateway.StatusProcessing), nil)
				expectAttachByKey(m, "pi_1")
				attached := order(domain.PaymentProcessing)
				attached.PaymentIntentID = strp("pi_1")
				m.orders.EXPECT().FindByPaymentIntent(gomock.Any(), "pi_1", false).Return(attached, nil)
			},
			expected: domain.PaymentProcessing,
		},
		{
			name:    "Young charge unknown to the gateway stays processing",
			created: now.Add(-30 * time.Second),
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().FindIntentByKey(gomock.Any(), key).Return(gateway.Intent{}, gateway.ErrIntentNotFound)
			},
			expectedError: ErrNoGatewayIntent,
		},
		{
			name:    "Charge never created by the gateway fails",
			created: now.Add(-UnconfirmedChargeGrace - time.Second),
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().FindIntentByKey(gomock.Any(), key).Return(gateway.Intent{}, gateway.ErrIntentNotFound)
				m.orders.EXPECT().FindByID(gomock.Any(), orderID, true).Return(order(domain.PaymentProcessing), nil)
				m.payments.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.IntentFailed).Return(nil)
				m.orders.EXPECT().CompareAndSetPaymentStatus(gomock.Any(), orderID, domain.PaymentProcessing, domain.PaymentFailed).Return(true, nil)
			},
			expected: domain.PaymentFailed,
		},
		{
			name:    "Gateway unreachable",
			created: now.Add(-time.Hour),
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().FindIntentByKey(gomock.Any(), key).Return(gateway.Intent{}, gateway.ErrTimeout)
			},
			expectedError: domain.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			service.now = func() time.Time { return now }
			local := localIntent(42)
			local.CreatedAt = tt.created
			m.payments.EXPECT().FindLatestByOrder(gomock.Any(), orderID).Return(local, nil)
			tt.prepareMock(m)

			got, err := service.Reconcile(context.Background(), *order(domain.PaymentProcessing))
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.PaymentStatus)
		})
	}
}
