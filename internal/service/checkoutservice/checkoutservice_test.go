package checkoutservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/registry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	orders    *MockOrderRepo
	bids      *MockBidRepo
	requests  *MockRequestRepo
	checkouts *MockCheckoutRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	tx := pg.NewMockTXManager(ctrl)
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	m := &mocks{
		orders:    NewMockOrderRepo(ctrl),
		bids:      NewMockBidRepo(ctrl),
		requests:  NewMockRequestRepo(ctrl),
		checkouts: NewMockCheckoutRepo(ctrl),
	}
	return New(tx, m.orders, m.bids, m.requests, m.checkouts, pricing.InsuranceInformational), m
}

func ssn(v string) *string {
	return &v
}

func order(status domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		OrderID:       "private_move-1-5",
		BidID:         5,
		RequestType:   registry.PrivateMove,
		RequestID:     1,
		PaymentStatus: status,
		Commission:    domain.Commission{MovingPricePercentage: decimal.NewFromInt(10)},
	}
}

func request(email string) *domain.Request {
	return &domain.Request{
		Type:           registry.PrivateMove,
		ID:             1,
		RequesterEmail: email,
		RequesterSSN:   ssn("811218-9876"),
		RUTEligible:    true,
	}
}

func bid() *domain.Bid {
	return &domain.Bid{
		ID: 5,
		Costs: domain.Costs{
			MovingCost:             decimal.NewFromInt(1000),
			TruckCost:              decimal.NewFromInt(200),
			AdditionalServicesCost: decimal.NewFromInt(100),
		},
	}
}

func echoUpsert(_ context.Context, c *domain.Checkout) (*domain.Checkout, error) {
	saved := *c
	saved.ID = 1
	return &saved, nil
}

func TestComputeAndPersist(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		prepareMock   func(m *mocks)
		wantToPay     int64
		wantRemaining int64
		expectedError error
	}{
		{
			name:  "Deposit stage",
			email: "anna@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentAwaitingInitial), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("ANNA@example.se"), nil)
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(), nil)
				m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)
			},
			wantToPay:     140,
			wantRemaining: 560,
		},
		{
			name:  "Balance stage",
			email: "anna@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentProcessing), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("anna@example.se"), nil)
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(), nil)
				m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)
			},
			wantToPay:     560,
			wantRemaining: 140,
		},
		{
			name:  "Another customer's order",
			email: "bo@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentAwaitingInitial), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("anna@example.se"), nil)
			},
			expectedError: domain.ErrNotFoundOrForbidden,
		},
		{
			name:  "Unknown order",
			email: "anna@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(nil, nil)
			},
			expectedError: domain.ErrNotFoundOrForbidden,
		},
		{
			name:  "Bid row missing",
			email: "anna@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentAwaitingInitial), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("anna@example.se"), nil)
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(nil, nil)
			},
			expectedError: domain.ErrInvariant,
		},
		{
			name:  "Upsert fails",
			email: "anna@example.se",
			prepareMock: func(m *mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentAwaitingInitial), nil)
				m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("anna@example.se"), nil)
				m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(), nil)
				m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			view, err := service.ComputeAndPersist(context.Background(), "private_move-1-5", tt.email)
			if tt.expectedError != nil {
				require.Error(t, err)
				if !errors.Is(err, tt.expectedError) {
					assert.Equal(t, tt.expectedError.Error(), err.Error())
				}
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(700).Equal(view.Checkout.TotalPrice))
			assert.True(t, decimal.NewFromInt(tt.wantToPay).Equal(view.Checkout.AmountPaid))
			assert.True(t, decimal.NewFromInt(tt.wantRemaining).Equal(view.Checkout.RemainingBalance))
			assert.True(t, decimal.NewFromInt(1100).Equal(view.Quote.AdjustedMovingCost))
			assert.True(t, decimal.NewFromInt(700).Equal(view.Quote.RUTDeduction))
			assert.True(t, view.Checkout.RUTDiscountApplied)
		})
	}
}

func TestComputeAndPersist_Idempotent(t *testing.T) {
	service, m := NewMock(t)

	var written []*domain.Checkout
	m.orders.EXPECT().FindByID(gomock.Any(), "private_move-1-5", true).Return(order(domain.PaymentAwaitingInitial), nil).Times(2)
	m.requests.EXPECT().FindByKey(gomock.Any(), registry.PrivateMove, int64(1), false).Return(request("anna@example.se"), nil).Times(2)
	m.bids.EXPECT().FindByID(gomock.Any(), int64(5), false).Return(bid(), nil).Times(2)
	m.checkouts.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, c *domain.Checkout) (*domain.Checkout, error) {
			written = append(written, c)
			return echoUpsert(ctx, c)
		}).Times(2)

	first, err := service.ComputeAndPersist(context.Background(), "private_move-1-5", "anna@example.se")
	require.NoError(t, err)
	second, err := service.ComputeAndPersist(context.Background(), "private_move-1-5", "anna@example.se")
	require.NoError(t, err)

	require.Len(t, written, 2)
	assert.Equal(t, written[0].OrderID, written[1].OrderID)
	assert.Equal(t, first.Checkout.TotalPrice.String(), second.Checkout.TotalPrice.String())
	assert.Equal(t, first.Checkout.AmountPaid.String(), second.Checkout.AmountPaid.String())
	assert.Equal(t, first.Checkout.RemainingBalance.String(), second.Checkout.RemainingBalance.String())
}

func TestGetCheckout(t *testing.T) {
	service, m := NewMock(t)

	stored := &domain.Checkout{ID: 1, OrderID: "private_move-1-5", TotalPrice: decimal.NewFromInt(700)}
	m.checkouts.EXPECT().FindByOrderID(gomock.Any(), "private_move-1-5").Return(stored, nil)
	got, err := service.GetCheckout(context.Background(), "private_move-1-5")
	require.NoError(t, err)
	assert.Same(t, stored, got)

	m.checkouts.EXPECT().FindByOrderID(gomock.Any(), "missing").Return(nil, nil)
	_, err = service.GetCheckout(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
