package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/service/paymentservice"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T, interval time.Duration) (*Service, *MockPayments) {
	ctrl := gomock.NewController(t)
	payments := NewMockPayments(ctrl)
	service := New(&config.Config{ReconcileInterval: interval}, payments)
	return service, payments
}

func stale(id string) domain.Order {
	intent := "pi_" + id
	return domain.Order{OrderID: id, PaymentStatus: domain.PaymentProcessing, PaymentIntentID: &intent}
}

func TestService_reconcileStale(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(m *MockPayments, wg *sync.WaitGroup)
	}{
		{
			name: "Every stale order is reconciled",
			prepareMock: func(m *MockPayments, wg *sync.WaitGroup) {
				m.EXPECT().StaleProcessing(gomock.Any(), time.Minute, uint32(defaultLimit)).
					Return([]domain.Order{stale("a"), stale("b")}, nil)
				wg.Add(2)
				m.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Times(2).
					DoAndReturn(func(_ context.Context, o domain.Order) (*domain.Order, error) {
						defer wg.Done()
						o.PaymentStatus = domain.PaymentCompleted
						return &o, nil
					})
			},
		},
		{
			name: "Failures are logged and do not stop the batch",
			prepareMock: func(m *MockPayments, wg *sync.WaitGroup) {
				m.EXPECT().StaleProcessing(gomock.Any(), time.Minute, uint32(defaultLimit)).
					Return([]domain.Order{stale("a"), {OrderID: "b", PaymentStatus: domain.PaymentProcessing}}, nil)
				wg.Add(2)
				m.EXPECT().Reconcile(gomock.Any(), stale("a")).
					DoAndReturn(func(context.Context, domain.Order) (*domain.Order, error) {
						defer wg.Done()
						return nil, domain.ErrUpstream
					})
				m.EXPECT().Reconcile(gomock.Any(), domain.Order{OrderID: "b", PaymentStatus: domain.PaymentProcessing}).
					DoAndReturn(func(context.Context, domain.Order) (*domain.Order, error) {
						defer wg.Done()
						return nil, paymentservice.ErrNoGatewayIntent
					})
			},
		},
		{
			name: "Lookup failure",
			prepareMock: func(m *MockPayments, wg *sync.WaitGroup) {
				m.EXPECT().StaleProcessing(gomock.Any(), time.Minute, uint32(defaultLimit)).
					Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, payments := NewMock(t, time.Minute)
			defer service.workerPool.Close()

			var wg sync.WaitGroup
			tt.prepareMock(payments, &wg)

			service.reconcileStale(context.Background())
			wg.Wait()
		})
	}
}

func TestService_reconcileStale_SkipsInFlight(t *testing.T) {
	service, payments := NewMock(t, time.Minute)
	defer service.workerPool.Close()

	service.inFlight.Store("a", struct{}{})
	payments.EXPECT().StaleProcessing(gomock.Any(), time.Minute, uint32(defaultLimit)).
		Return([]domain.Order{stale("a")}, nil)

	service.reconcileStale(context.Background())
}

func TestService_reconcileOrder(t *testing.T) {
	service, payments := NewMock(t, time.Minute)
	defer service.workerPool.Close()

	payments.EXPECT().Reconcile(gomock.Any(), stale("a")).Return(nil, domain.ErrUpstream)
	err := service.reconcileOrder(context.Background(), stale("a"))
	assert.ErrorIs(t, err, domain.ErrUpstream)

	payments.EXPECT().Reconcile(gomock.Any(), stale("b")).Return(nil, paymentservice.ErrNoGatewayIntent)
	assert.NoError(t, service.reconcileOrder(context.Background(), stale("b")))
}

func TestService_Start(t *testing.T) {
	service, payments := NewMock(t, 10*time.Millisecond)
	payments.EXPECT().StaleProcessing(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-service.Done():
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}

func TestService_StartDisabled(t *testing.T) {
	service, _ := NewMock(t, 0)

	service.Start(context.Background())

	select {
	case <-service.Done():
	default:
		t.Fatal("disabled reconciler should be done immediately")
	}
}
