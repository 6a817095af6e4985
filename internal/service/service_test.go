package service

import (
	"testing"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/repo"
	"github.com/GlebRadaev/movebroker/internal/service/disputeservice"
	"github.com/GlebRadaev/movebroker/internal/service/orderservice"
	"github.com/GlebRadaev/movebroker/internal/service/paymentservice"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.Config{EscrowHoldDays: 14, InsuranceAdditive: true, OperatorMailboxID: 1}
	ext := External{
		Gateway:  paymentservice.NewMockGateway(ctrl),
		Notifier: orderservice.NewMockNotifier(ctrl),
		Limiter:  orderservice.NewMockLimiter(ctrl),
		Files:    disputeservice.NewMockFileStore(ctrl),
	}

	services := New(cfg, repo.New(mockDB), pg.NewMockTXManager(ctrl), ext)

	assert.NotNil(t, services.QuotationService)
	assert.NotNil(t, services.BidService)
	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.CheckoutService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.DisputeService)
	assert.Same(t, services.PaymentService, services.Reconciler)
}
