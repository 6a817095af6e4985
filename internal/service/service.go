package service

import (
	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/handlers/bids"
	"github.com/GlebRadaev/movebroker/internal/handlers/checkout"
	"github.com/GlebRadaev/movebroker/internal/handlers/disputes"
	"github.com/GlebRadaev/movebroker/internal/handlers/orders"
	"github.com/GlebRadaev/movebroker/internal/handlers/payments"
	"github.com/GlebRadaev/movebroker/internal/handlers/quotations"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/internal/reconcile"
	"github.com/GlebRadaev/movebroker/internal/repo"
	"github.com/GlebRadaev/movebroker/internal/service/bidservice"
	"github.com/GlebRadaev/movebroker/internal/service/checkoutservice"
	"github.com/GlebRadaev/movebroker/internal/service/disputeservice"
	"github.com/GlebRadaev/movebroker/internal/service/orderservice"
	"github.com/GlebRadaev/movebroker/internal/service/paymentservice"
	"github.com/GlebRadaev/movebroker/internal/service/quotationservice"
	pkgauth "github.com/GlebRadaev/movebroker/pkg/auth"
)

// External holds the clients of systems outside the database.
type External struct {
	Gateway  paymentservice.Gateway
	Notifier orderservice.Notifier
	Limiter  orderservice.Limiter
	Files    disputeservice.FileStore
}

type Services struct {
	QuotationService quotations.Service
	BidService       bids.Service
	OrderService     orders.Service
	CheckoutService  checkout.Service
	PaymentService   payments.Service
	DisputeService   disputes.Service
	Reconciler       reconcile.Payments
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, ext External) *Services {
	policy := pricing.InsuranceInformational
	if cfg.InsuranceAdditive {
		policy = pricing.InsuranceAdditive
	}
	operatorMailboxID := int64(cfg.OperatorMailboxID)

	quotationService := quotationservice.New(repo.RequestRepo)
	bidService := bidservice.New(repo.BidRepo, repo.RequestRepo)
	orderService := orderservice.New(orderservice.Deps{
		TxManager:    txManager,
		BidRepo:      repo.BidRepo,
		RequestRepo:  repo.RequestRepo,
		OrderRepo:    repo.OrderRepo,
		CheckoutRepo: repo.CheckoutRepo,
		PinRepo:      repo.PinRepo,
		Hash:         &pkgauth.HashService{},
		Limiter:      ext.Limiter,
		Notifier:     ext.Notifier,
	}, orderservice.Options{
		EscrowHoldDays:    cfg.EscrowHoldDays,
		InsurancePolicy:   policy,
		OperatorMailboxID: operatorMailboxID,
	})
	checkoutService := checkoutservice.New(txManager, repo.OrderRepo, repo.BidRepo, repo.RequestRepo, repo.CheckoutRepo, policy)
	paymentService := paymentservice.New(paymentservice.Deps{
		TxManager:    txManager,
		Gateway:      ext.Gateway,
		OrderRepo:    repo.OrderRepo,
		BidRepo:      repo.BidRepo,
		RequestRepo:  repo.RequestRepo,
		CheckoutRepo: repo.CheckoutRepo,
		PaymentRepo:  repo.PaymentRepo,
		Notifier:     ext.Notifier,
	}, policy)
	disputeService := disputeservice.New(txManager, repo.OrderRepo, repo.RequestRepo, repo.DisputeRepo,
		ext.Files, ext.Notifier, operatorMailboxID)

	return &Services{
		QuotationService: quotationService,
		BidService:       bidService,
		OrderService:     orderService,
		CheckoutService:  checkoutService,
		PaymentService:   paymentService,
		DisputeService:   disputeService,
		Reconciler:       paymentService,
	}
}
