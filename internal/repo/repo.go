package repo

import (
	"github.com/GlebRadaev/movebroker/internal/pg"
	bidrepo "github.com/GlebRadaev/movebroker/internal/repo/bid-repo"
	checkoutrepo "github.com/GlebRadaev/movebroker/internal/repo/checkout-repo"
	disputerepo "github.com/GlebRadaev/movebroker/internal/repo/dispute-repo"
	orderrepo "github.com/GlebRadaev/movebroker/internal/repo/order-repo"
	paymentrepo "github.com/GlebRadaev/movebroker/internal/repo/payment-repo"
	pinrepo "github.com/GlebRadaev/movebroker/internal/repo/pin-repo"
	requestrepo "github.com/GlebRadaev/movebroker/internal/repo/request-repo"
)

// Repositories is shared by several services, each of which sees only the
// methods its own interfaces declare.
type Repositories struct {
	RequestRepo  *requestrepo.Repository
	BidRepo      *bidrepo.Repository
	OrderRepo    *orderrepo.Repository
	CheckoutRepo *checkoutrepo.Repository
	PaymentRepo  *paymentrepo.Repository
	PinRepo      *pinrepo.Repository
	DisputeRepo  *disputerepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		RequestRepo:  requestrepo.New(conn),
		BidRepo:      bidrepo.New(conn),
		OrderRepo:    orderrepo.New(conn),
		CheckoutRepo: checkoutrepo.New(conn),
		PaymentRepo:  paymentrepo.New(conn),
		PinRepo:      pinrepo.New(conn),
		DisputeRepo:  disputerepo.New(conn),
	}
}
