package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/movebroker/docs"
	bidhandlers "github.com/GlebRadaev/movebroker/internal/handlers/bids"
	checkouthandlers "github.com/GlebRadaev/movebroker/internal/handlers/checkout"
	disputehandlers "github.com/GlebRadaev/movebroker/internal/handlers/disputes"
	orderhandlers "github.com/GlebRadaev/movebroker/internal/handlers/orders"
	paymenthandlers "github.com/GlebRadaev/movebroker/internal/handlers/payments"
	quotationhandlers "github.com/GlebRadaev/movebroker/internal/handlers/quotations"
	"github.com/GlebRadaev/movebroker/internal/metrics"
	"github.com/GlebRadaev/movebroker/internal/service"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type QuotationHandler interface {
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
}

type BidHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	ApproveBid(w http.ResponseWriter, r *http.Request)
	RejectBid(w http.ResponseWriter, r *http.Request)
	SetPin(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	OperatorUpdateStatus(w http.ResponseWriter, r *http.Request)
	Escrow(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	GetCheckout(w http.ResponseWriter, r *http.Request)
	GetDetails(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Initiate(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type DisputeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	QuotationHandler QuotationHandler
	BidHandler       BidHandler
	OrderHandler     OrderHandler
	CheckoutHandler  CheckoutHandler
	PaymentHandler   PaymentHandler
	DisputeHandler   DisputeHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		QuotationHandler: quotationhandlers.New(s.QuotationService),
		BidHandler:       bidhandlers.New(s.BidService),
		OrderHandler:     orderhandlers.New(s.OrderService),
		CheckoutHandler:  checkouthandlers.New(s.CheckoutService),
		PaymentHandler:   paymenthandlers.New(s.PaymentService),
		DisputeHandler:   disputehandlers.New(s.DisputeService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router, jwtService auth.JWTServiceInterface) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated by its HMAC signature, not a bearer token.
	r.Post("/payments/callback", h.PaymentHandler.Callback)

	customer := auth.RequireRole(auth.RoleCustomer)
	supplier := auth.RequireRole(auth.RoleSupplier)
	operator := auth.RequireRole(auth.RoleOperator)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(jwtService))

		r.Route("/requests", func(r chi.Router) {
			r.With(customer).Get("/", h.QuotationHandler.ListRequests)
			r.With(customer).Get("/{type}/{id}", h.QuotationHandler.GetRequest)
			r.With(auth.RequireRole(auth.RoleSupplier, auth.RoleOperator)).Get("/{type}/{id}/bids", h.BidHandler.List)
		})

		r.Route("/bids", func(r chi.Router) {
			r.With(supplier).Post("/", h.BidHandler.Submit)
			r.With(supplier).Delete("/{bid_id}", h.BidHandler.Delete)
			r.With(operator).Post("/{bid_id}/decline", h.BidHandler.Decline)
			r.With(operator).Post("/{bid_id}/approve", h.OrderHandler.ApproveBid)
			r.With(customer).Post("/{bid_id}/reject", h.OrderHandler.RejectBid)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.With(customer).Get("/{order_id}", h.CheckoutHandler.GetCheckout)
			r.With(operator).Get("/details/{order_id}", h.CheckoutHandler.GetDetails)
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(customer).Post("/", h.PaymentHandler.Initiate)
			r.With(operator).Post("/{bid_id}/refresh", h.PaymentHandler.Refresh)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(customer).Post("/pin", h.OrderHandler.SetPin)
			r.With(customer).Post("/status", h.OrderHandler.UpdateStatus)
			r.With(operator).Post("/{order_id}/status", h.OrderHandler.OperatorUpdateStatus)
			r.With(operator).Get("/{order_id}/escrow", h.OrderHandler.Escrow)
		})

		r.Route("/disputes", func(r chi.Router) {
			r.With(customer).Post("/", h.DisputeHandler.Create)
			r.With(auth.RequireRole(auth.RoleCustomer, auth.RoleOperator)).Get("/{id}", h.DisputeHandler.Get)
			r.With(operator).Patch("/{id}", h.DisputeHandler.UpdateStatus)
		})
	})

	return r
}
