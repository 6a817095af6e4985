package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/movebroker/internal/handlers/bids"
	"github.com/GlebRadaev/movebroker/internal/handlers/checkout"
	"github.com/GlebRadaev/movebroker/internal/handlers/disputes"
	"github.com/GlebRadaev/movebroker/internal/handlers/orders"
	"github.com/GlebRadaev/movebroker/internal/handlers/payments"
	"github.com/GlebRadaev/movebroker/internal/handlers/quotations"
	"github.com/GlebRadaev/movebroker/internal/service"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		QuotationService: quotations.NewMockService(ctrl),
		BidService:       bids.NewMockService(ctrl),
		OrderService:     orders.NewMockService(ctrl),
		CheckoutService:  checkout.NewMockService(ctrl),
		PaymentService:   payments.NewMockService(ctrl),
		DisputeService:   disputes.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	quotationHandler := NewMockQuotationHandler(ctrl)
	bidHandler := NewMockBidHandler(ctrl)
	orderHandler := NewMockOrderHandler(ctrl)
	checkoutHandler := NewMockCheckoutHandler(ctrl)
	paymentHandler := NewMockPaymentHandler(ctrl)
	disputeHandler := NewMockDisputeHandler(ctrl)

	quotationHandler.EXPECT().GetRequest(gomock.Any(), gomock.Any()).AnyTimes()
	quotationHandler.EXPECT().ListRequests(gomock.Any(), gomock.Any()).AnyTimes()
	bidHandler.EXPECT().Submit(gomock.Any(), gomock.Any()).AnyTimes()
	bidHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	bidHandler.EXPECT().Decline(gomock.Any(), gomock.Any()).AnyTimes()
	bidHandler.EXPECT().Delete(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().ApproveBid(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().RejectBid(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().SetPin(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().OperatorUpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()
	orderHandler.EXPECT().Escrow(gomock.Any(), gomock.Any()).AnyTimes()
	checkoutHandler.EXPECT().GetCheckout(gomock.Any(), gomock.Any()).AnyTimes()
	checkoutHandler.EXPECT().GetDetails(gomock.Any(), gomock.Any()).AnyTimes()
	paymentHandler.EXPECT().Initiate(gomock.Any(), gomock.Any()).AnyTimes()
	paymentHandler.EXPECT().Callback(gomock.Any(), gomock.Any()).AnyTimes()
	paymentHandler.EXPECT().Refresh(gomock.Any(), gomock.Any()).AnyTimes()
	disputeHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	disputeHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()
	disputeHandler.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		QuotationHandler: quotationHandler,
		BidHandler:       bidHandler,
		OrderHandler:     orderHandler,
		CheckoutHandler:  checkoutHandler,
		PaymentHandler:   paymentHandler,
		DisputeHandler:   disputeHandler,
	}

	jwtService := auth.NewJWTService("test-secret")
	router := chi.NewRouter()
	h.InitRoutes(router, jwtService)

	token := func(role auth.Role) string {
		tok, err := jwtService.GenerateJWT(auth.Identity{UserID: 1, Email: "user@example.se", Role: role}, time.Now().Add(time.Hour))
		require.NoError(t, err)
		return tok
	}
	customer := token(auth.RoleCustomer)
	supplier := token(auth.RoleSupplier)
	operator := token(auth.RoleOperator)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/payments/callback", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/requests", "", http.StatusUnauthorized},
		{"POST", "/payments", "", http.StatusUnauthorized},
		{"POST", "/payments", "garbage", http.StatusUnauthorized},

		{"GET", "/requests", customer, http.StatusOK},
		{"GET", "/requests/private_move/1", customer, http.StatusOK},
		{"GET", "/requests/private_move/1/bids", customer, http.StatusForbidden},
		{"GET", "/requests/private_move/1/bids", supplier, http.StatusOK},
		{"GET", "/requests/private_move/1/bids", operator, http.StatusOK},

		{"POST", "/bids", supplier, http.StatusOK},
		{"POST", "/bids", customer, http.StatusForbidden},
		{"DELETE", "/bids/5", supplier, http.StatusOK},
		{"POST", "/bids/5/decline", operator, http.StatusOK},
		{"POST", "/bids/5/approve", operator, http.StatusOK},
		{"POST", "/bids/5/approve", customer, http.StatusForbidden},
		{"POST", "/bids/5/reject", customer, http.StatusOK},

		{"GET", "/checkout/private_move-1-5", customer, http.StatusOK},
		{"GET", "/checkout/details/private_move-1-5", operator, http.StatusOK},
		{"GET", "/checkout/details/private_move-1-5", customer, http.StatusForbidden},

		{"POST", "/payments", customer, http.StatusOK},
		{"POST", "/payments/5/refresh", operator, http.StatusOK},
		{"POST", "/payments/5/refresh", customer, http.StatusForbidden},

		{"POST", "/orders/pin", customer, http.StatusOK},
		{"POST", "/orders/status", customer, http.StatusOK},
		{"POST", "/orders/status", operator, http.StatusForbidden},
		{"POST", "/orders/private_move-1-5/status", operator, http.StatusOK},
		{"GET", "/orders/private_move-1-5/escrow", operator, http.StatusOK},

		{"POST", "/disputes", customer, http.StatusOK},
		{"GET", "/disputes/3", customer, http.StatusOK},
		{"GET", "/disputes/3", operator, http.StatusOK},
		{"GET", "/disputes/3", supplier, http.StatusForbidden},
		{"PATCH", "/disputes/3", operator, http.StatusOK},
		{"PATCH", "/disputes/3", customer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
