package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/gateway"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/internal/service/paymentservice"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

const maxCallbackSize = 64 << 10

type Service interface {
	Initiate(ctx context.Context, in paymentservice.InitiateInput) (*paymentservice.Initiation, error)
	HandleCallback(ctx context.Context, payload []byte, signature string) error
	RefreshByBid(ctx context.Context, bidID int64) (*domain.Order, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Initiate godoc
//
//	@Summary		Pay for an approved bid
//	@Description	Charges the amount currently due: the deposit first, the balance after it has been paid.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.InitiatePaymentRequestDTO	true	"Payment"
//	@Success		201		{object}	dto.InitiatePaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request or amount below minimum"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Card declined"
//	@Failure		403		{object}	utils.Response	"Payer is not the request owner"
//	@Failure		404		{object}	utils.Response	"Bid not found"
//	@Failure		409		{object}	utils.Response	"Payment already in progress or completed"
//	@Failure		502		{object}	utils.Response	"Payment system error"
//	@Router			/payments [post]
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req dto.InitiatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BidID == 0 || req.PayerEmail == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "bid_id and payer_email are required")
		return
	}

	initiation, err := h.paymentService.Initiate(r.Context(), paymentservice.InitiateInput{
		BidID:            req.BidID,
		PayerEmail:       req.PayerEmail,
		PaymentMethodRef: req.PaymentMethodRef,
		CallerEmail:      caller.Email,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.InitiatePaymentResponseDTO{
		OrderID:          initiation.OrderID,
		IntentID:         initiation.IntentID,
		ClientSecret:     initiation.ClientSecret,
		AmountMinorUnits: initiation.AmountMinorUnits,
		Currency:         initiation.Currency,
		PaymentStatus:    string(initiation.PaymentStatus),
	})
}

// Callback godoc
//
//	@Summary		Gateway status callback
//	@Description	Signed asynchronous status update from the payment gateway. The status is confirmed with the gateway before it is applied.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Gateway-Signature	header		string	true	"Hex HMAC-SHA256 of the body"
//	@Success		200					{object}	utils.Response
//	@Failure		400					{object}	utils.Response	"Malformed event"
//	@Failure		403					{object}	utils.Response	"Invalid signature"
//	@Failure		502					{object}	utils.Response	"Gateway unreachable"
//	@Router			/payments/callback [post]
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackSize))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.paymentService.HandleCallback(r.Context(), payload, r.Header.Get(gateway.SignatureHeader)); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

// Refresh godoc
//
//	@Summary		Reconcile a payment with the gateway
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			bid_id	path		int	true	"Bid id"
//	@Success		200		{object}	dto.PaymentStatusResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"No order for bid"
//	@Failure		409		{object}	utils.Response	"No gateway intent yet"
//	@Failure		502		{object}	utils.Response	"Payment system error"
//	@Router			/payments/{bid_id}/refresh [post]
func (h *PaymentHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	bidID, err := strconv.ParseInt(chi.URLParam(r, "bid_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}

	order, err := h.paymentService.RefreshByBid(r.Context(), bidID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentStatusResponseDTO{
		OrderID:       order.OrderID,
		PaymentStatus: string(order.PaymentStatus),
	})
}
