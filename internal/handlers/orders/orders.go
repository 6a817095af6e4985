package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/internal/service/orderservice"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	ApproveBid(ctx context.Context, bidID int64, commission domain.Commission) (*orderservice.Approval, error)
	CustomerReject(ctx context.Context, email string, bidID int64) (*domain.Order, error)
	SetPin(ctx context.Context, email, pin string) error
	UpdateStatusByCustomer(ctx context.Context, email, orderID, pin string, to domain.OrderStatus) (*domain.Order, error)
	UpdateStatusByOperator(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
	EscrowStatus(ctx context.Context, orderID string) (*orderservice.Escrow, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func bidID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bid_id"), 10, 64)
	return id, err == nil
}

// ApproveBid godoc
//
//	@Summary		Approve a bid
//	@Description	Applies the commission percentages, creates the order and its initial checkout.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			bid_id	path		int							true	"Bid id"
//	@Param			request	body		dto.ApproveBidRequestDTO	true	"Commission percentages, 0..100"
//	@Success		201		{object}	dto.ApproveBidResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid percentages"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Bid not found"
//	@Failure		409		{object}	utils.Response	"Bid is not pending or request already awarded"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/bids/{bid_id}/approve [post]
func (h *OrderHandler) ApproveBid(w http.ResponseWriter, r *http.Request) {
	id, ok := bidID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}

	var req dto.ApproveBidRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	approval, err := h.orderService.ApproveBid(r.Context(), id, domain.Commission{
		MovingPricePercentage:       req.MovingPricePercentage,
		AdditionalServicePercentage: req.AdditionalServicePercentage,
		TruckCostPercentage:         req.TruckCostPercentage,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ApproveBidResponseDTO{
		Order:    dto.NewOrderResponse(*approval.Order),
		Checkout: dto.NewCheckoutResponse(*approval.Checkout),
	})
}

// RejectBid godoc
//
//	@Summary		Reject an approved bid as the customer
//	@Description	Marks the order as rejected by the customer and notifies the supplier and the operator.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			bid_id	path		int	true	"Bid id"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Not found"
//	@Failure		409		{object}	utils.Response	"Bid is not approved or already rejected"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/bids/{bid_id}/reject [post]
func (h *OrderHandler) RejectBid(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	id, ok := bidID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}

	order, err := h.orderService.CustomerReject(r.Context(), caller.Email, id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// SetPin godoc
//
//	@Summary		Configure order PIN
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetPinRequestDTO	true	"4-digit PIN"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"PIN must be 4 digits"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/orders/pin [post]
func (h *OrderHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req dto.SetPinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.orderService.SetPin(r.Context(), caller.Email, req.Pin); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "PIN saved"})
}

// UpdateStatus godoc
//
//	@Summary		Update order status as the customer
//	@Description	Requires the customer's order PIN.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateOrderStatusRequestDTO	true	"Order, PIN and target status"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid status or PIN not configured"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Incorrect PIN"
//	@Failure		404		{object}	utils.Response	"Not found"
//	@Failure		409		{object}	utils.Response	"Transition not allowed"
//	@Failure		429		{object}	utils.Response	"Too many incorrect PIN attempts"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/orders/status [post]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req dto.UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	order, err := h.orderService.UpdateStatusByCustomer(r.Context(), caller.Email, req.OrderID, req.Pin, domain.OrderStatus(req.Status))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// OperatorUpdateStatus godoc
//
//	@Summary		Update order status as the operator
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string								true	"Order id"
//	@Param			request		body		dto.OperatorOrderStatusRequestDTO	true	"Target status"
//	@Success		200			{object}	dto.OrderResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid status"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Not found"
//	@Failure		409			{object}	utils.Response	"Transition not allowed"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/orders/{order_id}/status [post]
func (h *OrderHandler) OperatorUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OperatorOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatusByOperator(r.Context(), chi.URLParam(r, "order_id"), domain.OrderStatus(req.Status))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// Escrow godoc
//
//	@Summary		Escrow status of an order
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			order_id	path		string	true	"Order id"
//	@Success		200			{object}	dto.EscrowResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/orders/{order_id}/escrow [get]
func (h *OrderHandler) Escrow(w http.ResponseWriter, r *http.Request) {
	escrow, err := h.orderService.EscrowStatus(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.EscrowResponseDTO{
		OrderID:       escrow.OrderID,
		PaymentStatus: string(escrow.PaymentStatus),
		ReleaseDate:   escrow.ReleaseDate.UTC(),
		Releasable:    escrow.Releasable,
	})
}
