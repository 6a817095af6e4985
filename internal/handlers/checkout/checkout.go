package checkout

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/internal/service/checkoutservice"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	ComputeAndPersist(ctx context.Context, orderID, requesterEmail string) (*checkoutservice.View, error)
	GetCheckout(ctx context.Context, orderID string) (*domain.Checkout, error)
}

type CheckoutHandler struct {
	checkoutService Service
}

func New(checkoutService Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// GetCheckout godoc
//
//	@Summary		Compute checkout
//	@Description	Prices the caller's order, stores the checkout and returns the breakdown. Repeated calls return the same amounts.
//	@Tags			Checkout
//	@Security		BearerAuth
//	@Produce		json
//	@Param			order_id	path		string	true	"Order id"	example(private_move-1-5)
//	@Success		200			{object}	dto.CheckoutBreakdownDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/checkout/{order_id} [get]
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	view, err := h.checkoutService.ComputeAndPersist(r.Context(), chi.URLParam(r, "order_id"), caller.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckoutBreakdownDTO{
		Checkout:                   dto.NewCheckoutResponse(*view.Checkout),
		MovingCost:                 view.Costs.MovingCost,
		TruckCost:                  view.Costs.TruckCost,
		AdditionalServicesCost:     view.Costs.AdditionalServicesCost,
		AdjustedMovingCost:         view.Quote.AdjustedMovingCost,
		AdjustedTruckCost:          view.Quote.AdjustedTruckCost,
		AdjustedAdditionalServices: view.Quote.AdjustedAdditionalServices,
		FinalPrice:                 view.Quote.FinalPrice,
		InsuranceFee:               view.Quote.InsuranceFee,
		AdjustedTotalPrice:         view.Quote.AdjustedTotalPrice,
		AmountToPay:                view.Split.AmountToPay,
	})
}

// GetDetails godoc
//
//	@Summary		Stored checkout
//	@Description	Privileged read of the persisted checkout row.
//	@Tags			Checkout
//	@Security		BearerAuth
//	@Produce		json
//	@Param			order_id	path		string	true	"Order id"
//	@Success		200			{object}	dto.CheckoutResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		403			{object}	utils.Response	"Forbidden"
//	@Failure		404			{object}	utils.Response	"Not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/checkout/details/{order_id} [get]
func (h *CheckoutHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	checkout, err := h.checkoutService.GetCheckout(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCheckoutResponse(*checkout))
}
