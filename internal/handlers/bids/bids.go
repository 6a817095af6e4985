package bids

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/internal/service/bidservice"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Submit(ctx context.Context, in bidservice.SubmitInput) (*domain.Bid, error)
	List(ctx context.Context, requestType domain.RequestType, requestID int64) ([]domain.Bid, error)
	Decline(ctx context.Context, bidID int64) error
	Delete(ctx context.Context, bidID, supplierID int64) error
}

type BidHandler struct {
	bidService Service
}

func New(bidService Service) *BidHandler {
	return &BidHandler{
		bidService: bidService,
	}
}

// Submit godoc
//
//	@Summary		Submit a bid
//	@Description	A supplier places a priced bid on an open request. One pending bid per supplier and request.
//	@Tags			Bids
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubmitBidRequestDTO	true	"Bid"
//	@Success		201		{object}	dto.BidResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid bid"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Pending bid already exists or request closed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/bids [post]
func (h *BidHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req dto.SubmitBidRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bid, err := h.bidService.Submit(r.Context(), bidservice.SubmitInput{
		RequestType: domain.RequestType(req.RequestType),
		RequestID:   req.RequestID,
		SupplierID:  caller.UserID,
		Costs: domain.Costs{
			MovingCost:             req.MovingCost,
			TruckCost:              req.TruckCost,
			AdditionalServicesCost: req.AdditionalServicesCost,
		},
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewBidResponse(*bid))
}

// List godoc
//
//	@Summary		List bids of a request
//	@Tags			Bids
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Request type"
//	@Param			id		path		int		true	"Request id"
//	@Success		200		{array}		dto.BidResponseDTO
//	@Failure		400		{object}	utils.Response	"Unknown request type"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/requests/{type}/{id}/bids [get]
func (h *BidHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	bids, err := h.bidService.List(r.Context(), domain.RequestType(chi.URLParam(r, "type")), requestID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	response := make([]dto.BidResponseDTO, 0, len(bids))
	for _, bid := range bids {
		response = append(response, dto.NewBidResponse(bid))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Decline godoc
//
//	@Summary		Decline a pending bid
//	@Tags			Bids
//	@Security		BearerAuth
//	@Produce		json
//	@Param			bid_id	path		int	true	"Bid id"
//	@Success		200		{object}	utils.Response
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Bid not found"
//	@Failure		409		{object}	utils.Response	"Bid is not pending"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/bids/{bid_id}/decline [post]
func (h *BidHandler) Decline(w http.ResponseWriter, r *http.Request) {
	bidID, err := strconv.ParseInt(chi.URLParam(r, "bid_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}

	if err := h.bidService.Decline(r.Context(), bidID); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "bid declined"})
}

// Delete godoc
//
//	@Summary		Withdraw own pending bid
//	@Tags			Bids
//	@Security		BearerAuth
//	@Param			bid_id	path	int	true	"Bid id"
//	@Success		204
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Bid not found"
//	@Failure		409	{object}	utils.Response	"Bid is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/bids/{bid_id} [delete]
func (h *BidHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	bidID, err := strconv.ParseInt(chi.URLParam(r, "bid_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}

	if err := h.bidService.Delete(r.Context(), bidID, caller.UserID); err != nil {
		httperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
