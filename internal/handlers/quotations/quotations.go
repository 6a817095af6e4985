package quotations

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	FindRequestForOwner(ctx context.Context, ownerEmail string, requestType *domain.RequestType, requestID *int64) (*domain.Request, error)
	ListRequestsForOwner(ctx context.Context, ownerEmail string) ([]domain.Request, error)
}

type QuotationHandler struct {
	quotationService Service
}

func New(quotationService Service) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
	}
}

// GetRequest godoc
//
//	@Summary		Get own request
//	@Description	Returns one of the caller's requests. Requests of other customers are reported as not found.
//	@Tags			Requests
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Request type"	example(private_move)
//	@Param			id		path		int		true	"Request id"
//	@Success		200		{object}	dto.RequestResponseDTO
//	@Failure		400		{object}	utils.Response	"Unknown request type or malformed id"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/requests/{type}/{id} [get]
func (h *QuotationHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	requestType := domain.RequestType(chi.URLParam(r, "type"))
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	req, err := h.quotationService.FindRequestForOwner(r.Context(), caller.Email, &requestType, &requestID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRequestResponse(*req))
}

// ListRequests godoc
//
//	@Summary		List own requests
//	@Description	Lists the caller's requests across every request type, newest first.
//	@Tags			Requests
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.RequestResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/requests [get]
func (h *QuotationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	requests, err := h.quotationService.ListRequestsForOwner(r.Context(), caller.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	response := make([]dto.RequestResponseDTO, 0, len(requests))
	for _, req := range requests {
		response = append(response, dto.NewRequestResponse(req))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
