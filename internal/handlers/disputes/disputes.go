package disputes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/dto"
	"github.com/GlebRadaev/movebroker/internal/handlers/httperr"
	"github.com/GlebRadaev/movebroker/internal/service/disputeservice"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Create(ctx context.Context, in disputeservice.CreateInput) (*disputeservice.View, error)
	Get(ctx context.Context, id int64, caller auth.Identity) (*disputeservice.View, error)
	UpdateStatus(ctx context.Context, id int64, to domain.DisputeStatus) (*domain.Dispute, error)
}

type DisputeHandler struct {
	disputeService Service
}

func New(disputeService Service) *DisputeHandler {
	return &DisputeHandler{
		disputeService: disputeService,
	}
}

// Create godoc
//
//	@Summary		Open a dispute
//	@Description	Opens a dispute against one order or one request. The response carries presigned upload URLs for the attachments.
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateDisputeRequestDTO	true	"Dispute"
//	@Success		201		{object}	dto.DisputeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Order or request not found"
//	@Failure		502		{object}	utils.Response	"File storage error"
//	@Router			/disputes [post]
func (h *DisputeHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req dto.CreateDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := disputeservice.CreateInput{
		OwnerEmail:  caller.Email,
		OrderID:     req.OrderID,
		RequestID:   req.RequestID,
		Category:    req.Category,
		Description: req.Description,
		Attachments: req.Attachments,
	}
	if req.RequestType != nil {
		requestType := domain.RequestType(*req.RequestType)
		in.RequestType = &requestType
	}

	view, err := h.disputeService.Create(r.Context(), in)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(view))
}

// Get godoc
//
//	@Summary		Get a dispute
//	@Description	Visible to the customer who opened it and to operators.
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Dispute id"
//	@Success		200	{object}	dto.DisputeResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Dispute not found"
//	@Router			/disputes/{id} [get]
func (h *DisputeHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid dispute id")
		return
	}

	view, err := h.disputeService.Get(r.Context(), id, caller)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(view))
}

// UpdateStatus godoc
//
//	@Summary		Move a dispute through review
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Dispute id"
//	@Param			request	body		dto.UpdateDisputeRequestDTO	true	"New status"
//	@Success		200		{object}	dto.DisputeResponseDTO
//	@Failure		400		{object}	utils.Response	"Unknown status"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Dispute not found"
//	@Failure		409		{object}	utils.Response	"Transition not allowed"
//	@Router			/disputes/{id} [patch]
func (h *DisputeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid dispute id")
		return
	}

	var req dto.UpdateDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dispute, err := h.disputeService.UpdateStatus(r.Context(), id, domain.DisputeStatus(req.Status))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDisputeResponse(dispute, nil))
}

func toResponse(view *disputeservice.View) dto.DisputeResponseDTO {
	attachments := make([]dto.AttachmentDTO, 0, len(view.Attachments))
	for _, a := range view.Attachments {
		attachments = append(attachments, dto.AttachmentDTO{Key: a.Key, URL: a.URL})
	}
	return dto.NewDisputeResponse(view.Dispute, attachments)
}
