package dto

import (
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
)

type CreateDisputeRequestDTO struct {
	OrderID     *string  `json:"order_id,omitempty" example:"private_move-1-5"`
	RequestType *string  `json:"request_type,omitempty" example:"private_move"`
	RequestID   *int64   `json:"request_id,omitempty" example:"1"`
	Category    string   `json:"category" example:"damage"`
	Description string   `json:"description" example:"The mirror arrived broken"`
	Attachments []string `json:"attachments,omitempty" example:"mirror.jpg"`
}

type AttachmentDTO struct {
	Key string `json:"key" example:"disputes/6f1c/mirror.jpg"`
	URL string `json:"url" example:"https://files.example.se/disputes/6f1c/mirror.jpg?X-Amz-Signature=..."`
}

type DisputeResponseDTO struct {
	ID          int64           `json:"id" example:"3"`
	OrderID     *string         `json:"order_id,omitempty" example:"private_move-1-5"`
	RequestType *string         `json:"request_type,omitempty" example:"private_move"`
	RequestID   *int64          `json:"request_id,omitempty" example:"1"`
	Category    string          `json:"category" example:"damage"`
	Description string          `json:"description" example:"The mirror arrived broken"`
	Status      string          `json:"status" example:"pending"`
	Attachments []AttachmentDTO `json:"attachments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type UpdateDisputeRequestDTO struct {
	Status string `json:"status" example:"under_review"`
}

func NewDisputeResponse(d *domain.Dispute, attachments []AttachmentDTO) DisputeResponseDTO {
	resp := DisputeResponseDTO{
		ID:          d.ID,
		OrderID:     d.OrderID,
		RequestID:   d.RequestID,
		Category:    d.Category,
		Description: d.Description,
		Status:      string(d.Status),
		Attachments: attachments,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if resp.Attachments == nil {
		resp.Attachments = []AttachmentDTO{}
	}
	if d.RequestType != nil {
		requestType := string(*d.RequestType)
		resp.RequestType = &requestType
	}
	return resp
}
