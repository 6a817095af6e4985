package dto

import (
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
)

type RequestResponseDTO struct {
	Type                 string     `json:"type" example:"private_move"`
	ID                   int64      `json:"id" example:"1"`
	RequesterEmail       string     `json:"requester_email" example:"anna@example.se"`
	RequesterName        string     `json:"requester_name" example:"Anna Svensson"`
	PickupAddress        string     `json:"pickup_address" example:"Storgatan 1, Uppsala"`
	DeliveryAddress      *string    `json:"delivery_address,omitempty" example:"Kungsgatan 5, Stockholm"`
	RequestedDate        time.Time  `json:"requested_date" example:"2026-06-01T00:00:00Z"`
	LatestAcceptableDate *time.Time `json:"latest_acceptable_date,omitempty"`
	RUTEligible          bool       `json:"rut_eligible"`
	ExtraInsurance       bool       `json:"extra_insurance"`
	Status               string     `json:"status" example:"open"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NewRequestResponse omits the SSN; it never leaves the service.
func NewRequestResponse(req domain.Request) RequestResponseDTO {
	return RequestResponseDTO{
		Type:                 string(req.Type),
		ID:                   req.ID,
		RequesterEmail:       req.RequesterEmail,
		RequesterName:        req.RequesterName,
		PickupAddress:        req.PickupAddress,
		DeliveryAddress:      req.DeliveryAddress,
		RequestedDate:        req.RequestedDate.UTC(),
		LatestAcceptableDate: utc(req.LatestAcceptableDate),
		RUTEligible:          req.RUTEligible,
		ExtraInsurance:       req.ExtraInsurance,
		Status:               string(req.Status),
		CreatedAt:            req.CreatedAt.UTC(),
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
