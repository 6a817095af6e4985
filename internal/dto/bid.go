package dto

import (
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/shopspring/decimal"
)

type SubmitBidRequestDTO struct {
	RequestType            string          `json:"request_type" example:"private_move"`
	RequestID              int64           `json:"request_id" example:"1"`
	MovingCost             decimal.Decimal `json:"moving_cost" swaggertype:"string" example:"1000.00"`
	TruckCost              decimal.Decimal `json:"truck_cost" swaggertype:"string" example:"200.00"`
	AdditionalServicesCost decimal.Decimal `json:"additional_services_cost" swaggertype:"string" example:"100.00"`
}

type BidResponseDTO struct {
	ID                     int64           `json:"id" example:"5"`
	RequestType            string          `json:"request_type" example:"private_move"`
	RequestID              int64           `json:"request_id" example:"1"`
	SupplierID             int64           `json:"supplier_id" example:"9"`
	MovingCost             decimal.Decimal `json:"moving_cost" swaggertype:"string" example:"1000.00"`
	TruckCost              decimal.Decimal `json:"truck_cost" swaggertype:"string" example:"200.00"`
	AdditionalServicesCost decimal.Decimal `json:"additional_services_cost" swaggertype:"string" example:"100.00"`
	Status                 string          `json:"status" example:"pending"`
	OrderID                *string         `json:"order_id,omitempty" example:"private_move-1-5"`
	CreatedAt              time.Time       `json:"created_at"`
}

func NewBidResponse(bid domain.Bid) BidResponseDTO {
	return BidResponseDTO{
		ID:                     bid.ID,
		RequestType:            string(bid.RequestType),
		RequestID:              bid.RequestID,
		SupplierID:             bid.SupplierID,
		MovingCost:             bid.MovingCost,
		TruckCost:              bid.TruckCost,
		AdditionalServicesCost: bid.AdditionalServicesCost,
		Status:                 string(bid.Status),
		OrderID:                bid.OrderID,
		CreatedAt:              bid.CreatedAt.UTC(),
	}
}
