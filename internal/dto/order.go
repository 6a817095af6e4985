package dto

import (
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/shopspring/decimal"
)

type ApproveBidRequestDTO struct {
	MovingPricePercentage       decimal.Decimal `json:"moving_price_percentage" swaggertype:"string" example:"10"`
	AdditionalServicePercentage decimal.Decimal `json:"additional_service_percentage" swaggertype:"string" example:"0"`
	TruckCostPercentage         decimal.Decimal `json:"truck_cost_percentage" swaggertype:"string" example:"0"`
}

type ApproveBidResponseDTO struct {
	Order    OrderResponseDTO    `json:"order"`
	Checkout CheckoutResponseDTO `json:"checkout"`
}

type OrderResponseDTO struct {
	OrderID                     string          `json:"order_id" example:"private_move-1-5"`
	BidID                       int64           `json:"bid_id" example:"5"`
	RequestType                 string          `json:"request_type" example:"private_move"`
	RequestID                   int64           `json:"request_id" example:"1"`
	SupplierID                  int64           `json:"supplier_id" example:"9"`
	FinalPrice                  decimal.Decimal `json:"final_price" swaggertype:"string" example:"1400"`
	InsuranceFee                decimal.Decimal `json:"insurance_fee" swaggertype:"string" example:"0"`
	MovingPricePercentage       decimal.Decimal `json:"moving_price_percentage" swaggertype:"string" example:"10"`
	AdditionalServicePercentage decimal.Decimal `json:"additional_service_percentage" swaggertype:"string" example:"0"`
	TruckCostPercentage         decimal.Decimal `json:"truck_cost_percentage" swaggertype:"string" example:"0"`
	PaymentStatus               string          `json:"payment_status" example:"awaiting_initial_payment"`
	OrderStatus                 string          `json:"order_status" example:"pending"`
	CustomerRejected            bool            `json:"customer_rejected"`
	EscrowReleaseDate           time.Time       `json:"escrow_release_date"`
	CreatedAt                   time.Time       `json:"created_at"`
}

func NewOrderResponse(order domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		OrderID:                     order.OrderID,
		BidID:                       order.BidID,
		RequestType:                 string(order.RequestType),
		RequestID:                   order.RequestID,
		SupplierID:                  order.SupplierID,
		FinalPrice:                  order.FinalPrice,
		InsuranceFee:                order.InsuranceFee,
		MovingPricePercentage:       order.MovingPricePercentage,
		AdditionalServicePercentage: order.AdditionalServicePercentage,
		TruckCostPercentage:         order.TruckCostPercentage,
		PaymentStatus:               string(order.PaymentStatus),
		OrderStatus:                 string(order.OrderStatus),
		CustomerRejected:            order.CustomerRejected,
		EscrowReleaseDate:           order.EscrowReleaseDate.UTC(),
		CreatedAt:                   order.CreatedAt.UTC(),
	}
}

type SetPinRequestDTO struct {
	Pin string `json:"pin" example:"1234"`
}

type UpdateOrderStatusRequestDTO struct {
	OrderID string `json:"order_id" example:"private_move-1-5"`
	Pin     string `json:"pin" example:"1234"`
	Status  string `json:"status" example:"accepted"`
}

type OperatorOrderStatusRequestDTO struct {
	Status string `json:"status" example:"completed"`
}

type EscrowResponseDTO struct {
	OrderID       string    `json:"order_id" example:"private_move-1-5"`
	PaymentStatus string    `json:"payment_status" example:"completed"`
	ReleaseDate   time.Time `json:"release_date"`
	Releasable    bool      `json:"releasable"`
}
