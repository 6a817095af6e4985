package dto

import (
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/shopspring/decimal"
)

type CheckoutResponseDTO struct {
	OrderID            string          `json:"order_id" example:"private_move-1-5"`
	TotalPrice         decimal.Decimal `json:"total_price" swaggertype:"string" example:"700"`
	AmountPaid         decimal.Decimal `json:"amount_paid" swaggertype:"string" example:"140"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance" swaggertype:"string" example:"560"`
	RUTDiscountApplied bool            `json:"rut_discount_applied"`
	RUTDeduction       decimal.Decimal `json:"rut_deduction" swaggertype:"string" example:"700"`
	PaymentStatus      string          `json:"payment_status" example:"awaiting_initial_payment"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func NewCheckoutResponse(c domain.Checkout) CheckoutResponseDTO {
	return CheckoutResponseDTO{
		OrderID:            c.OrderID,
		TotalPrice:         c.TotalPrice,
		AmountPaid:         c.AmountPaid,
		RemainingBalance:   c.RemainingBalance,
		RUTDiscountApplied: c.RUTDiscountApplied,
		RUTDeduction:       c.RUTDeduction,
		PaymentStatus:      string(c.PaymentStatus),
		UpdatedAt:          c.UpdatedAt.UTC(),
	}
}

// CheckoutBreakdownDTO is the customer view: raw and commission-adjusted costs
// next to the persisted checkout.
type CheckoutBreakdownDTO struct {
	Checkout                   CheckoutResponseDTO `json:"checkout"`
	MovingCost                 decimal.Decimal     `json:"moving_cost" swaggertype:"string" example:"1000"`
	TruckCost                  decimal.Decimal     `json:"truck_cost" swaggertype:"string" example:"200"`
	AdditionalServicesCost     decimal.Decimal     `json:"additional_services_cost" swaggertype:"string" example:"100"`
	AdjustedMovingCost         decimal.Decimal     `json:"adjusted_moving_cost" swaggertype:"string" example:"1100"`
	AdjustedTruckCost          decimal.Decimal     `json:"adjusted_truck_cost" swaggertype:"string" example:"200"`
	AdjustedAdditionalServices decimal.Decimal     `json:"adjusted_additional_services" swaggertype:"string" example:"100"`
	FinalPrice                 decimal.Decimal     `json:"final_price" swaggertype:"string" example:"1400"`
	InsuranceFee               decimal.Decimal     `json:"insurance_fee" swaggertype:"string" example:"0"`
	AdjustedTotalPrice         decimal.Decimal     `json:"adjusted_total_price" swaggertype:"string" example:"700"`
	AmountToPay                decimal.Decimal     `json:"amount_to_pay" swaggertype:"string" example:"140"`
}
