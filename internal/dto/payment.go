package dto

type InitiatePaymentRequestDTO struct {
	BidID            int64  `json:"bid_id" example:"5"`
	PayerEmail       string `json:"payer_email" example:"anna@example.se"`
	PaymentMethodRef string `json:"payment_method_ref" example:"pm_card_visa"`
}

type InitiatePaymentResponseDTO struct {
	OrderID          string `json:"order_id" example:"private_move-1-5"`
	IntentID         string `json:"intent_id" example:"pi_3MtwBw"`
	ClientSecret     string `json:"client_secret" example:"pi_3MtwBw_secret_YrKJ"`
	AmountMinorUnits int64  `json:"amount" example:"14000"`
	Currency         string `json:"currency" example:"sek"`
	PaymentStatus    string `json:"payment_status" example:"processing"`
}

type PaymentStatusResponseDTO struct {
	OrderID       string `json:"order_id" example:"private_move-1-5"`
	PaymentStatus string `json:"payment_status" example:"completed"`
}
