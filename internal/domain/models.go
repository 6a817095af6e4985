package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestType string

type RequestStatus string

const (
	RequestOpen    RequestStatus = "open"
	RequestAwarded RequestStatus = "awarded"
)

// Request is the normalized view of one row from any registered request table.
// The pair (Type, ID) is the key across all tables.
type Request struct {
	Type                 RequestType   `db:"request_type"`
	ID                   int64         `db:"id"`
	RequesterEmail       string        `db:"requester_email"`
	RequesterName        string        `db:"requester_name"`
	RequesterSSN         *string       `db:"requester_ssn"`
	PickupAddress        string        `db:"pickup_address"`
	DeliveryAddress      *string       `db:"delivery_address"`
	RequestedDate        time.Time     `db:"requested_date"`
	LatestAcceptableDate *time.Time    `db:"latest_acceptable_date"`
	RUTEligible          bool          `db:"rut_eligible"`
	ExtraInsurance       bool          `db:"extra_insurance"`
	Status               RequestStatus `db:"status"`
	CreatedAt            time.Time     `db:"created_at"`
}

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidApproved BidStatus = "approved"
	BidRejected BidStatus = "rejected"
)

// Costs are the raw supplier-entered amounts of a bid.
type Costs struct {
	MovingCost             decimal.Decimal `db:"moving_cost"`
	TruckCost              decimal.Decimal `db:"truck_cost"`
	AdditionalServicesCost decimal.Decimal `db:"additional_services_cost"`
}

type Bid struct {
	ID          int64       `db:"id"`
	RequestType RequestType `db:"request_type"`
	RequestID   int64       `db:"request_id"`
	SupplierID  int64       `db:"supplier_id"`
	Costs
	Status    BidStatus `db:"status"`
	OrderID   *string   `db:"order_id"`
	CreatedAt time.Time `db:"created_at"`
}

type PaymentStatus string

const (
	PaymentAwaitingInitial PaymentStatus = "awaiting_initial_payment"
	PaymentProcessing      PaymentStatus = "processing"
	PaymentCompleted       PaymentStatus = "completed"
	PaymentFailed          PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
)

// Commission holds the operator-chosen percentages, each in 0..100.
type Commission struct {
	MovingPricePercentage       decimal.Decimal `db:"moving_price_percentage"`
	AdditionalServicePercentage decimal.Decimal `db:"additional_service_percentage"`
	TruckCostPercentage         decimal.Decimal `db:"truck_cost_percentage"`
}

// Order is an approved bid together with its commission inputs and lifecycle.
type Order struct {
	OrderID      string          `db:"order_id"`
	BidID        int64           `db:"bid_id"`
	RequestType  RequestType     `db:"request_type"`
	RequestID    int64           `db:"request_id"`
	SupplierID   int64           `db:"supplier_id"`
	FinalPrice   decimal.Decimal `db:"final_price"`
	InsuranceFee decimal.Decimal `db:"insurance_fee"`
	Commission
	PaymentStatus      PaymentStatus `db:"payment_status"`
	OrderStatus        OrderStatus   `db:"order_status"`
	PaymentIntentID    *string       `db:"payment_intent_id"`
	CustomerRejected   bool          `db:"customer_rejected"`
	CustomerRejectedAt *time.Time    `db:"customer_rejected_at"`
	EscrowReleaseDate  time.Time     `db:"escrow_release_date"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

// OrderDetails joins an order with the bid and request it was created from.
type OrderDetails struct {
	Order   Order
	Bid     Bid
	Request Request
}

type Checkout struct {
	ID                 int64           `db:"id"`
	OrderID            string          `db:"order_id"`
	TotalPrice         decimal.Decimal `db:"total_price"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	RemainingBalance   decimal.Decimal `db:"remaining_balance"`
	RUTDiscountApplied bool            `db:"rut_discount_applied"`
	RUTDeduction       decimal.Decimal `db:"rut_deduction"`
	PaymentStatus      PaymentStatus   `db:"payment_status"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

type IntentStatus string

const (
	IntentCreated    IntentStatus = "created"
	IntentProcessing IntentStatus = "processing"
	IntentSucceeded  IntentStatus = "succeeded"
	IntentFailed     IntentStatus = "failed"
)

type PaymentIntent struct {
	ID               int64        `db:"id"`
	OrderID          string       `db:"order_id"`
	IdempotencyKey   string       `db:"idempotency_key"`
	GatewayIntentID  *string      `db:"gateway_intent_id"`
	AmountMinorUnits int64        `db:"amount_minor_units"`
	Currency         string       `db:"currency"`
	Status           IntentStatus `db:"status"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

type DisputeStatus string

const (
	DisputePending     DisputeStatus = "pending"
	DisputeUnderReview DisputeStatus = "under_review"
	DisputeResolved    DisputeStatus = "resolved"
)

type Dispute struct {
	ID             int64         `db:"id"`
	OrderID        *string       `db:"order_id"`
	RequestType    *RequestType  `db:"request_type"`
	RequestID      *int64        `db:"request_id"`
	RequesterEmail string        `db:"requester_email"`
	Category       string        `db:"category"`
	Description    string        `db:"description"`
	AttachmentKeys []string      `db:"attachment_keys"`
	Status         DisputeStatus `db:"status"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

// CustomerPIN is the hashed order-confirmation PIN of one customer.
type CustomerPIN struct {
	Email     string    `db:"email"`
	PinHash   string    `db:"pin_hash"`
	UpdatedAt time.Time `db:"updated_at"`
}
