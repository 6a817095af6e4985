package domain

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderAccepted, OrderCompleted, OrderFailed},
	OrderAccepted: {OrderCompleted, OrderFailed},
}

// CanTransitionOrder reports whether an order may move from one status to another.
// Completed and failed are terminal.
func CanTransitionOrder(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderCompleted, OrderFailed:
		return true
	}
	return false
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentAwaitingInitial: {PaymentProcessing},
	PaymentProcessing:      {PaymentCompleted, PaymentFailed},
	PaymentFailed:          {PaymentProcessing},
}

// CanTransitionPayment reports whether a payment may move from one status to another.
// The only backward move is failed -> processing; completed is terminal.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Chargeable reports whether a new charge may be started from s.
func (s PaymentStatus) Chargeable() bool {
	return s == PaymentAwaitingInitial || s == PaymentFailed
}

var disputeTransitions = map[DisputeStatus]DisputeStatus{
	DisputePending:     DisputeUnderReview,
	DisputeUnderReview: DisputeResolved,
}

func CanTransitionDispute(from, to DisputeStatus) bool {
	next, ok := disputeTransitions[from]
	return ok && next == to
}
