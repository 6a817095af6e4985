// Package settlement assembles pricing results into persisted checkout rows and
// escrow dates for a concrete order.
package settlement

import (
	"fmt"
	"time"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/internal/pricing"
	"github.com/GlebRadaev/movebroker/pkg/validate"
)

// RUTEligible is true only when the request asks for RUT and carries a valid personnummer.
func RUTEligible(req *domain.Request) bool {
	return req.RUTEligible && req.RequesterSSN != nil && validate.IsPersonnummer(*req.RequesterSSN)
}

// Quote prices bid for req. The RUT flag passed to pricing is the request's
// rut_eligible AND-ed with RUTEligible's personnummer check, so a request that
// asks for RUT without a valid personnummer is priced with no deduction.
func Quote(bid *domain.Bid, commission domain.Commission, req *domain.Request, policy pricing.InsurancePolicy) pricing.Quote {
	return pricing.Price(pricing.Input{
		Costs:          bid.Costs,
		Commission:     commission,
		RUTEligible:    RUTEligible(req),
		ExtraInsurance: req.ExtraInsurance,
	}, policy)
}

// stage maps a payment status to the split it is billed at. A failed deposit is due again.
func stage(status domain.PaymentStatus) domain.PaymentStatus {
	if status == domain.PaymentFailed {
		return domain.PaymentAwaitingInitial
	}
	return status
}

// AmountDue is what a new charge from status collects.
func AmountDue(q pricing.Quote, status domain.PaymentStatus) pricing.Split {
	return pricing.SplitFor(q.AdjustedTotalPrice, stage(status))
}

// Checkout builds the checkout row of orderID at the given payment status.
func Checkout(orderID string, q pricing.Quote, status domain.PaymentStatus) (*domain.Checkout, error) {
	split := AmountDue(q, status)
	checkout := &domain.Checkout{
		OrderID:            orderID,
		TotalPrice:         q.AdjustedTotalPrice,
		AmountPaid:         split.AmountToPay,
		RemainingBalance:   split.RemainingBalance,
		RUTDiscountApplied: q.RUTDeduction.IsPositive(),
		RUTDeduction:       q.RUTDeduction,
		PaymentStatus:      status,
	}
	if err := Check(checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Check verifies amount_paid + remaining_balance == total_price.
func Check(c *domain.Checkout) error {
	if !c.AmountPaid.Add(c.RemainingBalance).Equal(c.TotalPrice) {
		return fmt.Errorf("%w: checkout %s: %s + %s != %s", domain.ErrInvariant,
			c.OrderID, c.AmountPaid, c.RemainingBalance, c.TotalPrice)
	}
	return nil
}

// EscrowReleaseDate is the latest acceptable date, or the requested date when
// there is none, plus holdDays.
func EscrowReleaseDate(req *domain.Request, holdDays int) time.Time {
	base := req.RequestedDate
	if req.LatestAcceptableDate != nil {
		base = *req.LatestAcceptableDate
	}
	return base.AddDate(0, 0, holdDays).UTC()
}

// Releasable reports whether escrowed funds of order may go to the supplier at now.
func Releasable(order *domain.Order, now time.Time) bool {
	return order.PaymentStatus == domain.PaymentCompleted && !now.Before(order.EscrowReleaseDate)
}
