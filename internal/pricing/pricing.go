// Package pricing turns a raw bid and operator commission into the chargeable
// price, the RUT deduction and the deposit/balance split. Everything here is a
// pure function of its inputs.
package pricing

import (
	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/shopspring/decimal"
)

// InsuranceFee is the fixed extra-insurance line item, in whole currency units.
const InsuranceFee = 249

// InsurancePolicy decides whether the insurance fee is charged on top of the
// final price or only reported next to it.
type InsurancePolicy int

const (
	// InsuranceInformational keeps the fee out of FinalPrice.
	InsuranceInformational InsurancePolicy = iota
	// InsuranceAdditive adds the fee to FinalPrice.
	InsuranceAdditive
)

var (
	hundred     = decimal.NewFromInt(100)
	rutRate     = decimal.NewFromFloat(0.5)
	depositRate = decimal.NewFromFloat(0.2)
	balanceRate = decimal.NewFromFloat(0.8)
)

type Input struct {
	domain.Costs
	domain.Commission
	RUTEligible    bool
	ExtraInsurance bool
}

type Quote struct {
	AdjustedMovingCost         decimal.Decimal
	AdjustedTruckCost          decimal.Decimal
	AdjustedAdditionalServices decimal.Decimal
	FinalPrice                 decimal.Decimal
	InsuranceFee               decimal.Decimal
	RUTDeduction               decimal.Decimal
	AdjustedTotalPrice         decimal.Decimal
}

type Split struct {
	AmountToPay      decimal.Decimal
	RemainingBalance decimal.Decimal
}

// ApplyCommission returns cost raised by percentage percent. A zero percentage
// returns cost unchanged.
func ApplyCommission(cost, percentage decimal.Decimal) decimal.Decimal {
	if percentage.IsZero() {
		return cost
	}
	return cost.Add(cost.Mul(percentage).Div(hundred))
}

// Price computes the full quote. Rounding to whole units happens once, on the
// summed total.
func Price(in Input, policy InsurancePolicy) Quote {
	q := Quote{
		AdjustedMovingCost:         ApplyCommission(in.MovingCost, in.MovingPricePercentage),
		AdjustedTruckCost:          ApplyCommission(in.TruckCost, in.TruckCostPercentage),
		AdjustedAdditionalServices: ApplyCommission(in.AdditionalServicesCost, in.AdditionalServicePercentage),
		InsuranceFee:               decimal.Zero,
	}

	rawTotal := q.AdjustedMovingCost.Add(q.AdjustedTruckCost).Add(q.AdjustedAdditionalServices).Round(0)
	if in.ExtraInsurance {
		q.InsuranceFee = decimal.NewFromInt(InsuranceFee)
	}

	q.FinalPrice = rawTotal
	if policy == InsuranceAdditive {
		q.FinalPrice = rawTotal.Add(q.InsuranceFee)
	}

	q.RUTDeduction = RUTDeduction(q.FinalPrice, in.RUTEligible)
	q.AdjustedTotalPrice = q.FinalPrice.Sub(q.RUTDeduction)
	return q
}

func RUTDeduction(finalPrice decimal.Decimal, eligible bool) decimal.Decimal {
	if !eligible {
		return decimal.Zero
	}
	return finalPrice.Mul(rutRate).Round(0)
}

// SplitFor divides adjustedTotal into what is due now and what remains. Before
// the initial payment the deposit is due; in any other state the balance is.
func SplitFor(adjustedTotal decimal.Decimal, status domain.PaymentStatus) Split {
	rate := balanceRate
	if status == domain.PaymentAwaitingInitial {
		rate = depositRate
	}
	toPay := adjustedTotal.Mul(rate).Round(0)
	return Split{
		AmountToPay:      toPay,
		RemainingBalance: adjustedTotal.Sub(toPay),
	}
}

// MinorUnits converts whole currency units into the gateway's minor units.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// ValidPercentage reports whether p is within 0..100.
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && !p.GreaterThan(hundred)
}
