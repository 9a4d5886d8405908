// Package metrics provides pure numeric transforms used for listing
// display and the mortgage calculator.  All functions are stateless;
// precondition violations are reported as ErrInvalidInput and never
// panic.
package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a metric precondition is violated
// (non-positive area or principal, negative rate, zero term).
var ErrInvalidInput = errors.New("invalid input")

// Price delta directions.
const (
	DirectionIncrease  = "increase"
	DirectionDecrease  = "decrease"
	DirectionUnchanged = "unchanged"
)

// PricePerArea returns price divided by area.  Area must be positive.
func PricePerArea(price, area float64) (float64, error) {
	if area <= 0 {
		return 0, fmt.Errorf("%w: area must be positive, got %v", ErrInvalidInput, area)
	}
	return price / area, nil
}

// PriceDelta returns the difference between a new and an old price and
// the direction of the change.
func PriceDelta(oldPrice, newPrice float64) (float64, string) {
	delta := newPrice - oldPrice
	switch {
	case delta > 0:
		return delta, DirectionIncrease
	case delta < 0:
		return delta, DirectionDecrease
	}
	return 0, DirectionUnchanged
}

// MonthlyPayment computes the fixed monthly payment for an amortized
// loan: r = annualRatePercent/100/12, n = termYears*12, payment =
// principal*r*(1+r)^n / ((1+r)^n - 1).  A zero rate degenerates to
// principal/n.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) (float64, error) {
	if principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, principal)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("%w: term must be positive, got %d years", ErrInvalidInput, termYears)
	}
	if annualRatePercent < 0 {
		return 0, fmt.Errorf("%w: rate must not be negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	n := float64(termYears * 12)
	if annualRatePercent == 0 {
		return principal / n, nil
	}
	r := annualRatePercent / 100 / 12
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1), nil
}

// LoanSummary aggregates the calculator results shown next to the
// mortgage form: the monthly payment, the total amount paid over the
// term and the interest share of it.
type LoanSummary struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}

// Summarize computes a LoanSummary for the given loan parameters.
func Summarize(principal, annualRatePercent float64, termYears int) (LoanSummary, error) {
	monthly, err := MonthlyPayment(principal, annualRatePercent, termYears)
	if err != nil {
		return LoanSummary{}, err
	}
	total := monthly * float64(termYears*12)
	return LoanSummary{
		Principal:      principal,
		MonthlyPayment: monthly,
		TotalPaid:      total,
		TotalInterest:  total - principal,
	}, nil
}
