// Package finance computes invoice amounts from a task's billing fields.
package finance

import (
	"fmt"
	"math"
)

// Totals holds the computed amounts for an invoice line.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Compute derives invoice totals: the subtotal is the service rate, tax is
// applied to the discounted subtotal, and the total is the discounted
// subtotal plus tax. Amounts are kept at full precision; rounding happens
// only at display time via FormatAmount.
func Compute(serviceRate, discountAmount, taxPercent float64) Totals {
	subtotal := serviceRate
	taxable := subtotal - discountAmount
	taxAmount := taxable * taxPercent / 100

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     taxable + taxAmount,
	}
}

// Round2 rounds an amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders an amount with its currency for display,
// always at two decimal places.
func FormatAmount(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", Round2(v), currency)
}
