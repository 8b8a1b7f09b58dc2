// Package billing implements the ledger calculator shared by invoices
// (receivables) and purchases (payables): line-item and document totals,
// payment application with running balances, and aging classification.
//
// All functions are pure. Amounts are float64 rupee values; rounding to two
// decimals happens once, on final aggregates and display values, never on
// intermediate line terms. Discount is applied before tax on every line.
package billing

import "math"

// Round2 rounds to two decimals, half away from zero. This is the single
// rounding policy for the whole application.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// epsilon for comparing rounded currency amounts (half a paisa)
const epsilon = 0.005

// ValidateLineItem checks a line item before any computation or persistence
func ValidateLineItem(item LineItem) error {
	if item.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}
	if item.UnitPrice < 0 {
		return &ValidationError{Field: "unit_price", Message: "must not be negative"}
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
		return &ValidationError{Field: "discount_percentage", Message: "must be between 0 and 100"}
	}
	if item.TaxRate < 0 || item.TaxRate > 100 {
		return &ValidationError{Field: "tax_rate", Message: "must be between 0 and 100"}
	}
	return nil
}

// ComputeLine computes the unrounded total and tax for one line item
func ComputeLine(item LineItem) (LineAmounts, error) {
	if err := ValidateLineItem(item); err != nil {
		return LineAmounts{}, err
	}

	total := item.UnitPrice * float64(item.Quantity) * (1 - item.DiscountPercent/100)
	tax := total * item.TaxRate / 100

	return LineAmounts{Total: total, Tax: tax}, nil
}

// ComputeTotals computes document aggregates from an ordered line-item list.
// Any invalid item fails the whole computation; nothing is partially summed.
func ComputeTotals(items []LineItem) (DocumentTotals, []LineAmounts, error) {
	lines := make([]LineAmounts, 0, len(items))

	var subtotal, taxAmount float64
	for _, item := range items {
		amounts, err := ComputeLine(item)
		if err != nil {
			return DocumentTotals{}, nil, err
		}
		subtotal += amounts.Total
		taxAmount += amounts.Tax
		lines = append(lines, LineAmounts{Total: Round2(amounts.Total), Tax: Round2(amounts.Tax)})
	}

	totals := DocumentTotals{
		Subtotal:  Round2(subtotal),
		TaxAmount: Round2(taxAmount),
	}
	totals.TotalAmount = Round2(totals.Subtotal + totals.TaxAmount)

	return totals, lines, nil
}
