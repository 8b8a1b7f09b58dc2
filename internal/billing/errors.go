package billing

import "fmt"

// ValidationError reports a malformed line item or payment amount.
// Field names the offending input so the API layer can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// OverpaymentError reports a payment that exceeds the remaining balance
type OverpaymentError struct {
	Amount     float64
	BalanceDue float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount %.2f exceeds balance due %.2f", e.Amount, e.BalanceDue)
}
