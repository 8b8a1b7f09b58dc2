package billing

import "sort"

// ApplyPayments derives the payment state of a document from its full
// payment list. The result depends only on the inputs, so recomputing on
// every fetch is safe; no partial sums are kept anywhere.
//
// History rows are produced in chronological order (date ascending, ties
// broken by payment ID) so "balance after this payment" is well defined
// even though the totals themselves are order-independent.
func ApplyPayments(totalAmount float64, payments []Payment) Balance {
	ordered := make([]Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var paid float64
	history := make([]PaymentBalance, 0, len(ordered))
	for _, p := range ordered {
		paid += p.Amount
		history = append(history, PaymentBalance{
			PaymentID:    p.ID,
			Amount:       Round2(p.Amount),
			BalanceAfter: Round2(totalAmount - paid),
		})
	}

	b := Balance{
		AmountPaid: Round2(paid),
		BalanceDue: Round2(totalAmount - paid),
		History:    history,
	}
	b.Status = statusFor(b.AmountPaid, b.BalanceDue)
	return b
}

func statusFor(amountPaid, balanceDue float64) PaymentStatus {
	switch {
	case balanceDue <= epsilon:
		return StatusPaid
	case amountPaid > epsilon:
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

// ValidatePayment checks a new payment against the document's current
// state before anything is persisted. A positive amount must not exceed
// the remaining balance; a negative amount (refund) must not push the
// cumulative amount paid below zero.
func ValidatePayment(totalAmount float64, payments []Payment, amount float64) error {
	if amount == 0 {
		return &ValidationError{Field: "amount", Message: "must not be zero"}
	}

	current := ApplyPayments(totalAmount, payments)

	if amount > 0 {
		if amount > current.BalanceDue+epsilon {
			return &OverpaymentError{Amount: amount, BalanceDue: current.BalanceDue}
		}
		return nil
	}

	if current.AmountPaid+amount < -epsilon {
		return &ValidationError{Field: "amount", Message: "refund exceeds amount paid"}
	}
	return nil
}
