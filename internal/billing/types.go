package billing

import "time"

// PaymentStatus is derived from a document's payments, never stored.
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "Unpaid"
	StatusPartiallyPaid PaymentStatus = "Partially Paid"
	StatusPaid          PaymentStatus = "Paid"
)

// AgingBucket classifies an outstanding balance by days past due
type AgingBucket string

const (
	AgingCurrent AgingBucket = "current"
	Aging1To30   AgingBucket = "1-30"
	Aging31To60  AgingBucket = "31-60"
	Aging61To90  AgingBucket = "61-90"
	AgingOver90  AgingBucket = "90+"
)

// LineItem is the calculator input for a single invoice or purchase line
type LineItem struct {
	ProductID       int     `json:"product_id"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percentage"`
	TaxRate         float64 `json:"tax_rate"`
}

// LineAmounts holds the computed amounts for one line item
type LineAmounts struct {
	Total float64 `json:"line_total"`
	Tax   float64 `json:"line_tax"`
}

// DocumentTotals holds the aggregate amounts for a document.
// Invariant: TotalAmount = Subtotal + TaxAmount after rounding.
type DocumentTotals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// Payment is the calculator input for one recorded payment.
// A negative amount models a refund/reversal.
type Payment struct {
	ID     int
	Amount float64
	Date   time.Time
}

// PaymentBalance is one row of the running-balance history display
type PaymentBalance struct {
	PaymentID    int     `json:"payment_id"`
	Amount       float64 `json:"amount"`
	BalanceAfter float64 `json:"balance_after"`
}

// Balance is the derived payment state of a document
type Balance struct {
	AmountPaid float64          `json:"amount_paid"`
	BalanceDue float64          `json:"balance_due"`
	Status     PaymentStatus    `json:"payment_status"`
	History    []PaymentBalance `json:"history,omitempty"`
}
