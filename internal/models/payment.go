package models

import "time"

// DocumentType identifies which ledger a payment settles
type DocumentType string

const (
	DocumentTypeInvoice  DocumentType = "invoice"  // receivable, customer pays us
	DocumentTypePurchase DocumentType = "purchase" // payable, we pay a supplier
)

// Payment represents a payment applied against an invoice or purchase.
// A negative amount records a refund/reversal.
type Payment struct {
	ID                int          `json:"id"`
	ReceiptNumber     string       `json:"receipt_number"`
	DocumentType      DocumentType `json:"document_type"`
	DocumentID        int          `json:"document_id"`
	Amount            float64      `json:"amount"`
	Method            string       `json:"method"`    // cash, upi, cheque, bank_transfer, razorpay
	Reference         string       `json:"reference"` // UTR / cheque number / gateway payment id
	PaymentDate       time.Time    `json:"payment_date"`
	Notes             string       `json:"notes"`
	ProcessedByUserID int          `json:"processed_by_user_id"`
	ProcessedByName   string       `json:"processed_by_name,omitempty"` // Joined from users table
	CreatedAt         time.Time    `json:"created_at"`
}

// CreatePaymentRequest represents the request to record a payment
type CreatePaymentRequest struct {
	DocumentType DocumentType `json:"document_type"`
	DocumentID   int          `json:"document_id"`
	Amount       float64      `json:"amount"`
	Method       string       `json:"method"`
	Reference    string       `json:"reference"`
	PaymentDate  string       `json:"payment_date"` // YYYY-MM-DD, defaults to today
	Notes        string       `json:"notes"`
}

// PaymentWithBalance is one payment plus the running balance after it,
// in chronological order
type PaymentWithBalance struct {
	Payment
	BalanceAfter float64 `json:"balance_after"`
}
