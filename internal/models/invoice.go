package models

import (
	"time"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
)

// Invoice represents a sales invoice with computed totals.
// Subtotal, tax and total are computed once at create/edit time;
// amount paid and balance are always derived from the payments table.
type Invoice struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    int       `json:"customer_id"`
	InvoiceDate   time.Time `json:"invoice_date"`
	DueDate       time.Time `json:"due_date"`
	Subtotal      float64   `json:"subtotal"`
	TaxAmount     float64   `json:"tax_amount"`
	TotalAmount   float64   `json:"total_amount"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InvoiceItem represents a line item included in an invoice
type InvoiceItem struct {
	ID                 int     `json:"id"`
	InvoiceID          int     `json:"invoice_id"`
	ProductID          int     `json:"product_id"`
	ProductName        string  `json:"product_name,omitempty"` // Joined from products table
	HSNCode            string  `json:"hsn_code,omitempty"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TaxRate            float64 `json:"tax_rate"`
	LineTotal          float64 `json:"line_total"`
	LineTax            float64 `json:"line_tax"`
}

// LineItemInput is the validated request shape for one document line
type LineItemInput struct {
	ProductID          int     `json:"product_id"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TaxRate            float64 `json:"tax_rate"`
}

// ToBilling converts the request line to a calculator input
func (l LineItemInput) ToBilling() billing.LineItem {
	return billing.LineItem{
		ProductID:       l.ProductID,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		DiscountPercent: l.DiscountPercentage,
		TaxRate:         l.TaxRate,
	}
}

// CreateInvoiceRequest represents the request to create an invoice.
// Totals in the request body are ignored; the server computes them.
type CreateInvoiceRequest struct {
	CustomerID  int             `json:"customer_id"`
	InvoiceDate string          `json:"invoice_date"` // YYYY-MM-DD, defaults to today
	DueDate     string          `json:"due_date"`     // YYYY-MM-DD
	Notes       string          `json:"notes"`
	Items       []LineItemInput `json:"items"`
}

// UpdateInvoiceRequest replaces the full line-item list and recomputes totals
type UpdateInvoiceRequest struct {
	InvoiceDate string          `json:"invoice_date"`
	DueDate     string          `json:"due_date"`
	Notes       string          `json:"notes"`
	Items       []LineItemInput `json:"items"`
}

// InvoiceWithDetails includes customer details and the derived payment state
type InvoiceWithDetails struct {
	Invoice
	CustomerName  string                `json:"customer_name"`
	CustomerGSTIN string                `json:"customer_gstin,omitempty"`
	Items         []InvoiceItem         `json:"items"`
	AmountPaid    float64               `json:"amount_paid"`
	BalanceDue    float64               `json:"balance_due"`
	PaymentStatus billing.PaymentStatus `json:"payment_status"`
	Payments      []PaymentWithBalance  `json:"payments,omitempty"`
}
