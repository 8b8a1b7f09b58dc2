package models

import (
	"time"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
)

// Purchase represents a purchase bill from a supplier. Totals follow the
// same discount-before-tax computation as invoices.
type Purchase struct {
	ID             int       `json:"id"`
	PurchaseNumber string    `json:"purchase_number"`
	SupplierID     int       `json:"supplier_id"`
	PurchaseDate   time.Time `json:"purchase_date"`
	DueDate        time.Time `json:"due_date"`
	Subtotal       float64   `json:"subtotal"`
	TaxAmount      float64   `json:"tax_amount"`
	TotalAmount    float64   `json:"total_amount"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PurchaseItem represents a line item included in a purchase
type PurchaseItem struct {
	ID                 int     `json:"id"`
	PurchaseID         int     `json:"purchase_id"`
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

// CreatePurchaseRequest represents the request to record a purchase
type CreatePurchaseRequest struct {
	SupplierID   int             `json:"supplier_id"`
	PurchaseDate string          `json:"purchase_date"` // YYYY-MM-DD, defaults to today
	DueDate      string          `json:"due_date"`      // YYYY-MM-DD
	Notes        string          `json:"notes"`
	Items        []LineItemInput `json:"items"`
}

// UpdatePurchaseRequest replaces the full line-item list and recomputes totals
type UpdatePurchaseRequest struct {
	PurchaseDate string          `json:"purchase_date"`
	DueDate      string          `json:"due_date"`
	Notes        string          `json:"notes"`
	Items        []LineItemInput `json:"items"`
}

// PurchaseWithDetails includes supplier details and the derived payment state
type PurchaseWithDetails struct {
	Purchase
	SupplierName  string                `json:"supplier_name"`
	SupplierGSTIN string                `json:"supplier_gstin,omitempty"`
	Items         []PurchaseItem        `json:"items"`
	AmountPaid    float64               `json:"amount_paid"`
	BalanceDue    float64               `json:"balance_due"`
	PaymentStatus billing.PaymentStatus `json:"payment_status"`
	Payments      []PaymentWithBalance  `json:"payments,omitempty"`
}
