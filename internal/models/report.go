package models

import (
	"time"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
)

// AgingRow is one outstanding document classified into an aging bucket
type AgingRow struct {
	DocumentID     int                 `json:"document_id"`
	DocumentNumber string              `json:"document_number"`
	PartyName      string              `json:"party_name"`
	DueDate        time.Time           `json:"due_date"`
	TotalAmount    float64             `json:"total_amount"`
	BalanceDue     float64             `json:"balance_due"`
	DaysOverdue    int                 `json:"days_overdue"`
	Bucket         billing.AgingBucket `json:"bucket"`
}

// AgingReport groups outstanding balances by aging bucket.
// Settled documents are excluded entirely.
type AgingReport struct {
	AsOf         time.Time                       `json:"as_of"`
	Rows         []AgingRow                      `json:"rows"`
	BucketTotals map[billing.AgingBucket]float64 `json:"bucket_totals"`
	TotalDue     float64                         `json:"total_due"`
}

// DashboardSummary is the aggregate card data for the SPA dashboard
type DashboardSummary struct {
	TotalSales          float64 `json:"total_sales"`
	TotalPurchases      float64 `json:"total_purchases"`
	TotalReceivable     float64 `json:"total_receivable"`
	TotalPayable        float64 `json:"total_payable"`
	InvoiceCount        int     `json:"invoice_count"`
	PurchaseCount       int     `json:"purchase_count"`
	CustomerCount       int     `json:"customer_count"`
	SupplierCount       int     `json:"supplier_count"`
	UnpaidInvoiceCount  int     `json:"unpaid_invoice_count"`
	UnpaidPurchaseCount int     `json:"unpaid_purchase_count"`
	CollectedThisMonth  float64 `json:"collected_this_month"`
	PaidThisMonth       float64 `json:"paid_this_month"`
}

// SalesReportRow is one invoice in a date-ranged sales report
type SalesReportRow struct {
	InvoiceID     int                   `json:"invoice_id"`
	InvoiceNumber string                `json:"invoice_number"`
	InvoiceDate   time.Time             `json:"invoice_date"`
	CustomerName  string                `json:"customer_name"`
	Subtotal      float64               `json:"subtotal"`
	TaxAmount     float64               `json:"tax_amount"`
	TotalAmount   float64               `json:"total_amount"`
	AmountPaid    float64               `json:"amount_paid"`
	BalanceDue    float64               `json:"balance_due"`
	PaymentStatus billing.PaymentStatus `json:"payment_status"`
}

// ProfitLossReport compares sales and purchases over a date range
type ProfitLossReport struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalSales     float64   `json:"total_sales"`
	TotalPurchases float64   `json:"total_purchases"`
	TaxCollected   float64   `json:"tax_collected"`
	TaxPaid        float64   `json:"tax_paid"`
	GrossProfit    float64   `json:"gross_profit"`
}
