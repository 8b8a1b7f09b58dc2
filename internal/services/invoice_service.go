package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/cache"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/metrics"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/timeutil"
)

// InvoiceService owns the sales invoice lifecycle. All money fields on
// an invoice are computed through the billing package; nothing in the
// request body is trusted.
type InvoiceService struct {
	Repo         *repositories.InvoiceRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	PaymentRepo  *repositories.PaymentRepository
}

func NewInvoiceService(
	repo *repositories.InvoiceRepository,
	customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository,
	paymentRepo *repositories.PaymentRepository,
) *InvoiceService {
	return &InvoiceService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		PaymentRepo:  paymentRepo,
	}
}

// buildItems validates the request lines, runs the calculator and
// returns the item rows plus the document totals
func (s *InvoiceService) buildItems(ctx context.Context, inputs []models.LineItemInput) ([]models.InvoiceItem, billing.DocumentTotals, error) {
	var totals billing.DocumentTotals

	if len(inputs) == 0 {
		return nil, totals, errors.New("at least one line item is required")
	}

	lines := make([]billing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if _, err := s.ProductRepo.Get(ctx, in.ProductID); err != nil {
			return nil, totals, fmt.Errorf("product %d not found", in.ProductID)
		}
		lines = append(lines, in.ToBilling())
	}

	totals, amounts, err := billing.ComputeTotals(lines)
	if err != nil {
		return nil, totals, err
	}

	items := make([]models.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, models.InvoiceItem{
			ProductID:          in.ProductID,
			Quantity:           in.Quantity,
			UnitPrice:          in.UnitPrice,
			DiscountPercentage: in.DiscountPercentage,
			TaxRate:            in.TaxRate,
			LineTotal:          amounts[i].Total,
			LineTax:            amounts[i].Tax,
		})
	}

	return items, totals, nil
}

// CreateInvoice validates the request, computes totals server-side and
// persists the invoice with its items
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceWithDetails, error) {
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, errors.New("customer not found")
	}

	invoiceDate := timeutil.StartOfDay(timeutil.Now())
	if req.InvoiceDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.InvoiceDate)
		if err != nil {
			return nil, errors.New("invalid invoice_date, expected YYYY-MM-DD")
		}
		invoiceDate = d
	}

	dueDate := invoiceDate
	if req.DueDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
		if err != nil {
			return nil, errors.New("invalid due_date, expected YYYY-MM-DD")
		}
		dueDate = d
	}
	if dueDate.Before(invoiceDate) {
		return nil, errors.New("due_date cannot be before invoice_date")
	}

	items, totals, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		CustomerID:  req.CustomerID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Notes:       req.Notes,
	}

	if err := s.Repo.Create(ctx, invoice, items); err != nil {
		return nil, err
	}

	metrics.InvoicesCreated.Inc()
	cache.InvalidateReports(ctx)

	return s.GetInvoice(ctx, invoice.ID)
}

// GetInvoice returns the invoice with items, payment history and the
// derived balance
func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.InvoiceWithDetails, error) {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachBalance(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoiceByNumber looks an invoice up by its printed number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceWithDetails, error) {
	invoice, err := s.Repo.GetByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	if err := s.attachBalance(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// attachBalance derives amount paid, balance due, status and the
// per-payment running balance from the payments table
func (s *InvoiceService) attachBalance(ctx context.Context, invoice *models.InvoiceWithDetails) error {
	payments, err := s.PaymentRepo.ListByDocument(ctx, string(models.DocumentTypeInvoice), invoice.ID)
	if err != nil {
		return err
	}

	bp := make([]billing.Payment, 0, len(payments))
	for _, p := range payments {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}

	balance := billing.ApplyPayments(invoice.TotalAmount, bp)
	invoice.AmountPaid = balance.AmountPaid
	invoice.BalanceDue = balance.BalanceDue
	invoice.PaymentStatus = balance.Status

	history := make(map[int]float64, len(balance.History))
	for _, h := range balance.History {
		history[h.PaymentID] = h.BalanceAfter
	}

	invoice.Payments = make([]models.PaymentWithBalance, 0, len(payments))
	for _, p := range payments {
		invoice.Payments = append(invoice.Payments, models.PaymentWithBalance{
			Payment:      *p,
			BalanceAfter: history[p.ID],
		})
	}

	return nil
}

// ListInvoices returns all invoices with their derived payment state
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.InvoiceWithDetails, error) {
	invoices, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, invoice := range invoices {
		if err := s.attachBalance(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

// ListInvoicesByCustomer returns one customer's invoices with their
// derived payment state
func (s *InvoiceService) ListInvoicesByCustomer(ctx context.Context, customerID int) ([]*models.InvoiceWithDetails, error) {
	customer, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	details := make([]*models.InvoiceWithDetails, 0, len(invoices))
	for _, invoice := range invoices {
		detail := &models.InvoiceWithDetails{Invoice: *invoice, CustomerName: customer.Name}
		if err := s.attachBalance(ctx, detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}

// UpdateInvoice replaces the line items and recomputes totals. Edits
// are rejected once the new total would fall below what has already
// been paid.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id int, req *models.UpdateInvoiceRequest) (*models.InvoiceWithDetails, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	invoiceDate := existing.InvoiceDate
	if req.InvoiceDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.InvoiceDate)
		if err != nil {
			return nil, errors.New("invalid invoice_date, expected YYYY-MM-DD")
		}
		invoiceDate = d
	}

	dueDate := existing.DueDate
	if req.DueDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
		if err != nil {
			return nil, errors.New("invalid due_date, expected YYYY-MM-DD")
		}
		dueDate = d
	}
	if dueDate.Before(invoiceDate) {
		return nil, errors.New("due_date cannot be before invoice_date")
	}

	items, totals, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByDocument(ctx, string(models.DocumentTypeInvoice), id)
	if err != nil {
		return nil, err
	}
	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	if totals.TotalAmount < paid {
		return nil, fmt.Errorf("new total %.2f is below amount already paid %.2f", totals.TotalAmount, paid)
	}

	invoice := &models.Invoice{
		ID:          id,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Notes:       req.Notes,
	}

	if err := s.Repo.ReplaceItems(ctx, invoice, items); err != nil {
		return nil, err
	}

	cache.InvalidateReports(ctx)

	return s.GetInvoice(ctx, id)
}

// DeleteInvoice removes an invoice; blocked once payments exist
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}

	hasPayments, err := s.PaymentRepo.HasPayments(ctx, string(models.DocumentTypeInvoice), id)
	if err != nil {
		return err
	}
	if hasPayments {
		return &ConflictError{Message: "cannot delete invoice with recorded payments"}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateReports(ctx)
	return nil
}

// GenerateInvoicePDF renders a printable invoice
func (s *InvoiceService) GenerateInvoicePDF(ctx context.Context, id int) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Invoice Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Invoice Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", invoice.InvoiceDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", invoice.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Due: %s", invoice.DueDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	if invoice.CustomerGSTIN != "" {
		pdf.CellFormat(95, 7, fmt.Sprintf("GSTIN: %s", invoice.CustomerGSTIN), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Items table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "HSN", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Disc %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Tax %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "C", true, 0, "")

	// Items
	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		name := item.ProductName
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.DiscountPercentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.TaxRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.LineTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(160, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("Rs. %.2f", invoice.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(160, 7, "Tax", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("Rs. %.2f", invoice.TaxAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(160, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Rs. %.2f", invoice.TotalAmount), "1", 1, "R", false, 0, "")

	// Payment state
	if invoice.BalanceDue > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(160, 8, fmt.Sprintf("Balance Due (%s)", invoice.PaymentStatus), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Rs. %.2f", invoice.BalanceDue), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}
