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

// PurchaseService owns the purchase bill lifecycle. Same calculator as
// invoices, opposite direction of money.
type PurchaseService struct {
	Repo         *repositories.PurchaseRepository
	SupplierRepo *repositories.SupplierRepository
	ProductRepo  *repositories.ProductRepository
	PaymentRepo  *repositories.PaymentRepository
}

func NewPurchaseService(
	repo *repositories.PurchaseRepository,
	supplierRepo *repositories.SupplierRepository,
	productRepo *repositories.ProductRepository,
	paymentRepo *repositories.PaymentRepository,
) *PurchaseService {
	return &PurchaseService{
		Repo:         repo,
		SupplierRepo: supplierRepo,
		ProductRepo:  productRepo,
		PaymentRepo:  paymentRepo,
	}
}

func (s *PurchaseService) buildItems(ctx context.Context, inputs []models.LineItemInput) ([]models.PurchaseItem, billing.DocumentTotals, error) {
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

	items := make([]models.PurchaseItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, models.PurchaseItem{
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

// CreatePurchase validates the request, computes totals server-side and
// persists the purchase with its items
func (s *PurchaseService) CreatePurchase(ctx context.Context, req *models.CreatePurchaseRequest) (*models.PurchaseWithDetails, error) {
	if _, err := s.SupplierRepo.Get(ctx, req.SupplierID); err != nil {
		return nil, errors.New("supplier not found")
	}

	purchaseDate := timeutil.StartOfDay(timeutil.Now())
	if req.PurchaseDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.PurchaseDate)
		if err != nil {
			return nil, errors.New("invalid purchase_date, expected YYYY-MM-DD")
		}
		purchaseDate = d
	}

	dueDate := purchaseDate
	if req.DueDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
		if err != nil {
			return nil, errors.New("invalid due_date, expected YYYY-MM-DD")
		}
		dueDate = d
	}
	if dueDate.Before(purchaseDate) {
		return nil, errors.New("due_date cannot be before purchase_date")
	}

	items, totals, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		SupplierID:   req.SupplierID,
		PurchaseDate: purchaseDate,
		DueDate:      dueDate,
		Subtotal:     totals.Subtotal,
		TaxAmount:    totals.TaxAmount,
		TotalAmount:  totals.TotalAmount,
		Notes:        req.Notes,
	}

	if err := s.Repo.Create(ctx, purchase, items); err != nil {
		return nil, err
	}

	metrics.PurchasesCreated.Inc()
	cache.InvalidateReports(ctx)

	return s.GetPurchase(ctx, purchase.ID)
}

// GetPurchase returns the purchase with items, payment history and the
// derived balance
func (s *PurchaseService) GetPurchase(ctx context.Context, id int) (*models.PurchaseWithDetails, error) {
	purchase, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachBalance(ctx, purchase); err != nil {
		return nil, err
	}

	return purchase, nil
}

func (s *PurchaseService) attachBalance(ctx context.Context, purchase *models.PurchaseWithDetails) error {
	payments, err := s.PaymentRepo.ListByDocument(ctx, string(models.DocumentTypePurchase), purchase.ID)
	if err != nil {
		return err
	}

	bp := make([]billing.Payment, 0, len(payments))
	for _, p := range payments {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}

	balance := billing.ApplyPayments(purchase.TotalAmount, bp)
	purchase.AmountPaid = balance.AmountPaid
	purchase.BalanceDue = balance.BalanceDue
	purchase.PaymentStatus = balance.Status

	history := make(map[int]float64, len(balance.History))
	for _, h := range balance.History {
		history[h.PaymentID] = h.BalanceAfter
	}

	purchase.Payments = make([]models.PaymentWithBalance, 0, len(payments))
	for _, p := range payments {
		purchase.Payments = append(purchase.Payments, models.PaymentWithBalance{
			Payment:      *p,
			BalanceAfter: history[p.ID],
		})
	}

	return nil
}

// ListPurchases returns all purchases with their derived payment state
func (s *PurchaseService) ListPurchases(ctx context.Context) ([]*models.PurchaseWithDetails, error) {
	purchases, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, purchase := range purchases {
		if err := s.attachBalance(ctx, purchase); err != nil {
			return nil, err
		}
	}

	return purchases, nil
}

// UpdatePurchase replaces the line items and recomputes totals
func (s *PurchaseService) UpdatePurchase(ctx context.Context, id int, req *models.UpdatePurchaseRequest) (*models.PurchaseWithDetails, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	purchaseDate := existing.PurchaseDate
	if req.PurchaseDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.PurchaseDate)
		if err != nil {
			return nil, errors.New("invalid purchase_date, expected YYYY-MM-DD")
		}
		purchaseDate = d
	}

	dueDate := existing.DueDate
	if req.DueDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.DueDate)
		if err != nil {
			return nil, errors.New("invalid due_date, expected YYYY-MM-DD")
		}
		dueDate = d
	}
	if dueDate.Before(purchaseDate) {
		return nil, errors.New("due_date cannot be before purchase_date")
	}

	items, totals, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByDocument(ctx, string(models.DocumentTypePurchase), id)
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

	purchase := &models.Purchase{
		ID:           id,
		PurchaseDate: purchaseDate,
		DueDate:      dueDate,
		Subtotal:     totals.Subtotal,
		TaxAmount:    totals.TaxAmount,
		TotalAmount:  totals.TotalAmount,
		Notes:        req.Notes,
	}

	if err := s.Repo.ReplaceItems(ctx, purchase, items); err != nil {
		return nil, err
	}

	cache.InvalidateReports(ctx)

	return s.GetPurchase(ctx, id)
}

// GeneratePurchasePDF renders a printable purchase bill
func (s *PurchaseService) GeneratePurchasePDF(ctx context.Context, id int) ([]byte, error) {
	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "PURCHASE BILL", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Bill Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Purchase Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Purchase No: %s", purchase.PurchaseNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", purchase.PurchaseDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Supplier: %s", purchase.SupplierName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Due: %s", purchase.DueDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	if purchase.SupplierGSTIN != "" {
		pdf.CellFormat(95, 7, fmt.Sprintf("GSTIN: %s", purchase.SupplierGSTIN), "LB", 0, "L", false, 0, "")
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
	for _, item := range purchase.Items {
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
	pdf.CellFormat(30, 7, fmt.Sprintf("Rs. %.2f", purchase.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(160, 7, "Tax", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("Rs. %.2f", purchase.TaxAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(160, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Rs. %.2f", purchase.TotalAmount), "1", 1, "R", false, 0, "")

	// Payment state
	if purchase.BalanceDue > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(160, 8, fmt.Sprintf("Balance Due (%s)", purchase.PaymentStatus), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Rs. %.2f", purchase.BalanceDue), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// DeletePurchase removes a purchase; blocked once payments exist
func (s *PurchaseService) DeletePurchase(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}

	hasPayments, err := s.PaymentRepo.HasPayments(ctx, string(models.DocumentTypePurchase), id)
	if err != nil {
		return err
	}
	if hasPayments {
		return &ConflictError{Message: "cannot delete purchase with recorded payments"}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateReports(ctx)
	return nil
}
