package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/timeutil"
)

// ReportService builds the financial reports: aging, dashboard,
// sales, and profit & loss. Balances are always derived from the
// payments table at report time, never read from stored columns.
type ReportService struct {
	InvoiceRepo  *repositories.InvoiceRepository
	PurchaseRepo *repositories.PurchaseRepository
	PaymentRepo  *repositories.PaymentRepository
	CustomerRepo *repositories.CustomerRepository
	SupplierRepo *repositories.SupplierRepository
}

func NewReportService(
	invoiceRepo *repositories.InvoiceRepository,
	purchaseRepo *repositories.PurchaseRepository,
	paymentRepo *repositories.PaymentRepository,
	customerRepo *repositories.CustomerRepository,
	supplierRepo *repositories.SupplierRepository,
) *ReportService {
	return &ReportService{
		InvoiceRepo:  invoiceRepo,
		PurchaseRepo: purchaseRepo,
		PaymentRepo:  paymentRepo,
		CustomerRepo: customerRepo,
		SupplierRepo: supplierRepo,
	}
}

func (s *ReportService) balanceFor(ctx context.Context, documentType models.DocumentType, documentID int, total float64) (billing.Balance, error) {
	payments, err := s.PaymentRepo.ListByDocument(ctx, string(documentType), documentID)
	if err != nil {
		return billing.Balance{}, err
	}

	bp := make([]billing.Payment, 0, len(payments))
	for _, p := range payments {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}

	return billing.ApplyPayments(total, bp), nil
}

// ReceivablesAging classifies outstanding invoices into aging buckets
// as of the given date
func (s *ReportService) ReceivablesAging(ctx context.Context, asOf time.Time) (*models.AgingReport, error) {
	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.AgingReport{
		AsOf:         asOf,
		Rows:         []models.AgingRow{},
		BucketTotals: make(map[billing.AgingBucket]float64),
	}

	for _, invoice := range invoices {
		balance, err := s.balanceFor(ctx, models.DocumentTypeInvoice, invoice.ID, invoice.TotalAmount)
		if err != nil {
			return nil, err
		}
		if balance.Status == billing.StatusPaid {
			continue
		}

		days := billing.DaysOverdue(invoice.DueDate, asOf)
		bucket := billing.ClassifyAging(invoice.DueDate, asOf)

		report.Rows = append(report.Rows, models.AgingRow{
			DocumentID:     invoice.ID,
			DocumentNumber: invoice.InvoiceNumber,
			PartyName:      invoice.CustomerName,
			DueDate:        invoice.DueDate,
			TotalAmount:    invoice.TotalAmount,
			BalanceDue:     balance.BalanceDue,
			DaysOverdue:    days,
			Bucket:         bucket,
		})
		report.BucketTotals[bucket] = billing.Round2(report.BucketTotals[bucket] + balance.BalanceDue)
		report.TotalDue = billing.Round2(report.TotalDue + balance.BalanceDue)
	}

	return report, nil
}

// PayablesAging classifies outstanding purchases into aging buckets
// as of the given date
func (s *ReportService) PayablesAging(ctx context.Context, asOf time.Time) (*models.AgingReport, error) {
	purchases, err := s.PurchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.AgingReport{
		AsOf:         asOf,
		Rows:         []models.AgingRow{},
		BucketTotals: make(map[billing.AgingBucket]float64),
	}

	for _, purchase := range purchases {
		balance, err := s.balanceFor(ctx, models.DocumentTypePurchase, purchase.ID, purchase.TotalAmount)
		if err != nil {
			return nil, err
		}
		if balance.Status == billing.StatusPaid {
			continue
		}

		days := billing.DaysOverdue(purchase.DueDate, asOf)
		bucket := billing.ClassifyAging(purchase.DueDate, asOf)

		report.Rows = append(report.Rows, models.AgingRow{
			DocumentID:     purchase.ID,
			DocumentNumber: purchase.PurchaseNumber,
			PartyName:      purchase.SupplierName,
			DueDate:        purchase.DueDate,
			TotalAmount:    purchase.TotalAmount,
			BalanceDue:     balance.BalanceDue,
			DaysOverdue:    days,
			Bucket:         bucket,
		})
		report.BucketTotals[bucket] = billing.Round2(report.BucketTotals[bucket] + balance.BalanceDue)
		report.TotalDue = billing.Round2(report.TotalDue + balance.BalanceDue)
	}

	return report, nil
}

// Dashboard aggregates the headline numbers for the landing page
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}

	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summary.InvoiceCount = len(invoices)
	for _, invoice := range invoices {
		summary.TotalSales = billing.Round2(summary.TotalSales + invoice.TotalAmount)
		balance, err := s.balanceFor(ctx, models.DocumentTypeInvoice, invoice.ID, invoice.TotalAmount)
		if err != nil {
			return nil, err
		}
		if balance.Status != billing.StatusPaid {
			summary.UnpaidInvoiceCount++
			summary.TotalReceivable = billing.Round2(summary.TotalReceivable + balance.BalanceDue)
		}
	}

	purchases, err := s.PurchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summary.PurchaseCount = len(purchases)
	for _, purchase := range purchases {
		summary.TotalPurchases = billing.Round2(summary.TotalPurchases + purchase.TotalAmount)
		balance, err := s.balanceFor(ctx, models.DocumentTypePurchase, purchase.ID, purchase.TotalAmount)
		if err != nil {
			return nil, err
		}
		if balance.Status != billing.StatusPaid {
			summary.UnpaidPurchaseCount++
			summary.TotalPayable = billing.Round2(summary.TotalPayable + balance.BalanceDue)
		}
	}

	if summary.CustomerCount, err = s.CustomerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.SupplierCount, err = s.SupplierRepo.Count(ctx); err != nil {
		return nil, err
	}

	now := timeutil.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.IST)
	monthEnd := timeutil.EndOfDay(now)
	if summary.CollectedThisMonth, err = s.PaymentRepo.SumByDateRange(ctx, string(models.DocumentTypeInvoice), monthStart, monthEnd); err != nil {
		return nil, err
	}
	if summary.PaidThisMonth, err = s.PaymentRepo.SumByDateRange(ctx, string(models.DocumentTypePurchase), monthStart, monthEnd); err != nil {
		return nil, err
	}

	return summary, nil
}

// SalesReport lists invoices in a date range with their payment state
func (s *ReportService) SalesReport(ctx context.Context, from, to time.Time) ([]models.SalesReportRow, error) {
	invoices, err := s.InvoiceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]models.SalesReportRow, 0, len(invoices))
	for _, invoice := range invoices {
		balance, err := s.balanceFor(ctx, models.DocumentTypeInvoice, invoice.ID, invoice.TotalAmount)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.SalesReportRow{
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			InvoiceDate:   invoice.InvoiceDate,
			CustomerName:  invoice.CustomerName,
			Subtotal:      invoice.Subtotal,
			TaxAmount:     invoice.TaxAmount,
			TotalAmount:   invoice.TotalAmount,
			AmountPaid:    balance.AmountPaid,
			BalanceDue:    balance.BalanceDue,
			PaymentStatus: balance.Status,
		})
	}

	return rows, nil
}

// SalesReportCSV renders the sales report as a CSV download
func (s *ReportService) SalesReportCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	rows, err := s.SalesReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Invoice No", "Date", "Customer", "Subtotal", "Tax", "Total", "Paid", "Balance", "Status"})
	for _, row := range rows {
		w.Write([]string{
			row.InvoiceNumber,
			timeutil.FormatIST(row.InvoiceDate, timeutil.DateLayout),
			row.CustomerName,
			strconv.FormatFloat(row.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(row.TaxAmount, 'f', 2, 64),
			strconv.FormatFloat(row.TotalAmount, 'f', 2, 64),
			strconv.FormatFloat(row.AmountPaid, 'f', 2, 64),
			strconv.FormatFloat(row.BalanceDue, 'f', 2, 64),
			string(row.PaymentStatus),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ProfitLoss compares sales and purchases over a date range
func (s *ReportService) ProfitLoss(ctx context.Context, from, to time.Time) (*models.ProfitLossReport, error) {
	report := &models.ProfitLossReport{From: from, To: to}

	invoices, err := s.InvoiceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, invoice := range invoices {
		report.TotalSales = billing.Round2(report.TotalSales + invoice.TotalAmount)
		report.TaxCollected = billing.Round2(report.TaxCollected + invoice.TaxAmount)
	}

	purchases, err := s.PurchaseRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, purchase := range purchases {
		report.TotalPurchases = billing.Round2(report.TotalPurchases + purchase.TotalAmount)
		report.TaxPaid = billing.Round2(report.TaxPaid + purchase.TaxAmount)
	}

	report.GrossProfit = billing.Round2(report.TotalSales - report.TotalPurchases)

	return report, nil
}

// GenerateAgingPDF renders an aging report as a printable PDF
func (s *ReportService) GenerateAgingPDF(report *models.AgingReport, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("As of: %s", timeutil.FormatIST(report.AsOf, "02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(35, 7, "Document", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 7, "Party", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Due Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Balance", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Days Over", "1", 0, "C", true, 0, "")
	pdf.CellFormat(42, 7, "Bucket", "1", 1, "C", true, 0, "")

	// Rows
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		party := row.PartyName
		if len(party) > 32 {
			party = party[:29] + "..."
		}
		pdf.CellFormat(35, 6, row.DocumentNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, party, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, timeutil.FormatIST(row.DueDate, "02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.BalanceDue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.DaysOverdue), "1", 0, "C", false, 0, "")
		pdf.CellFormat(42, 6, string(row.Bucket), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Bucket totals
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(277, 8, "Bucket Totals", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, bucket := range []billing.AgingBucket{
		billing.AgingCurrent, billing.Aging1To30, billing.Aging31To60, billing.Aging61To90, billing.AgingOver90,
	} {
		pdf.CellFormat(100, 6, string(bucket), "1", 0, "L", false, 0, "")
		pdf.CellFormat(177, 6, fmt.Sprintf("Rs. %.2f", report.BucketTotals[bucket]), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 7, "Total Outstanding", "1", 0, "L", false, 0, "")
	pdf.CellFormat(177, 7, fmt.Sprintf("Rs. %.2f", report.TotalDue), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}
