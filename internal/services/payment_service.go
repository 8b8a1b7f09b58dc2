package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/billing"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/cache"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/metrics"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/timeutil"
)

// PaymentService records payments against invoices and purchases.
// Every write goes through the overpayment check; a payment can never
// push a document's balance below zero.
type PaymentService struct {
	Repo         *repositories.PaymentRepository
	InvoiceRepo  *repositories.InvoiceRepository
	PurchaseRepo *repositories.PurchaseRepository
}

func NewPaymentService(
	repo *repositories.PaymentRepository,
	invoiceRepo *repositories.InvoiceRepository,
	purchaseRepo *repositories.PurchaseRepository,
) *PaymentService {
	return &PaymentService{
		Repo:         repo,
		InvoiceRepo:  invoiceRepo,
		PurchaseRepo: purchaseRepo,
	}
}

// documentTotal resolves the document's computed total for the
// overpayment check
func (s *PaymentService) documentTotal(ctx context.Context, documentType models.DocumentType, documentID int) (float64, error) {
	switch documentType {
	case models.DocumentTypeInvoice:
		invoice, err := s.InvoiceRepo.Get(ctx, documentID)
		if err != nil {
			return 0, err
		}
		return invoice.TotalAmount, nil
	case models.DocumentTypePurchase:
		purchase, err := s.PurchaseRepo.Get(ctx, documentID)
		if err != nil {
			return 0, err
		}
		return purchase.TotalAmount, nil
	default:
		return 0, &billing.ValidationError{Field: "document_type", Message: "must be 'invoice' or 'purchase'"}
	}
}

// RecordPayment validates the amount against the current balance and
// persists the payment with a generated receipt number
func (s *PaymentService) RecordPayment(ctx context.Context, req *models.CreatePaymentRequest, processedByUserID int) (*models.PaymentWithBalance, error) {
	total, err := s.documentTotal(ctx, req.DocumentType, req.DocumentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListByDocument(ctx, string(req.DocumentType), req.DocumentID)
	if err != nil {
		return nil, err
	}

	bp := make([]billing.Payment, 0, len(existing))
	for _, p := range existing {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}

	if err := billing.ValidatePayment(total, bp, req.Amount); err != nil {
		var overpay *billing.OverpaymentError
		if errors.As(err, &overpay) {
			metrics.OverpaymentsRejected.Inc()
		}
		return nil, err
	}

	paymentDate := timeutil.StartOfDay(timeutil.Now())
	if req.PaymentDate != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, req.PaymentDate)
		if err != nil {
			return nil, &billing.ValidationError{Field: "payment_date", Message: "expected YYYY-MM-DD"}
		}
		paymentDate = d
	}

	payment := &models.Payment{
		DocumentType:      req.DocumentType,
		DocumentID:        req.DocumentID,
		Amount:            req.Amount,
		Method:            req.Method,
		Reference:         req.Reference,
		PaymentDate:       paymentDate,
		Notes:             req.Notes,
		ProcessedByUserID: processedByUserID,
	}

	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(req.DocumentType)).Inc()
	cache.InvalidateReports(ctx)

	// Re-apply the full history so the response carries the balance
	// after this payment
	all, err := s.Repo.ListByDocument(ctx, string(req.DocumentType), req.DocumentID)
	if err != nil {
		return nil, err
	}
	bp = bp[:0]
	for _, p := range all {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}
	balance := billing.ApplyPayments(total, bp)

	result := &models.PaymentWithBalance{Payment: *payment, BalanceAfter: balance.BalanceDue}
	for _, h := range balance.History {
		if h.PaymentID == payment.ID {
			result.BalanceAfter = h.BalanceAfter
		}
	}

	return result, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Repo.Get(ctx, id)
}

// ListPayments returns all payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.Repo.List(ctx)
}

// ListDocumentPayments returns a document's payments with running balances
func (s *PaymentService) ListDocumentPayments(ctx context.Context, documentType models.DocumentType, documentID int) ([]models.PaymentWithBalance, error) {
	total, err := s.documentTotal(ctx, documentType, documentID)
	if err != nil {
		return nil, err
	}

	payments, err := s.Repo.ListByDocument(ctx, string(documentType), documentID)
	if err != nil {
		return nil, err
	}

	bp := make([]billing.Payment, 0, len(payments))
	for _, p := range payments {
		bp = append(bp, billing.Payment{ID: p.ID, Amount: p.Amount, Date: p.PaymentDate})
	}

	balance := billing.ApplyPayments(total, bp)
	history := make(map[int]float64, len(balance.History))
	for _, h := range balance.History {
		history[h.PaymentID] = h.BalanceAfter
	}

	result := make([]models.PaymentWithBalance, 0, len(payments))
	for _, p := range payments {
		result = append(result, models.PaymentWithBalance{
			Payment:      *p,
			BalanceAfter: history[p.ID],
		})
	}

	return result, nil
}
