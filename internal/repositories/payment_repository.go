package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// GenerateReceiptNumber generates a unique receipt number
func (r *PaymentRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}

	return fmt.Sprintf("RCP-%06d", nextNum), nil
}

// Create records a payment against a document
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ReceiptNumber == "" {
		receiptNumber, err := r.GenerateReceiptNumber(ctx)
		if err != nil {
			return err
		}
		payment.ReceiptNumber = receiptNumber
	}

	err := r.DB.QueryRow(ctx,
		`INSERT INTO payments(receipt_number, document_type, document_id, amount, payment_date, method, reference, notes, processed_by_user_id)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		payment.ReceiptNumber, payment.DocumentType, payment.DocumentID, payment.Amount,
		payment.PaymentDate, payment.Method, payment.Reference, payment.Notes, payment.ProcessedByUserID,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// ListByDocument returns all payments for a document ordered by payment
// date then ID, the order balances are applied in
func (r *PaymentRepository) ListByDocument(ctx context.Context, documentType string, documentID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, receipt_number, document_type, document_id, amount, payment_date,
		        COALESCE(method, ''), COALESCE(reference, ''), COALESCE(notes, ''),
		        COALESCE(processed_by_user_id, 0), created_at
		 FROM payments
		 WHERE document_type = $1 AND document_id = $2
		 ORDER BY payment_date, id`, documentType, documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.ReceiptNumber, &payment.DocumentType, &payment.DocumentID,
			&payment.Amount, &payment.PaymentDate, &payment.Method, &payment.Reference,
			&payment.Notes, &payment.ProcessedByUserID, &payment.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}

// HasPayments reports whether any payment exists for a document
func (r *PaymentRepository) HasPayments(ctx context.Context, documentType string, documentID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE document_type = $1 AND document_id = $2`,
		documentType, documentID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get retrieves a payment by ID
func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	var payment models.Payment
	err := r.DB.QueryRow(ctx,
		`SELECT id, receipt_number, document_type, document_id, amount, payment_date,
		        COALESCE(method, ''), COALESCE(reference, ''), COALESCE(notes, ''),
		        COALESCE(processed_by_user_id, 0), created_at
		 FROM payments WHERE id = $1`, id,
	).Scan(&payment.ID, &payment.ReceiptNumber, &payment.DocumentType, &payment.DocumentID,
		&payment.Amount, &payment.PaymentDate, &payment.Method, &payment.Reference,
		&payment.Notes, &payment.ProcessedByUserID, &payment.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// List returns all payments, newest first
func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, receipt_number, document_type, document_id, amount, payment_date,
		        COALESCE(method, ''), COALESCE(reference, ''), COALESCE(notes, ''),
		        COALESCE(processed_by_user_id, 0), created_at
		 FROM payments ORDER BY payment_date DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.ReceiptNumber, &payment.DocumentType, &payment.DocumentID,
			&payment.Amount, &payment.PaymentDate, &payment.Method, &payment.Reference,
			&payment.Notes, &payment.ProcessedByUserID, &payment.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}

// SumByDateRange returns the total amount received within [from, to]
// for a document type, used by the dashboard summary
func (r *PaymentRepository) SumByDateRange(ctx context.Context, documentType string, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments
		 WHERE document_type = $1 AND payment_date >= $2 AND payment_date <= $3`,
		documentType, from, to,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
