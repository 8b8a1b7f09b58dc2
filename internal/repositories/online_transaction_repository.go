package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

// Create records a new gateway order before handing checkout to the payer
func (r *OnlineTransactionRepository) Create(ctx context.Context, tx *models.OnlineTransaction) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(razorpay_order_id, invoice_id, customer_id, amount, status)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		tx.RazorpayOrderID, tx.InvoiceID, tx.CustomerID, tx.Amount, models.OnlineTxStatusPending,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create online transaction: %w", err)
	}

	tx.Status = models.OnlineTxStatusPending
	return nil
}

// GetByOrderID retrieves a transaction by Razorpay order ID with customer details
func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	var tx models.OnlineTransaction
	err := r.DB.QueryRow(ctx,
		`SELECT t.id, t.razorpay_order_id, COALESCE(t.razorpay_payment_id, ''), COALESCE(t.razorpay_signature, ''),
		        t.invoice_id, t.customer_id, COALESCE(c.name, ''), COALESCE(c.phone, ''),
		        t.amount, t.status, COALESCE(t.failure_reason, ''), t.payment_id, t.created_at, t.updated_at
		 FROM online_transactions t
		 LEFT JOIN customers c ON t.customer_id = c.id
		 WHERE t.razorpay_order_id = $1`, orderID,
	).Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.RazorpaySignature,
		&tx.InvoiceID, &tx.CustomerID, &tx.CustomerName, &tx.CustomerPhone,
		&tx.Amount, &tx.Status, &tx.FailureReason, &tx.PaymentID, &tx.CreatedAt, &tx.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// UpdatePaymentSuccess stores the gateway payment details after signature
// verification and links the captured ledger payment
func (r *OnlineTransactionRepository) UpdatePaymentSuccess(ctx context.Context, orderID, paymentID, signature string, ledgerPaymentID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
		 SET razorpay_payment_id=$1, razorpay_signature=$2, status=$3, payment_id=$4, updated_at=NOW()
		 WHERE razorpay_order_id=$5`,
		paymentID, signature, models.OnlineTxStatusSuccess, ledgerPaymentID, orderID,
	)
	return err
}

// UpdatePaymentFailed marks a gateway attempt as failed
func (r *OnlineTransactionRepository) UpdatePaymentFailed(ctx context.Context, orderID, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
		 SET status=$1, failure_reason=$2, updated_at=NOW()
		 WHERE razorpay_order_id=$3`,
		models.OnlineTxStatusFailed, reason, orderID,
	)
	return err
}

// ListByInvoice returns all gateway attempts for an invoice, newest first
func (r *OnlineTransactionRepository) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.OnlineTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT t.id, t.razorpay_order_id, COALESCE(t.razorpay_payment_id, ''), COALESCE(t.razorpay_signature, ''),
		        t.invoice_id, t.customer_id, COALESCE(c.name, ''), COALESCE(c.phone, ''),
		        t.amount, t.status, COALESCE(t.failure_reason, ''), t.payment_id, t.created_at, t.updated_at
		 FROM online_transactions t
		 LEFT JOIN customers c ON t.customer_id = c.id
		 WHERE t.invoice_id = $1 ORDER BY t.created_at DESC`, invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*models.OnlineTransaction
	for rows.Next() {
		var tx models.OnlineTransaction
		err := rows.Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.RazorpaySignature,
			&tx.InvoiceID, &tx.CustomerID, &tx.CustomerName, &tx.CustomerPhone,
			&tx.Amount, &tx.Status, &tx.FailureReason, &tx.PaymentID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}

	return txs, nil
}
