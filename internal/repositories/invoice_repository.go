package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// GenerateInvoiceNumber generates a unique invoice number
func (r *InvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	// Database sequence keeps numbering O(1) and gap-free under concurrency
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}

	return fmt.Sprintf("INV-%06d", nextNum), nil
}

// Create creates a new invoice with items in a single transaction
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if invoice.InvoiceNumber == "" {
		invoiceNumber, err := r.GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = invoiceNumber
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, customer_id, invoice_date, due_date, subtotal, tax_amount, total_amount, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		invoice.InvoiceNumber, invoice.CustomerID, invoice.InvoiceDate, invoice.DueDate,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount, invoice.Notes,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)

	if err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO invoice_items(invoice_id, product_id, quantity, unit_price, discount_percentage, tax_rate, line_total, line_tax)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			invoice.ID, item.ProductID, item.Quantity, item.UnitPrice,
			item.DiscountPercentage, item.TaxRate, item.LineTotal, item.LineTax,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceItems replaces an invoice's line items and updates its totals
// in one transaction (full line-item replace on edit)
func (r *InvoiceRepository) ReplaceItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE invoices
		 SET invoice_date=$1, due_date=$2, subtotal=$3, tax_amount=$4, total_amount=$5, notes=$6, updated_at=NOW()
		 WHERE id=$7
		 RETURNING updated_at`,
		invoice.InvoiceDate, invoice.DueDate, invoice.Subtotal, invoice.TaxAmount,
		invoice.TotalAmount, invoice.Notes, invoice.ID,
	).Scan(&invoice.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id=$1`, invoice.ID); err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO invoice_items(invoice_id, product_id, quantity, unit_price, discount_percentage, tax_rate, line_total, line_tax)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			invoice.ID, item.ProductID, item.Quantity, item.UnitPrice,
			item.DiscountPercentage, item.TaxRate, item.LineTotal, item.LineTax,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves an invoice by ID with items and customer details
func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.InvoiceWithDetails, error) {
	var invoice models.InvoiceWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.invoice_number, i.customer_id, i.invoice_date, i.due_date,
		        i.subtotal, i.tax_amount, i.total_amount, COALESCE(i.notes, ''), i.created_at, i.updated_at,
		        COALESCE(c.name, '') as customer_name, COALESCE(c.gstin, '') as customer_gstin
		 FROM invoices i
		 LEFT JOIN customers c ON i.customer_id = c.id
		 WHERE i.id = $1`, id,
	).Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.CustomerID, &invoice.InvoiceDate,
		&invoice.DueDate, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount,
		&invoice.Notes, &invoice.CreatedAt, &invoice.UpdatedAt, &invoice.CustomerName, &invoice.CustomerGSTIN)

	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	invoice.Items = items
	return &invoice, nil
}

// GetByInvoiceNumber retrieves an invoice by invoice number
func (r *InvoiceRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceWithDetails, error) {
	var id int
	err := r.DB.QueryRow(ctx, `SELECT id FROM invoices WHERE invoice_number = $1`, invoiceNumber).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *InvoiceRepository) getItems(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ii.id, ii.invoice_id, ii.product_id, COALESCE(p.name, ''), COALESCE(p.hsn_code, ''),
		        ii.quantity, ii.unit_price, ii.discount_percentage, ii.tax_rate, ii.line_total, ii.line_tax
		 FROM invoice_items ii
		 LEFT JOIN products p ON ii.product_id = p.id
		 WHERE ii.invoice_id = $1
		 ORDER BY ii.id`, invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var item models.InvoiceItem
		err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.ProductName, &item.HSNCode,
			&item.Quantity, &item.UnitPrice, &item.DiscountPercentage, &item.TaxRate, &item.LineTotal, &item.LineTax)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// List returns all invoices with customer names, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.InvoiceWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.invoice_number, i.customer_id, i.invoice_date, i.due_date,
		        i.subtotal, i.tax_amount, i.total_amount, COALESCE(i.notes, ''), i.created_at, i.updated_at,
		        COALESCE(c.name, '') as customer_name
		 FROM invoices i
		 LEFT JOIN customers c ON i.customer_id = c.id
		 ORDER BY i.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.InvoiceWithDetails
	for rows.Next() {
		var invoice models.InvoiceWithDetails
		err := rows.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.CustomerID, &invoice.InvoiceDate,
			&invoice.DueDate, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount,
			&invoice.Notes, &invoice.CreatedAt, &invoice.UpdatedAt, &invoice.CustomerName)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, nil
}

// ListByCustomer returns all invoices for a customer
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_number, customer_id, invoice_date, due_date,
		        subtotal, tax_amount, total_amount, COALESCE(notes, ''), created_at, updated_at
		 FROM invoices WHERE customer_id = $1 ORDER BY created_at DESC`, customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		err := rows.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.CustomerID, &invoice.InvoiceDate,
			&invoice.DueDate, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount,
			&invoice.Notes, &invoice.CreatedAt, &invoice.UpdatedAt)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, nil
}

// ListByDateRange returns invoices dated within [from, to] for reporting
func (r *InvoiceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.InvoiceWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.invoice_number, i.customer_id, i.invoice_date, i.due_date,
		        i.subtotal, i.tax_amount, i.total_amount, COALESCE(i.notes, ''), i.created_at, i.updated_at,
		        COALESCE(c.name, '') as customer_name
		 FROM invoices i
		 LEFT JOIN customers c ON i.customer_id = c.id
		 WHERE i.invoice_date >= $1 AND i.invoice_date <= $2
		 ORDER BY i.invoice_date`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.InvoiceWithDetails
	for rows.Next() {
		var invoice models.InvoiceWithDetails
		err := rows.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.CustomerID, &invoice.InvoiceDate,
			&invoice.DueDate, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount,
			&invoice.Notes, &invoice.CreatedAt, &invoice.UpdatedAt, &invoice.CustomerName)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, nil
}

// Delete removes an invoice and its items. The service layer blocks
// deletion once payments exist.
func (r *InvoiceRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
