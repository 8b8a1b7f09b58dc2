package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type PurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

// GeneratePurchaseNumber generates a unique purchase number
func (r *PurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('purchase_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next purchase number: %w", err)
	}

	return fmt.Sprintf("PUR-%06d", nextNum), nil
}

// Create creates a new purchase with items in a single transaction
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase, items []models.PurchaseItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if purchase.PurchaseNumber == "" {
		purchaseNumber, err := r.GeneratePurchaseNumber(ctx)
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = purchaseNumber
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO purchases(purchase_number, supplier_id, purchase_date, due_date, subtotal, tax_amount, total_amount, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		purchase.PurchaseNumber, purchase.SupplierID, purchase.PurchaseDate, purchase.DueDate,
		purchase.Subtotal, purchase.TaxAmount, purchase.TotalAmount, purchase.Notes,
	).Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UpdatedAt)

	if err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO purchase_items(purchase_id, product_id, quantity, unit_price, discount_percentage, tax_rate, line_total, line_tax)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			purchase.ID, item.ProductID, item.Quantity, item.UnitPrice,
			item.DiscountPercentage, item.TaxRate, item.LineTotal, item.LineTax,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceItems replaces a purchase's line items and updates its totals
// in one transaction
func (r *PurchaseRepository) ReplaceItems(ctx context.Context, purchase *models.Purchase, items []models.PurchaseItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE purchases
		 SET purchase_date=$1, due_date=$2, subtotal=$3, tax_amount=$4, total_amount=$5, notes=$6, updated_at=NOW()
		 WHERE id=$7
		 RETURNING updated_at`,
		purchase.PurchaseDate, purchase.DueDate, purchase.Subtotal, purchase.TaxAmount,
		purchase.TotalAmount, purchase.Notes, purchase.ID,
	).Scan(&purchase.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id=$1`, purchase.ID); err != nil {
		return err
	}

	for _, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO purchase_items(purchase_id, product_id, quantity, unit_price, discount_percentage, tax_rate, line_total, line_tax)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			purchase.ID, item.ProductID, item.Quantity, item.UnitPrice,
			item.DiscountPercentage, item.TaxRate, item.LineTotal, item.LineTax,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves a purchase by ID with items and supplier details
func (r *PurchaseRepository) Get(ctx context.Context, id int) (*models.PurchaseWithDetails, error) {
	var purchase models.PurchaseWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT p.id, p.purchase_number, p.supplier_id, p.purchase_date, p.due_date,
		        p.subtotal, p.tax_amount, p.total_amount, COALESCE(p.notes, ''), p.created_at, p.updated_at,
		        COALESCE(s.name, '') as supplier_name, COALESCE(s.gstin, '') as supplier_gstin
		 FROM purchases p
		 LEFT JOIN suppliers s ON p.supplier_id = s.id
		 WHERE p.id = $1`, id,
	).Scan(&purchase.ID, &purchase.PurchaseNumber, &purchase.SupplierID, &purchase.PurchaseDate,
		&purchase.DueDate, &purchase.Subtotal, &purchase.TaxAmount, &purchase.TotalAmount,
		&purchase.Notes, &purchase.CreatedAt, &purchase.UpdatedAt, &purchase.SupplierName, &purchase.SupplierGSTIN)

	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}

	purchase.Items = items
	return &purchase, nil
}

func (r *PurchaseRepository) getItems(ctx context.Context, purchaseID int) ([]models.PurchaseItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT pi.id, pi.purchase_id, pi.product_id, COALESCE(p.name, ''), COALESCE(p.hsn_code, ''),
		        pi.quantity, pi.unit_price, pi.discount_percentage, pi.tax_rate, pi.line_total, pi.line_tax
		 FROM purchase_items pi
		 LEFT JOIN products p ON pi.product_id = p.id
		 WHERE pi.purchase_id = $1
		 ORDER BY pi.id`, purchaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PurchaseItem
	for rows.Next() {
		var item models.PurchaseItem
		err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID, &item.ProductName, &item.HSNCode,
			&item.Quantity, &item.UnitPrice, &item.DiscountPercentage, &item.TaxRate, &item.LineTotal, &item.LineTax)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// List returns all purchases with supplier names, newest first
func (r *PurchaseRepository) List(ctx context.Context) ([]*models.PurchaseWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.purchase_number, p.supplier_id, p.purchase_date, p.due_date,
		        p.subtotal, p.tax_amount, p.total_amount, COALESCE(p.notes, ''), p.created_at, p.updated_at,
		        COALESCE(s.name, '') as supplier_name
		 FROM purchases p
		 LEFT JOIN suppliers s ON p.supplier_id = s.id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.PurchaseWithDetails
	for rows.Next() {
		var purchase models.PurchaseWithDetails
		err := rows.Scan(&purchase.ID, &purchase.PurchaseNumber, &purchase.SupplierID, &purchase.PurchaseDate,
			&purchase.DueDate, &purchase.Subtotal, &purchase.TaxAmount, &purchase.TotalAmount,
			&purchase.Notes, &purchase.CreatedAt, &purchase.UpdatedAt, &purchase.SupplierName)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &purchase)
	}

	return purchases, nil
}

// ListBySupplier returns all purchases for a supplier
func (r *PurchaseRepository) ListBySupplier(ctx context.Context, supplierID int) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, purchase_number, supplier_id, purchase_date, due_date,
		        subtotal, tax_amount, total_amount, COALESCE(notes, ''), created_at, updated_at
		 FROM purchases WHERE supplier_id = $1 ORDER BY created_at DESC`, supplierID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		var purchase models.Purchase
		err := rows.Scan(&purchase.ID, &purchase.PurchaseNumber, &purchase.SupplierID, &purchase.PurchaseDate,
			&purchase.DueDate, &purchase.Subtotal, &purchase.TaxAmount, &purchase.TotalAmount,
			&purchase.Notes, &purchase.CreatedAt, &purchase.UpdatedAt)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &purchase)
	}

	return purchases, nil
}

// ListByDateRange returns purchases dated within [from, to] for reporting
func (r *PurchaseRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.PurchaseWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.purchase_number, p.supplier_id, p.purchase_date, p.due_date,
		        p.subtotal, p.tax_amount, p.total_amount, COALESCE(p.notes, ''), p.created_at, p.updated_at,
		        COALESCE(s.name, '') as supplier_name
		 FROM purchases p
		 LEFT JOIN suppliers s ON p.supplier_id = s.id
		 WHERE p.purchase_date >= $1 AND p.purchase_date <= $2
		 ORDER BY p.purchase_date`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.PurchaseWithDetails
	for rows.Next() {
		var purchase models.PurchaseWithDetails
		err := rows.Scan(&purchase.ID, &purchase.PurchaseNumber, &purchase.SupplierID, &purchase.PurchaseDate,
			&purchase.DueDate, &purchase.Subtotal, &purchase.TaxAmount, &purchase.TotalAmount,
			&purchase.Notes, &purchase.CreatedAt, &purchase.UpdatedAt, &purchase.SupplierName)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &purchase)
	}

	return purchases, nil
}

// Delete removes a purchase and its items. The service layer blocks
// deletion once payments exist.
func (r *PurchaseRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
