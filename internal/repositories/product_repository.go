package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, category_id, hsn_code, unit_price, tax_rate, unit)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		p.Name, p.CategoryID, p.HSNCode, p.UnitPrice, p.TaxRate, p.Unit,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT p.id, p.name, p.category_id, COALESCE(c.name, ''), COALESCE(p.hsn_code, ''),
		        p.unit_price, p.tax_rate, COALESCE(p.unit, 'pcs'), p.created_at, p.updated_at
         FROM products p
         LEFT JOIN categories c ON p.category_id = c.id
         WHERE p.id=$1`, id)

	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.HSNCode,
		&p.UnitPrice, &p.TaxRate, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.name, p.category_id, COALESCE(c.name, ''), COALESCE(p.hsn_code, ''),
		        p.unit_price, p.tax_rate, COALESCE(p.unit, 'pcs'), p.created_at, p.updated_at
         FROM products p
         LEFT JOIN categories c ON p.category_id = c.id
         ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.HSNCode,
			&p.UnitPrice, &p.TaxRate, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, nil
}

// ListByCategory returns products in a category
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.name, p.category_id, COALESCE(c.name, ''), COALESCE(p.hsn_code, ''),
		        p.unit_price, p.tax_rate, COALESCE(p.unit, 'pcs'), p.created_at, p.updated_at
         FROM products p
         LEFT JOIN categories c ON p.category_id = c.id
         WHERE p.category_id = $1
         ORDER BY p.name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.HSNCode,
			&p.UnitPrice, &p.TaxRate, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, category_id=$2, hsn_code=$3, unit_price=$4, tax_rate=$5, unit=$6, updated_at=NOW()
         WHERE id=$7`,
		p.Name, p.CategoryID, p.HSNCode, p.UnitPrice, p.TaxRate, p.Unit, p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}
