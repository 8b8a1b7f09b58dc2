package models

import "time"

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	CategoryID   *int      `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"` // Joined from categories table
	HSNCode      string    `json:"hsn_code"`                // HSN/SAC classification, opaque to billing
	UnitPrice    float64   `json:"unit_price"`
	TaxRate      float64   `json:"tax_rate"` // GST percentage
	Unit         string    `json:"unit"`     // pcs, kg, box
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name       string  `json:"name"`
	CategoryID *int    `json:"category_id"`
	HSNCode    string  `json:"hsn_code"`
	UnitPrice  float64 `json:"unit_price"`
	TaxRate    float64 `json:"tax_rate"`
	Unit       string  `json:"unit"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name       string  `json:"name"`
	CategoryID *int    `json:"category_id"`
	HSNCode    string  `json:"hsn_code"`
	UnitPrice  float64 `json:"unit_price"`
	TaxRate    float64 `json:"tax_rate"`
	Unit       string  `json:"unit"`
}
