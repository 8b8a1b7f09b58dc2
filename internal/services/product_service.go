package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

type ProductService struct {
	Repo         *repositories.ProductRepository
	CategoryRepo *repositories.CategoryRepository
}

func NewProductService(repo *repositories.ProductRepository, categoryRepo *repositories.CategoryRepository) *ProductService {
	return &ProductService{Repo: repo, CategoryRepo: categoryRepo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.UnitPrice < 0 {
		return nil, errors.New("unit price cannot be negative")
	}
	if req.TaxRate < 0 {
		return nil, errors.New("tax rate cannot be negative")
	}

	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.Get(ctx, *req.CategoryID); err != nil {
			return nil, errors.New("category not found")
		}
	}

	product := &models.Product{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		HSNCode:    req.HSNCode,
		UnitPrice:  req.UnitPrice,
		TaxRate:    req.TaxRate,
		Unit:       req.Unit,
	}

	if err := s.Repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, product.ID)
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, categoryID *int) ([]*models.Product, error) {
	if categoryID != nil {
		return s.Repo.ListByCategory(ctx, *categoryID)
	}
	return s.Repo.List(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.UnitPrice < 0 {
		return nil, errors.New("unit price cannot be negative")
	}
	if req.TaxRate < 0 {
		return nil, errors.New("tax rate cannot be negative")
	}

	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.Get(ctx, *req.CategoryID); err != nil {
			return nil, errors.New("category not found")
		}
	}

	product := &models.Product{
		ID:         id,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		HSNCode:    req.HSNCode,
		UnitPrice:  req.UnitPrice,
		TaxRate:    req.TaxRate,
		Unit:       req.Unit,
	}

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
