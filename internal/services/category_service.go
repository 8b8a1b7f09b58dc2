package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

type CategoryService struct {
	Repo        *repositories.CategoryRepository
	ProductRepo *repositories.ProductRepository
}

func NewCategoryService(repo *repositories.CategoryRepository, productRepo *repositories.ProductRepository) *CategoryService {
	return &CategoryService{Repo: repo, ProductRepo: productRepo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int, req *models.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	category := &models.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

// DeleteCategory removes a category unless products reference it
func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}

	products, err := s.ProductRepo.ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return &ConflictError{Message: "cannot delete category with existing products"}
	}
	return s.Repo.Delete(ctx, id)
}
