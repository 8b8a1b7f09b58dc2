package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

type SupplierService struct {
	Repo         *repositories.SupplierRepository
	PurchaseRepo *repositories.PurchaseRepository
}

func NewSupplierService(repo *repositories.SupplierRepository, purchaseRepo *repositories.PurchaseRepository) *SupplierService {
	return &SupplierService{Repo: repo, PurchaseRepo: purchaseRepo}
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	supplier := &models.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}

	if err := s.Repo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	return s.Repo.Get(ctx, id)
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	return s.Repo.List(ctx)
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id int, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	supplier := &models.Supplier{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}

	if err := s.Repo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

// DeleteSupplier removes a supplier unless purchases reference them
func (s *SupplierService) DeleteSupplier(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}

	purchases, err := s.PurchaseRepo.ListBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if len(purchases) > 0 {
		return &ConflictError{Message: "cannot delete supplier with existing purchases"}
	}
	return s.Repo.Delete(ctx, id)
}
