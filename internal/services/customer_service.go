package services

import (
	"context"
	"errors"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/repositories"
)

type CustomerService struct {
	Repo        *repositories.CustomerRepository
	InvoiceRepo *repositories.InvoiceRepository
}

func NewCustomerService(repo *repositories.CustomerRepository, invoiceRepo *repositories.InvoiceRepository) *CustomerService {
	return &CustomerService{Repo: repo, InvoiceRepo: invoiceRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	// Validate input
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	customer := &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) SearchCustomers(ctx context.Context, term string) ([]*models.Customer, error) {
	if term == "" {
		return s.Repo.List(ctx)
	}
	return s.Repo.Search(ctx, term)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	// Validate input
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	customer := &models.Customer{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

// DeleteCustomer removes a customer unless invoices reference them
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}

	invoices, err := s.InvoiceRepo.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if len(invoices) > 0 {
		return &ConflictError{Message: "cannot delete customer with existing invoices"}
	}
	return s.Repo.Delete(ctx, id)
}
