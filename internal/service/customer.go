package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/transport"
)

const SearchLimit = 10

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req transport.CustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	customer := models.Customer{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if err := s.Repo.CreateCustomer(ctx, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: customer %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CustomerService) Search(ctx context.Context, q string) ([]models.Customer, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return s.Repo.SearchCustomers(ctx, q, SearchLimit)
}

func (s *CustomerService) ListOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders, err := s.Repo.ListCustomerOrders(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}
	return orders, nil
}
