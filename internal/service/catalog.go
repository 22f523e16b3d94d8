package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) validate(req transport.ItemRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func itemFromRequest(req transport.ItemRequest) models.Item {
	return models.Item{
		Name:               req.Name,
		QuickCode:          req.QuickCode,
		Price:              decimal.NewFromFloat(req.Price).Round(2),
		Unit:               req.Unit,
		IsDiscountEligible: req.IsDiscountEligible,
		ImageURL:           req.ImageURL,
	}
}

func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListItems(ctx)
}

func (s *CatalogService) CreateItem(ctx context.Context, req transport.ItemRequest) (uint, error) {
	if err := s.validate(req); err != nil {
		return 0, err
	}

	item := itemFromRequest(req)
	if err := s.Repo.CreateItem(ctx, &item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// UpdateItem is a full replacement of every mutable field.
func (s *CatalogService) UpdateItem(ctx context.Context, id uint, req transport.ItemRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}

	item := itemFromRequest(req)
	item.ID = id
	if err := s.Repo.UpdateItem(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
