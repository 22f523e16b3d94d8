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

type OrderService struct {
	Repo *repo.GormRepo
}

var oneHundred = decimal.NewFromInt(100)

// CreateOrder recomputes all totals server-side from the caller-supplied
// quantities and prices. Prices are taken as submitted: the price shown at
// sale time is the price charged, regardless of later catalog edits.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (uint, error) {
	if len(req.Cart) == 0 {
		return 0, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return 0, fmt.Errorf("%w: discount percentage must be in [0, 100]", ErrValidation)
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Cart))
	for _, line := range req.Cart {
		if line.ID == 0 {
			return 0, fmt.Errorf("%w: item id required", ErrValidation)
		}
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if line.Price < 0 {
			return 0, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}

		price := decimal.NewFromFloat(line.Price)
		lineSubtotal := price.Mul(decimal.NewFromFloat(line.Quantity)).Round(2)
		subtotal = subtotal.Add(lineSubtotal)

		itemID := line.ID
		items = append(items, models.OrderItem{
			ItemID:       &itemID,
			Quantity:     line.Quantity,
			PricePerUnit: price,
			Subtotal:     lineSubtotal,
		})
	}

	if req.CustomerID != nil {
		if _, err := s.Repo.GetCustomer(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: customer %d not found", ErrValidation, *req.CustomerID)
			}
			return 0, err
		}
	}

	discount := decimal.NewFromFloat(req.DiscountPercentage)
	finalTotal := subtotal.Mul(oneHundred.Sub(discount)).Div(oneHundred).Round(2)
	discountAmount := subtotal.Sub(finalTotal)

	order := models.Order{
		Subtotal:           subtotal,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     discountAmount,
		FinalTotal:         finalTotal,
		CustomerID:         req.CustomerID,
	}

	if err := s.Repo.CreateOrder(ctx, &order, items); err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (s *OrderService) ListOrderItems(ctx context.Context, orderID uint) ([]transport.OrderLineDetail, error) {
	rows, err := s.Repo.ListOrderItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return rows, nil
}
