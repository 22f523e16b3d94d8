package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/transport"
)

// CreateOrder persists the header and all line items in one transaction.
// Either everything commits or nothing does.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *GormRepo) ListOrderItems(ctx context.Context, orderID uint) ([]transport.OrderLineDetail, error) {
	if err := r.DB.WithContext(ctx).First(&models.Order{}, orderID).Error; err != nil {
		return nil, err
	}

	rows := make([]transport.OrderLineDetail, 0)
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.item_id, COALESCE(items.name, '') AS item_name, " +
			"order_items.quantity, order_items.price_per_unit, order_items.subtotal").
		Joins("LEFT JOIN items ON items.id = order_items.item_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
