package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/transport"
)

// SalesReport aggregates orders in [start, end). Both reads run inside one
// transaction so the summary and the per-item breakdown see the same rows.
func (r *GormRepo) SalesReport(ctx context.Context, start, end time.Time) (*transport.SalesReport, error) {
	report := transport.SalesReport{
		SalesByItem: make([]transport.SalesByItem, 0),
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Select("COALESCE(SUM(final_total), 0) AS total_revenue, " +
				"COUNT(id) AS total_orders, " +
				"COALESCE(SUM(discount_amount), 0) AS total_discount_given").
			Where("created_at >= ? AND created_at < ?", start, end).
			Scan(&report.Summary).Error; err != nil {
			return err
		}

		return tx.Table("order_items").
			Select("items.id AS item_id, items.name AS item_name, "+
				"SUM(order_items.quantity) AS total_quantity_sold, "+
				"SUM(order_items.subtotal) AS total_revenue_from_item").
			Joins("JOIN items ON items.id = order_items.item_id").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
			Group("items.id, items.name").
			Order("total_revenue_from_item DESC").
			Scan(&report.SalesByItem).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// CustomerReport lists every customer with order counts and totals. A date
// range, when present, is folded into the join predicate so customers with no
// matching orders still appear with zero totals. Values are always bound as
// parameters; only the fixed skeleton is assembled as SQL text.
func (r *GormRepo) CustomerReport(ctx context.Context, start, end *time.Time) ([]transport.CustomerReportRow, error) {
	join := "LEFT JOIN orders ON orders.customer_id = customers.id"
	args := make([]any, 0, 2)
	if start != nil && end != nil {
		join += " AND orders.created_at >= ? AND orders.created_at < ?"
		args = append(args, *start, *end)
	}

	rows := make([]transport.CustomerReportRow, 0)
	err := r.DB.WithContext(ctx).
		Table("customers").
		Select("customers.id AS customer_id, customers.name, " +
			"COUNT(orders.id) AS total_orders, " +
			"COALESCE(SUM(orders.final_total), 0) AS total_spent").
		Joins(join, args...).
		Group("customers.id, customers.name").
		Order("total_spent DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) OrderDetails(ctx context.Context, start, end time.Time) ([]transport.OrderDetailRow, error) {
	rows := make([]transport.OrderDetailRow, 0)
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select("orders.id AS order_id, orders.created_at, orders.final_total, "+
			"customers.name AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
