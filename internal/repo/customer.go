package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
)

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Create(customer).Error
}

// DeleteCustomer anonymizes historical orders (customer_id set to NULL) in the
// same transaction as the delete. The orders themselves are never touched.
func (r *GormRepo) DeleteCustomer(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Customer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) SearchCustomers(ctx context.Context, q string, limit int) ([]models.Customer, error) {
	pattern := "%" + q + "%"
	customers := make([]models.Customer, 0, limit)
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR phone_number LIKE ? OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormRepo) ListCustomerOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	if err := r.DB.WithContext(ctx).First(&models.Customer{}, customerID).Error; err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
