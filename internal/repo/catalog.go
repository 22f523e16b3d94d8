package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/nkraev/pos-backend/internal/models"
)

func (r *GormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	var existing models.Item
	if err := r.DB.WithContext(ctx).First(&existing, item.ID).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Save(item).Error
}

// DeleteItem nulls the weak references in historical line items before the
// delete so the behavior does not depend on engine-level FK triggers.
func (r *GormRepo) DeleteItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderItem{}).
			Where("item_id = ?", id).
			Update("item_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Item{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
