package repository

import (
	"context"
	"errors"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

func (r *MenuItemGormRepository) Create(ctx context.Context, item model.MenuItem) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", menuItemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

func (r *MenuItemGormRepository) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) Delete(ctx context.Context, menuItemID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", menuItemID).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
