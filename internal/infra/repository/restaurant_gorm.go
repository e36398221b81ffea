package repository

import (
	"context"
	"errors"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest model.Restaurant) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rest).Error; err != nil {
		return 0, err
	}
	return rest.ID, nil
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", restaurantID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *RestaurantGormRepository) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	var items []model.Restaurant
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Restaurant{}, err
	}
	return items, nil
}

func (r *RestaurantGormRepository) ListByManagerID(ctx context.Context, managerID int64) ([]model.Restaurant, error) {
	var items []model.Restaurant
	err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.Restaurant{}, err
	}
	return items, nil
}

func (r *RestaurantGormRepository) FindManagerID(ctx context.Context, restaurantID int64) (int64, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Select("id", "manager_id").Where("id = ?", restaurantID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return rest.ManagerID, nil
}

func (r *RestaurantGormRepository) Delete(ctx context.Context, restaurantID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", restaurantID).Delete(&model.Restaurant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
