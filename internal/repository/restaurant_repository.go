package repository

import (
	"context"

	"online-food/internal/domain/model"
)

type RestaurantRepository interface {
	Create(ctx context.Context, r model.Restaurant) (int64, error)
	FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error)
	ListAll(ctx context.Context) ([]model.Restaurant, error)
	ListByManagerID(ctx context.Context, managerID int64) ([]model.Restaurant, error)
	// メニュー作成の権限チェック用
	FindManagerID(ctx context.Context, restaurantID int64) (int64, error)
	Delete(ctx context.Context, restaurantID int64) error
}
