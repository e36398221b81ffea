package repository

import (
	"context"

	"online-food/internal/domain/model"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item model.MenuItem) (int64, error)
	FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error)
	ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.MenuItem, error)
	Delete(ctx context.Context, menuItemID int64) error
}
