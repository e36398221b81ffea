package repository

import (
	"context"

	"online-food/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 明細確定後に派生値を書き戻す
	UpdateTotalPrice(ctx context.Context, orderID int64, total int64) error
	Delete(ctx context.Context, orderID int64) error
}
