package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64       `gorm:"not null;index" json:"user_id"`
	RestaurantID int64       `gorm:"not null;index" json:"restaurant_id"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice   int64       `gorm:"not null" json:"total_price"` // 派生値：明細の price×quantity の合計
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
