package model

import "time"

type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"not null;index" json:"order_id"`
	MenuItemID int64     `gorm:"not null;index" json:"menu_item_id"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"` // 注文時点のスナップショット
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
