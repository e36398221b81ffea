package model

import "time"

type MenuItem struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID int64     `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        int64     `gorm:"not null" json:"price"` // 最小通貨単位（セント）
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
