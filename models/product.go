package models

import "time"

type Product struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Description        string    `json:"description"`
	Price              float64   `gorm:"not null" json:"price"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	StockQuantity      int       `json:"stock_quantity"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	Image              string    `json:"image"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
