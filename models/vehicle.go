package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Make               string         `gorm:"not null" json:"make"`
	Model              string         `gorm:"not null" json:"model"`
	Year               int            `json:"year"`
	Mileage            int            `json:"mileage"`
	Price              float64        `gorm:"not null" json:"price"`
	DiscountPercentage *float64       `json:"discount_percentage,omitempty"`
	IsSold             bool           `gorm:"default:false" json:"is_sold"`
	Image              string         `json:"image"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Label is the display name used on cart lines and order snapshots.
func (v Vehicle) Label() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}
