package models

import "time"

// MenuItem is a dish on the restaurant's menu. Prices are integer minor units (paise/cents).
type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       int64     `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	IsVeg       bool      `json:"is_veg" gorm:"column:is_veg;not null"`
	IsAvailable bool      `json:"is_available" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
}
