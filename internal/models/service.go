package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500;not null" json:"description"`
	HowItWorks  string `gorm:"size:500" json:"howItWorks"`
	Image       string `gorm:"size:255" json:"image"`

	Price    float64 `gorm:"not null" json:"price"`
	Category string  `gorm:"size:50;index" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
