package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	OrderID   string `gorm:"size:100;uniqueIndex" json:"orderId"`
	PaymentID string `gorm:"size:100" json:"paymentId"`

	// amount in minor currency units (paise for INR)
	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:10;default:'INR'" json:"currency"`
	Receipt  string `gorm:"size:100" json:"receipt"`

	Status string `gorm:"size:20;default:'created'" json:"status"`
	Error  string `gorm:"size:255" json:"error,omitempty"`

	Meta JSONMap `gorm:"type:text" json:"meta"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
