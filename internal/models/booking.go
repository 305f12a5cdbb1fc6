package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name        string `gorm:"size:100;not null" json:"name"`
	PhoneNumber string `gorm:"size:20;not null" json:"phoneNumber"`
	Email       string `gorm:"size:100;not null" json:"email"`

	VehicleType  string `gorm:"size:50;not null" json:"vehicleType"`
	VehicleModel string `gorm:"size:100;not null" json:"vehicleModel"`
	ServiceType  string `gorm:"size:100;not null" json:"serviceType"`

	Date     time.Time `gorm:"not null" json:"date"`
	TimeSlot string    `gorm:"size:50;not null" json:"timeSlot"`
	Address  string    `gorm:"size:255;not null" json:"address"`
	Notes    string    `gorm:"size:500" json:"notes"`

	Status string `gorm:"size:20;default:'upcoming'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
