package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*a = Address{}
		return nil
	}
	return json.Unmarshal(b, a)
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	PhoneNumber  string `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"`

	Address  Address `gorm:"type:text" json:"address"`
	Vehicles JSONRaw `gorm:"type:text" json:"vehicles"`

	IsAdmin bool   `gorm:"default:false" json:"isAdmin"`
	Avatar  string `gorm:"size:255" json:"avatar"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
