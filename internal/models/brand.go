package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type VehicleModel struct {
	Name  string   `json:"name"`
	Fuels []string `json:"fuels"`
}

type VehicleModelList []VehicleModel

func (l VehicleModelList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *VehicleModelList) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*l = VehicleModelList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

type Brand struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// "car" or "bike"
	Type string `gorm:"size:10;not null;index" json:"type"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Logo string `gorm:"size:255" json:"logo"`

	Models VehicleModelList `gorm:"type:text" json:"models"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
