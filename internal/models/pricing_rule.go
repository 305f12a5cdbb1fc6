package models

import "time"

// PricingRule prices a service, a brand or a single model. The (scope, refId)
// pair is the natural key: refId holds a service id, a brand slug or
// "brandSlug:modelName" depending on scope.
type PricingRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Scope string `gorm:"size:20;not null;uniqueIndex:idx_pricing_scope_ref" json:"scope"`
	RefID string `gorm:"size:150;not null;uniqueIndex:idx_pricing_scope_ref" json:"refId"`

	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"size:10;default:'INR'" json:"currency"`

	Metadata JSONMap `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
