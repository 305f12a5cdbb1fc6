package models

import "time"

// CmsContent is a key-value store for editable site copy,
// e.g. key "hero.title" or "homepage.banner".
type CmsContent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key   string  `gorm:"size:150;uniqueIndex;not null" json:"key"`
	Value JSONRaw `gorm:"type:text" json:"value"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
