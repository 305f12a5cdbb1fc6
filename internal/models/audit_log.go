package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID    *uint  `json:"actorId"`
	ActorEmail string `gorm:"size:100;index" json:"actorEmail"`

	Action   string `gorm:"size:50;not null;index" json:"action"`
	Entity   string `gorm:"size:50;not null;index" json:"entity"`
	EntityID string `gorm:"size:100" json:"entityId"`

	Metadata JSONMap `gorm:"type:text" json:"metadata"`

	IP        string `gorm:"size:50" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`

	CreatedAt time.Time `json:"createdAt"`
}
