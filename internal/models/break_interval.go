package models

import "time"

// BreakInterval is a recurring daily pause for a resource. It carries no
// date: the same interval applies to every day the resource works.
type BreakInterval struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TenantID   uint `gorm:"index;not null" json:"tenant_id"`
	ResourceID uint `gorm:"index" json:"resource_id"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Label     string `gorm:"size:50" json:"label"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
