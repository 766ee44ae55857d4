package models

import "time"

// WorkingHoursRule holds one resource's hours for one weekday. At most one
// rule per (resource, weekday) is consulted; absent or inactive means the
// resource has no availability that weekday.
type WorkingHoursRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TenantID   uint `gorm:"index;not null" json:"tenant_id"`
	ResourceID uint `gorm:"uniqueIndex:idx_rule_resource_weekday" json:"resource_id"`

	Weekday int `gorm:"uniqueIndex:idx_rule_resource_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
