package models

import "time"

// Customer is tenant-scoped. A guest customer has no credential; Reference is
// the globally unique token used for cross-tenant lookup (guest merge).
type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	PasswordHash string `gorm:"size:100" json:"-"`
	Guest        bool   `gorm:"default:true" json:"guest"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
