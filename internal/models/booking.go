package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	TenantID   uint `gorm:"index;not null" json:"tenant_id"`
	ResourceID uint `gorm:"index" json:"resource_id"`
	CustomerID uint `json:"customer_id"`
	ServiceID  uint `json:"service_id"`

	// EndTime is computed once at creation (start + service duration) and
	// never recomputed, even if the service duration changes later.
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`

	DepositAmount      float64 `json:"deposit_amount"`
	OutstandingBalance float64 `json:"outstanding_balance"`

	// GatewayPaymentID is the payment provider's id, set once the online
	// payment completes. Required to issue a refund.
	GatewayPaymentID int64 `json:"gateway_payment_id"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
