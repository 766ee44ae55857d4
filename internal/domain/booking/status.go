package booking

import (
	"time"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentPayInShop PaymentStatus = "pay_in_shop"
	PaymentFullyPaid PaymentStatus = "fully_paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

type PaymentMethod string

const (
	MethodOnline PaymentMethod = "online"
	MethodInShop PaymentMethod = "in_shop"
)

// InitialStatus derives the creation statuses from the payment method:
// online payment gates confirmation on the payment intent, in-shop payment
// confirms immediately.
func InitialStatus(method PaymentMethod) (Status, PaymentStatus, error) {
	switch method {
	case MethodOnline:
		return StatusPending, PaymentPending, nil
	case MethodInShop:
		return StatusConfirmed, PaymentPayInShop, nil
	default:
		return "", "", apperr.Validation("invalid_payment_method", "Unknown payment method.")
	}
}

// ===============================
// Transitions
// ===============================

func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCancelled:
		return apperr.Validation("already_cancelled", "Booking is already cancelled.")
	default:
		return apperr.Validation("invalid_state", "Booking cannot be cancelled in its current state.")
	}
}

func CanComplete(current Status) error {
	if current == StatusConfirmed || current == StatusPending {
		return nil
	}
	return apperr.Validation("invalid_state", "Booking cannot be completed in its current state.")
}

func CanMarkNoShow(current Status) error {
	if current == StatusConfirmed || current == StatusPending {
		return nil
	}
	return apperr.Validation("invalid_state", "Booking cannot be marked as no-show in its current state.")
}

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusNoShow)
	b.NoShowAt = &now
	return nil
}

// NeedsRefund reports whether cancelling b must issue a refund through the
// payment collaborator.
func NeedsRefund(b *models.Booking) bool {
	s := PaymentStatus(b.PaymentStatus)
	return s == PaymentPaid || s == PaymentFullyPaid
}
