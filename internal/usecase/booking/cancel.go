package booking

import (
	"context"

	"github.com/agendahub/scheduler/internal/audit"
	"github.com/agendahub/scheduler/internal/cache"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/payments"
	"github.com/agendahub/scheduler/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	refunder payments.RefundSender
	audit    Auditor
	slots    *cache.SlotCache
}

func NewCancelBooking(
	repo domain.Repository,
	refunder payments.RefundSender,
	auditor Auditor,
	slots *cache.SlotCache,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		refunder: refunder,
		audit:    auditor,
		slots:    slots,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	tn, err := uc.repo.GetTenant(ctx, b.TenantID)
	if err != nil {
		return nil, err
	}

	needsRefund := domain.NeedsRefund(b)

	now := timezone.NowIn(tn.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	// A cancelled-but-unrefunded booking is an inconsistent business state,
	// so a refund failure fails the cancellation before anything persists.
	if needsRefund {
		if err := uc.refunder.Refund(ctx, b); err != nil {
			return nil, err
		}
		b.PaymentStatus = string(domain.PaymentCancelled)
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: b.TenantID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})
	uc.slots.Invalidate(ctx, b.TenantID, b.ResourceID, b.StartTime.In(timezone.Location(tn.Timezone)).Format("2006-01-02"))

	return b, nil
}
