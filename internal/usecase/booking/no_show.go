package booking

import (
	"context"

	"github.com/agendahub/scheduler/internal/audit"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/timezone"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit Auditor
}

func NewMarkNoShow(repo domain.Repository, auditor Auditor) *MarkNoShow {
	return &MarkNoShow{repo: repo, audit: auditor}
}

func (uc *MarkNoShow) Execute(
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

	now := timezone.NowIn(tn.Timezone)
	if err := domain.MarkNoShow(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: b.TenantID,
		Action:   "booking_no_show",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
