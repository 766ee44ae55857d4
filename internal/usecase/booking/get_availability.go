package booking

import (
	"context"
	"time"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/cache"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/tenant"
	"github.com/agendahub/scheduler/internal/timezone"
)

type GetAvailabilityInput struct {
	ResourceID uint
	ServiceID  uint
	Date       string // "2006-01-02"
}

type GetAvailability struct {
	repo  domain.Repository
	slots *cache.SlotCache
}

func NewGetAvailability(repo domain.Repository, slots *cache.SlotCache) *GetAvailability {
	return &GetAvailability{repo: repo, slots: slots}
}

// Execute computes the candidate start times for one resource, day and
// service. The result may go stale against concurrent creations; the create
// path re-checks, so reads stay lock-free and cacheable.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.TimeSlot, error) {

	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, apperr.Forbidden("tenant_unscoped", "Operation requires a tenant scope.")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if cached, ok := uc.slots.Get(ctx, tenantID, in.ResourceID, in.ServiceID, in.Date); ok {
		return cached, nil
	}

	tn, err := uc.repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tn.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_date", "Date is invalid.")
	}

	rule, err := uc.repo.GetWorkingHoursRule(ctx, in.ResourceID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}

	dayEnd := date.AddDate(0, 0, 1)
	bookings, err := uc.repo.ListBookingsForDay(ctx, in.ResourceID, date, dayEnd)
	if err != nil {
		return nil, err
	}

	breaks, err := uc.repo.ListBreaks(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}

	slots := domain.Slots(domain.AvailabilityInput{
		Date:     date,
		Now:      timezone.NowIn(tn.Timezone),
		Rule:     rule,
		Bookings: bookings,
		Breaks:   breaks,
		Duration: time.Duration(service.DurationMin) * time.Minute,
	})

	uc.slots.Set(ctx, tenantID, in.ResourceID, in.ServiceID, in.Date, slots)

	return slots, nil
}
