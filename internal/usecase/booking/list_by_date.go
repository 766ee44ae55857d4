package booking

import (
	"context"
	"time"

	"github.com/agendahub/scheduler/internal/apperr"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
	"github.com/agendahub/scheduler/internal/timezone"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	resourceID uint,
	dateStr string,
) ([]models.Booking, error) {

	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, apperr.Forbidden("tenant_unscoped", "Operation requires a tenant scope.")
	}

	tn, err := uc.repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tn.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_date", "Date is invalid.")
	}

	return uc.repo.ListBookingsForPeriod(ctx, resourceID, date, date.AddDate(0, 0, 1))
}
