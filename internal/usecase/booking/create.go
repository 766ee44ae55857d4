package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/audit"
	"github.com/agendahub/scheduler/internal/cache"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
	"github.com/agendahub/scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	ResourceID uint
	ServiceID  uint

	Date string // "2006-01-02"
	Time string // "15:04"

	PaymentMethod string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking is the single atomic unit that grants a slot: it validates
// the referenced entities up front, then re-checks for conflicts and inserts
// inside one serializable transaction. Of two concurrent attempts on
// overlapping slots, exactly one commits; the other surfaces a conflict.
type CreateBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
	slots    *cache.SlotCache
}

func NewCreateBooking(
	repo domain.Repository,
	notifier Notifier,
	auditor Auditor,
	slots *cache.SlotCache,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
		slots:    slots,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, apperr.Forbidden("tenant_unscoped", "Operation requires a tenant scope.")
	}

	tn, err := uc.repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	status, paymentStatus, err := domain.InitialStatus(domain.PaymentMethod(in.PaymentMethod))
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tn.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, apperr.Validation("invalid_date_or_time", "Date or time is invalid.")
	}

	customer, err := uc.repo.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	resource, err := uc.repo.GetResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if !resource.Active {
		return nil, apperr.Validation("resource_disabled", "Resource does not accept new bookings.")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, apperr.Validation("invalid_duration", "Service duration must be positive.")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	now := timezone.NowIn(tn.Timezone)
	if !start.After(now) {
		return nil, apperr.Validation("past_booking_time", "Booking time is in the past.")
	}

	rule, err := uc.repo.GetWorkingHoursRule(ctx, resource.ID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.WithinRule(rule, start, end) {
		return nil, apperr.Validation("outside_working_hours", "Time is outside working hours.")
	}

	breaks, err := uc.repo.ListBreaks(ctx, resource.ID)
	if err != nil {
		return nil, err
	}
	if domain.OverlapsAnyBreak(start, breaks, start, end) {
		return nil, apperr.Validation("outside_working_hours", "Time overlaps a break.")
	}

	// Online bookings owe the service's deposit up front; in-shop bookings
	// settle the full price on site.
	deposit := 0.0
	if domain.PaymentMethod(in.PaymentMethod) == domain.MethodOnline {
		deposit = service.DepositAmount
	}

	b := &models.Booking{
		Reference:          uuid.NewString(),
		TenantID:           tenantID,
		ResourceID:         resource.ID,
		CustomerID:         customer.ID,
		ServiceID:          service.ID,
		StartTime:          start,
		EndTime:            end,
		Status:             string(status),
		PaymentStatus:      string(paymentStatus),
		PaymentMethod:      in.PaymentMethod,
		DepositAmount:      deposit,
		OutstandingBalance: service.Price - deposit,
		Notes:              in.Notes,
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Read-then-write without this bracket is the classic double-booking
	// race: the day's rows are locked and re-checked in the same
	// serializable transaction that inserts.
	err = uc.repo.InSlotTransaction(ctx, func(txr domain.Repository) error {
		existing, err := txr.LockBookingsForDay(ctx, resource.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if err := domain.AssertAvailable(existing, start, end, 0); err != nil {
			return err
		}
		return txr.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	// Side effects never fail the booking.
	uc.notifier.Dispatch(*b)
	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})
	uc.slots.Invalidate(ctx, tenantID, resource.ID, in.Date)

	return b, nil
}
