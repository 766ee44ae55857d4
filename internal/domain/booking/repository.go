package booking

import (
	"context"
	"time"

	"github.com/agendahub/scheduler/internal/models"
)

// Repository is the persistence port of the booking core. Every method runs
// tenant-scoped: implementations derive the tenant from the context.
type Repository interface {
	// -------- Referenced entities --------
	GetTenant(ctx context.Context, tenantID uint) (*models.Tenant, error)

	GetResource(ctx context.Context, resourceID uint) (*models.Resource, error)

	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	GetCustomer(ctx context.Context, customerID uint) (*models.Customer, error)

	// -------- Availability inputs --------
	GetWorkingHoursRule(
		ctx context.Context,
		resourceID uint,
		weekday int,
	) (*models.WorkingHoursRule, error)

	ListBreaks(ctx context.Context, resourceID uint) ([]models.BreakInterval, error)

	ListBookingsForDay(
		ctx context.Context,
		resourceID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / conflict) --------

	// InSlotTransaction runs fn inside one serializable transaction so the
	// conflict re-check and the insert are atomic with respect to sibling
	// booking attempts on the same resource and day.
	InSlotTransaction(ctx context.Context, fn func(txr Repository) error) error

	// LockBookingsForDay reads the resource's bookings for the day under an
	// exclusive row lock. Only meaningful inside InSlotTransaction.
	LockBookingsForDay(
		ctx context.Context,
		resourceID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Booking, error)

	CreateBooking(ctx context.Context, b *models.Booking) error

	// -------- Booking (state change) --------
	GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error)

	// GetBookingByReference resolves a booking by its public token across
	// tenants. The only caller of the isolation bypass.
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error

	ListBookingsForPeriod(
		ctx context.Context,
		resourceID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
