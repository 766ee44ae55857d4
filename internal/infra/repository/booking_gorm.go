package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agendahub/scheduler/internal/apperr"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// BookingGormRepository persists the booking core through gorm. Every call
// runs inside a tenant-bound transaction opened by the scope; tx is set only
// on the copy handed to InSlotTransaction callbacks.
type BookingGormRepository struct {
	scope *tenant.Scope
	tx    *gorm.DB
}

func NewBookingGormRepository(scope *tenant.Scope) *BookingGormRepository {
	return &BookingGormRepository{scope: scope}
}

func (r *BookingGormRepository) run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if r.tx != nil {
		return fn(r.tx.WithContext(ctx))
	}
	return r.scope.Transaction(ctx, fn)
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *BookingGormRepository) GetTenant(
	ctx context.Context,
	tenantID uint,
) (*models.Tenant, error) {

	var tn models.Tenant
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.First(&tn, tenantID).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "tenant_not_found", "Tenant not found.")
	}
	return &tn, nil
}

func (r *BookingGormRepository) GetResource(
	ctx context.Context,
	resourceID uint,
) (*models.Resource, error) {

	var res models.Resource
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.First(&res, resourceID).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "resource_not_found", "Resource not found.")
	}
	return &res, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.First(&svc, serviceID).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "service_not_found", "Service not found.")
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetCustomer(
	ctx context.Context,
	customerID uint,
) (*models.Customer, error) {

	var cust models.Customer
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.First(&cust, customerID).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "customer_not_found", "Customer not found.")
	}
	return &cust, nil
}

// --------------------------------------------------
// Availability inputs
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHoursRule(
	ctx context.Context,
	resourceID uint,
	weekday int,
) (*models.WorkingHoursRule, error) {

	var rule models.WorkingHoursRule
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.
			Where("resource_id = ? AND weekday = ?", resourceID, weekday).
			First(&rule).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No rule means no availability that weekday, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal("working_hours_lookup_failed", err)
	}
	return &rule, nil
}

func (r *BookingGormRepository) ListBreaks(
	ctx context.Context,
	resourceID uint,
) ([]models.BreakInterval, error) {

	var breaks []models.BreakInterval
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.
			Where("resource_id = ?", resourceID).
			Order("start_time ASC").
			Find(&breaks).Error
	})
	if err != nil {
		return nil, apperr.Internal("breaks_lookup_failed", err)
	}
	return breaks, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	resourceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.run(ctx, func(tx *gorm.DB) error {
		return dayQuery(tx, resourceID, dayStart, dayEnd).Find(&bookings).Error
	})
	if err != nil {
		return nil, apperr.Internal("bookings_lookup_failed", err)
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) InSlotTransaction(
	ctx context.Context,
	fn func(txr domain.Repository) error,
) error {

	if r.tx != nil {
		return fn(r)
	}
	err := r.scope.Serializable(ctx, func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{scope: r.scope, tx: tx})
	})
	if err != nil {
		// Under serializable isolation the losing transaction may only find
		// out at COMMIT, outside any statement fn ran. Map here too so the
		// caller sees a conflict, not a bare driver error.
		return mapPgError(err)
	}
	return nil
}

func (r *BookingGormRepository) LockBookingsForDay(
	ctx context.Context,
	resourceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.run(ctx, func(tx *gorm.DB) error {
		return dayQuery(tx, resourceID, dayStart, dayEnd).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Find(&bookings).Error
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return bookings, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.Create(b).Error
	})
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.First(&b, bookingID).Error
	})
	if err != nil {
		return nil, notFoundOr(err, "booking_not_found", "Booking not found.")
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.run(ctx, func(tx *gorm.DB) error {
		// The reference is globally unique, so this lookup legitimately
		// crosses tenants. Keep the bypass window to this single query.
		return tenant.Bypass(ctx, tx, func(bctx context.Context, btx *gorm.DB) error {
			return btx.Where("reference = ?", reference).First(&b).Error
		})
	})
	if err != nil {
		return nil, notFoundOr(err, "booking_not_found", "Booking not found.")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.Save(b).Error
	})
	if err != nil {
		return apperr.Internal("booking_update_failed", err)
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	resourceID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.run(ctx, func(tx *gorm.DB) error {
		return tx.
			Where(
				"resource_id = ? AND start_time >= ? AND start_time < ?",
				resourceID, start, end,
			).
			Order("start_time ASC").
			Find(&bookings).Error
	})
	if err != nil {
		return nil, apperr.Internal("bookings_lookup_failed", err)
	}
	return bookings, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func dayQuery(tx *gorm.DB, resourceID uint, dayStart, dayEnd time.Time) *gorm.DB {
	return tx.
		Model(&models.Booking{}).
		Where(
			"resource_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			resourceID, string(domain.StatusCancelled), dayStart, dayEnd,
		).
		Order("start_time ASC")
}

func notFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(code, message)
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Internal("storage_failure", err)
}

// mapPgError turns the two races the slot transaction can lose into the
// taxonomy: a sibling committed first (serialization failure) reads as a
// conflict, a uniqueness violation that slipped through reads as a generic
// creation failure.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure:
			return apperr.Conflict("time_conflict", "The requested time is no longer available.")
		case pgUniqueViolation:
			return apperr.Internal("booking_create_failed", err)
		}
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Internal("storage_failure", err)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
