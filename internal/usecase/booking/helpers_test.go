package booking

import (
	"context"
	"sync"
	"time"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/audit"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
)

// In-memory Repository double. InSlotTransaction serializes callers the way
// the serializable transaction does, so the concurrency test exercises the
// real at-most-one-winner behavior.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	tenants   map[uint]models.Tenant
	resources map[uint]models.Resource
	services  map[uint]models.Service
	customers map[uint]models.Customer
	rules     map[[2]int]models.WorkingHoursRule
	breaks    []models.BreakInterval
	bookings  []models.Booking

	nextID      uint
	updateCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:   map[uint]models.Tenant{},
		resources: map[uint]models.Resource{},
		services:  map[uint]models.Service{},
		customers: map[uint]models.Customer{},
		rules:     map[[2]int]models.WorkingHoursRule{},
		nextID:    1,
	}
}

func (f *fakeRepo) GetTenant(_ context.Context, id uint) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tn, ok := f.tenants[id]; ok {
		return &tn, nil
	}
	return nil, apperr.NotFound("tenant_not_found", "Tenant not found.")
}

func (f *fakeRepo) GetResource(_ context.Context, id uint) (*models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resources[id]; ok {
		return &r, nil
	}
	return nil, apperr.NotFound("resource_not_found", "Resource not found.")
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.services[id]; ok {
		return &s, nil
	}
	return nil, apperr.NotFound("service_not_found", "Service not found.")
}

func (f *fakeRepo) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.customers[id]; ok {
		return &c, nil
	}
	return nil, apperr.NotFound("customer_not_found", "Customer not found.")
}

func (f *fakeRepo) GetWorkingHoursRule(_ context.Context, resourceID uint, weekday int) (*models.WorkingHoursRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rules[[2]int{int(resourceID), weekday}]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListBreaks(_ context.Context, resourceID uint) ([]models.BreakInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BreakInterval
	for _, br := range f.breaks {
		if br.ResourceID == resourceID {
			out = append(out, br)
		}
	}
	return out, nil
}

func (f *fakeRepo) listDay(resourceID uint, dayStart, dayEnd time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ResourceID != resourceID || b.Status == string(domain.StatusCancelled) {
			continue
		}
		if !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, resourceID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listDay(resourceID, dayStart, dayEnd), nil
}

func (f *fakeRepo) InSlotTransaction(_ context.Context, fn func(txr domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeRepo) LockBookingsForDay(_ context.Context, resourceID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listDay(resourceID, dayStart, dayEnd), nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, apperr.NotFound("booking_not_found", "Booking not found.")
}

func (f *fakeRepo) GetBookingByReference(_ context.Context, ref string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Reference == ref {
			out := b
			return &out, nil
		}
	}
	return nil, apperr.NotFound("booking_not_found", "Booking not found.")
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return apperr.NotFound("booking_not_found", "Booking not found.")
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, resourceID uint, start, end time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ResourceID == resourceID && !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Collaborator doubles
// --------------------------------------------------

type fakeNotifier struct {
	mu     sync.Mutex
	events []models.Booking
}

func (f *fakeNotifier) Dispatch(b models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, b)
}

type fakeAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (f *fakeAuditor) Dispatch(ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

type fakeRefunder struct {
	calls []uint
	fail  bool
}

func (f *fakeRefunder) Refund(_ context.Context, b *models.Booking) error {
	f.calls = append(f.calls, b.ID)
	if f.fail {
		return apperr.Internal("refund_failed", nil)
	}
	return nil
}
