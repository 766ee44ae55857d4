package booking

import (
	"context"

	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
)

// LookupBookingByReference resolves a booking by its public token. This is
// the one operation allowed to cross tenant boundaries (the token is
// globally unique), so the repository runs it inside a bypass window.
type LookupBookingByReference struct {
	repo domain.Repository
}

func NewLookupBookingByReference(repo domain.Repository) *LookupBookingByReference {
	return &LookupBookingByReference{repo: repo}
}

func (uc *LookupBookingByReference) Execute(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {
	return uc.repo.GetBookingByReference(ctx, reference)
}
