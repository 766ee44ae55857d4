package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduler/internal/apperr"
	domain "github.com/agendahub/scheduler/internal/domain/booking"
	"github.com/agendahub/scheduler/internal/models"
)

func availabilityInput() GetAvailabilityInput {
	return GetAvailabilityInput{ResourceID: 1, ServiceID: 1, Date: testDate}
}

func TestGetAvailability_FullOpenDay(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(tenantCtx(), availabilityInput())
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// 09:00-17:00 rule, 30 min service, 15 min step.
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[0].End)
	assert.Equal(t, "16:30", slots[len(slots)-1].Start)
	assert.Len(t, slots, 31)
}

func TestGetAvailability_ExcludesBookedSlots(t *testing.T) {
	repo := seedRepo()
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	repo.bookings = append(repo.bookings, models.Booking{
		ID: 1, TenantID: 1, ResourceID: 1,
		StartTime: start, EndTime: start.Add(30 * time.Minute),
		Status: string(domain.StatusConfirmed),
	})
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(tenantCtx(), availabilityInput())
	require.NoError(t, err)

	starts := map[string]bool{}
	for _, s := range slots {
		starts[s.Start] = true
	}
	assert.False(t, starts["09:45"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:15"])
	assert.True(t, starts["09:30"])
	assert.True(t, starts["10:30"])
}

func TestGetAvailability_ClosedDayIsEmpty(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	in := availabilityInput()
	in.Date = "2030-01-08" // Tuesday, no rule

	slots, err := uc.Execute(tenantCtx(), in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	in := availabilityInput()
	in.Date = "07/01/2030"

	_, err := uc.Execute(tenantCtx(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "invalid_date", apperr.CodeOf(err))
}

func TestGetAvailability_UnknownService(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	in := availabilityInput()
	in.ServiceID = 99

	_, err := uc.Execute(tenantCtx(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetAvailability_RequiresTenantScope(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
