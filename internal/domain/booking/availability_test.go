package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/scheduler/internal/models"
)

var testDay = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC) // a Monday

func rule(start, end string) *models.WorkingHoursRule {
	return &models.WorkingHoursRule{
		ResourceID: 1,
		Weekday:    int(time.Monday),
		StartTime:  start,
		EndTime:    end,
		Active:     true,
	}
}

func bookingAt(start, end string, status Status) models.Booking {
	return models.Booking{
		ID:         1,
		ResourceID: 1,
		StartTime:  atTimeOfDay(testDay, start),
		EndTime:    atTimeOfDay(testDay, end),
		Status:     string(status),
	}
}

func starts(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestSlotsFullOpenDay(t *testing.T) {
	slots := Slots(AvailabilityInput{
		Date:     testDay,
		Now:      testDay.AddDate(-1, 0, 0),
		Rule:     rule("09:00", "17:00"),
		Duration: 30 * time.Minute,
	})

	got := starts(slots)
	require.NotEmpty(t, got)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "16:30", got[len(got)-1])
	assert.NotContains(t, got, "16:45")
	assert.Len(t, got, 31)
}

func TestSlotsNoRule(t *testing.T) {
	tests := []struct {
		name string
		rule *models.WorkingHoursRule
	}{
		{name: "absent rule", rule: nil},
		{name: "inactive rule", rule: &models.WorkingHoursRule{StartTime: "09:00", EndTime: "17:00", Active: false}},
		{name: "empty times", rule: &models.WorkingHoursRule{Active: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Slots(AvailabilityInput{
				Date:     testDay,
				Now:      testDay.AddDate(-1, 0, 0),
				Rule:     tt.rule,
				Duration: 30 * time.Minute,
			})
			assert.Empty(t, slots)
		})
	}
}

func TestSlotsExistingBooking(t *testing.T) {
	slots := Slots(AvailabilityInput{
		Date:     testDay,
		Now:      testDay.AddDate(-1, 0, 0),
		Rule:     rule("09:00", "17:00"),
		Bookings: []models.Booking{bookingAt("10:00", "10:30", StatusConfirmed)},
		Duration: 30 * time.Minute,
	})

	got := starts(slots)
	// 09:45 would end 10:15, inside the booking; 09:30 ends exactly at its
	// start and 10:30 starts exactly at its end, both allowed.
	assert.NotContains(t, got, "09:45")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:15")
	assert.Contains(t, got, "09:30")
	assert.Contains(t, got, "10:30")
}

func TestSlotsCancelledBookingFreesSlot(t *testing.T) {
	slots := Slots(AvailabilityInput{
		Date:     testDay,
		Now:      testDay.AddDate(-1, 0, 0),
		Rule:     rule("09:00", "17:00"),
		Bookings: []models.Booking{bookingAt("10:00", "10:30", StatusCancelled)},
		Duration: 30 * time.Minute,
	})

	assert.Contains(t, starts(slots), "10:00")
}

func TestSlotsBreakInterval(t *testing.T) {
	slots := Slots(AvailabilityInput{
		Date: testDay,
		Now:  testDay.AddDate(-1, 0, 0),
		Rule: rule("09:00", "17:00"),
		Breaks: []models.BreakInterval{
			{ResourceID: 1, StartTime: "12:00", EndTime: "13:00"},
		},
		Duration: 30 * time.Minute,
	})

	got := starts(slots)
	// 11:45 would end 12:15, inside the break; 11:30 ends exactly at the
	// break's start, 13:00 starts exactly at its end.
	assert.NotContains(t, got, "11:45")
	assert.NotContains(t, got, "12:00")
	assert.NotContains(t, got, "12:45")
	assert.Contains(t, got, "11:30")
	assert.Contains(t, got, "13:00")
}

func TestSlotsSameDayPastTimesExcluded(t *testing.T) {
	now := atTimeOfDay(testDay, "12:00")

	slots := Slots(AvailabilityInput{
		Date:     testDay,
		Now:      now,
		Rule:     rule("09:00", "17:00"),
		Duration: 30 * time.Minute,
	})

	got := starts(slots)
	require.NotEmpty(t, got)
	// Candidates must start strictly after now: 12:00 itself is out.
	assert.Equal(t, "12:15", got[0])
	assert.NotContains(t, got, "12:00")
}

func TestSlotsIdempotent(t *testing.T) {
	in := AvailabilityInput{
		Date:     testDay,
		Now:      testDay.AddDate(-1, 0, 0),
		Rule:     rule("09:00", "17:00"),
		Bookings: []models.Booking{bookingAt("10:00", "10:30", StatusConfirmed)},
		Duration: 30 * time.Minute,
	}

	assert.Equal(t, Slots(in), Slots(in))
}

func TestSlotsDurationLongerThanDay(t *testing.T) {
	slots := Slots(AvailabilityInput{
		Date:     testDay,
		Now:      testDay.AddDate(-1, 0, 0),
		Rule:     rule("09:00", "10:00"),
		Duration: 2 * time.Hour,
	})

	assert.Empty(t, slots)
}

func TestWithinRule(t *testing.T) {
	r := rule("09:00", "17:00")

	assert.True(t, WithinRule(r, atTimeOfDay(testDay, "09:00"), atTimeOfDay(testDay, "09:30")))
	assert.True(t, WithinRule(r, atTimeOfDay(testDay, "16:30"), atTimeOfDay(testDay, "17:00")))
	assert.False(t, WithinRule(r, atTimeOfDay(testDay, "08:45"), atTimeOfDay(testDay, "09:15")))
	assert.False(t, WithinRule(r, atTimeOfDay(testDay, "16:45"), atTimeOfDay(testDay, "17:15")))
	assert.False(t, WithinRule(nil, atTimeOfDay(testDay, "10:00"), atTimeOfDay(testDay, "10:30")))
}
