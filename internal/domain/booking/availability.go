package booking

import (
	"time"

	"github.com/agendahub/scheduler/internal/models"
)

// SlotStepMinutes is the fixed granularity of candidate start times.
const SlotStepMinutes = 15

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityInput is everything slot generation needs, already fetched.
// All times are in the tenant's location.
type AvailabilityInput struct {
	Date     time.Time
	Now      time.Time
	Rule     *models.WorkingHoursRule
	Bookings []models.Booking
	Breaks   []models.BreakInterval
	Duration time.Duration
}

// Slots computes the ordered candidate start times for one resource and day.
// Candidates step every SlotStepMinutes from the rule's start; generation
// stops at the first candidate whose end would pass the rule's end — the
// day's capacity ends there. A candidate survives if it overlaps no live
// booking and no break under the half-open rule, and, on the current day,
// starts strictly after now.
func Slots(in AvailabilityInput) []TimeSlot {
	slots := []TimeSlot{}

	if in.Rule == nil || !in.Rule.Active || in.Rule.StartTime == "" || in.Rule.EndTime == "" {
		return slots
	}

	dayStart := atTimeOfDay(in.Date, in.Rule.StartTime)
	dayEnd := atTimeOfDay(in.Date, in.Rule.EndTime)

	today := sameDay(in.Date, in.Now)
	step := SlotStepMinutes * time.Minute

	for cur := dayStart; !cur.Add(in.Duration).After(dayEnd); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(in.Duration)

		if today && !slotStart.After(in.Now) {
			continue
		}

		if len(FindConflicts(in.Bookings, slotStart, slotEnd, 0)) > 0 {
			continue
		}

		if overlapsBreak(in.Date, in.Breaks, slotStart, slotEnd) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots
}

// WithinRule reports whether [start, end) falls inside the rule's hours.
// A missing or inactive rule admits nothing.
func WithinRule(rule *models.WorkingHoursRule, start, end time.Time) bool {
	if rule == nil || !rule.Active || rule.StartTime == "" || rule.EndTime == "" {
		return false
	}
	ruleStart := atTimeOfDay(start, rule.StartTime)
	ruleEnd := atTimeOfDay(start, rule.EndTime)
	return !start.Before(ruleStart) && !end.After(ruleEnd)
}

// OverlapsAnyBreak reports whether [start, end) overlaps one of the
// resource's recurring breaks, projected onto the given date.
func OverlapsAnyBreak(date time.Time, breaks []models.BreakInterval, start, end time.Time) bool {
	return overlapsBreak(date, breaks, start, end)
}

func overlapsBreak(date time.Time, breaks []models.BreakInterval, start, end time.Time) bool {
	for _, br := range breaks {
		if br.StartTime == "" || br.EndTime == "" {
			continue
		}
		brStart := atTimeOfDay(date, br.StartTime)
		brEnd := atTimeOfDay(date, br.EndTime)
		if Overlaps(start, end, brStart, brEnd) {
			return true
		}
	}
	return false
}

// atTimeOfDay projects an "HH:MM" wall-clock string onto the given date.
func atTimeOfDay(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
