package booking

import (
	"time"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/models"
)

// Overlaps applies the half-open interval rule [start, end): touching
// boundaries are not an overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflicts returns the non-cancelled bookings overlapping [start, end).
// excludeID skips one booking, used when re-validating a move of an existing
// booking against its own row.
func FindConflicts(existing []models.Booking, start, end time.Time, excludeID uint) []models.Booking {
	var conflicts []models.Booking
	for _, b := range existing {
		if b.Status == string(StatusCancelled) {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// AssertAvailable rejects [start, end) with a conflict error if any live
// booking in existing overlaps it.
func AssertAvailable(existing []models.Booking, start, end time.Time, excludeID uint) error {
	if len(FindConflicts(existing, start, end, excludeID)) > 0 {
		return apperr.Conflict("time_conflict", "The requested time is no longer available.")
	}
	return nil
}
