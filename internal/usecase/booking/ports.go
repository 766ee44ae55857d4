package booking

import (
	"github.com/agendahub/scheduler/internal/audit"
	"github.com/agendahub/scheduler/internal/models"
)

// Side-effect collaborators of the booking use cases. Both are
// fire-and-forget: implementations must never block the caller or surface
// delivery failures into the primary operation.

type Notifier interface {
	Dispatch(b models.Booking)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}
