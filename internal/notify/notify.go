package notify

import (
	"go.uber.org/zap"

	"github.com/agendahub/scheduler/internal/models"
)

// Sender delivers a booking-created notification. Implementations live
// outside the core (email, SMS); failures are theirs to retry.
type Sender interface {
	BookingCreated(b models.Booking) error
}

// Dispatcher decouples booking creation from delivery: events are queued and
// worked off a single goroutine, and a full queue drops the event rather
// than blocking or failing the booking.
type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan models.Booking
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan models.Booking, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for b := range d.queue {
		if err := d.sender.BookingCreated(b); err != nil {
			d.log.Warn("booking notification failed",
				zap.Uint("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch is fire-and-forget: it never blocks and never reports failure to
// the caller.
func (d *Dispatcher) Dispatch(b models.Booking) {
	select {
	case d.queue <- b:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.Uint("booking_id", b.ID),
		)
	}
}

// LogSender is the default Sender: it only records the event. Real channels
// plug in behind the same interface.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) BookingCreated(b models.Booking) error {
	s.log.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.Uint("tenant_id", b.TenantID),
		zap.Uint("resource_id", b.ResourceID),
		zap.Time("start_time", b.StartTime),
	)
	return nil
}
