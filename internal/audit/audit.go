package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

type Event struct {
	TenantID uint
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Logger writes audit rows tenant-scoped: the worker rebuilds a tenant
// context from the event, so the rows land under the owning tenant even
// though the write happens off-request.
type Logger struct {
	scope *tenant.Scope
}

func NewLogger(scope *tenant.Scope) *Logger {
	return &Logger{scope: scope}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		TenantID: ev.TenantID,
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	ctx := tenant.WithTenant(context.Background(), ev.TenantID)
	return l.scope.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

// Dispatcher queues audit events off the request path. A full queue drops
// the event: audit must never break the primary operation.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
