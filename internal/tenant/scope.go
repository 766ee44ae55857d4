package tenant

import (
	"context"
	"database/sql"
	"strconv"

	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
)

// The row-level security policies filter on the transaction-local setting
// app.tenant_id. Connections are pooled and reused across tenants, so the
// marker is re-issued on every transaction and scoped to it (set_config with
// is_local=true); it never survives past commit or rollback.

// bypassMarker is a reserved sentinel matching no real tenant row. The RLS
// policies treat it as admit-all.
const bypassMarker = "0"

// Scope binds every transaction it opens to the tenant carried on the
// context. It is the single entry point repositories use to touch the
// database.
type Scope struct {
	db *gorm.DB
}

func NewScope(db *gorm.DB) *Scope {
	return &Scope{db: db}
}

// Transaction opens a transaction, stamps it with the context's tenant and
// runs fn inside it. If no tenant is set, no marker is issued and the forced
// row policies match nothing: tenant-owned tables read empty and reject
// writes until a marker is bound.
func (s *Scope) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.transaction(ctx, nil, fn)
}

// Serializable is Transaction at the serializable isolation level, used by
// writes that must be atomic with respect to concurrent booking attempts.
func (s *Scope) Serializable(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.transaction(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (s *Scope) transaction(ctx context.Context, opts *sql.TxOptions, fn func(tx *gorm.DB) error) error {
	run := func(tx *gorm.DB) error {
		if id, ok := FromContext(ctx); ok {
			if err := setMarker(tx, strconv.FormatUint(uint64(id), 10)); err != nil {
				// Fail closed: an unbound transaction must never be
				// handed to the caller.
				return apperr.Internal("tenant_bind_failed", err)
			}
		}
		return fn(tx)
	}
	if opts != nil {
		return s.db.WithContext(ctx).Transaction(run, opts)
	}
	return s.db.WithContext(ctx).Transaction(run)
}

// Bypass runs fn with the marker temporarily rebound to the admit-all
// sentinel, then restores whatever was bound before, success or failure.
// It must be called inside an already-open transaction: the marker is
// transaction-scoped.
func Bypass(ctx context.Context, tx *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	var prev string
	if err := tx.Raw("SELECT COALESCE(current_setting('app.tenant_id', true), '')").Scan(&prev).Error; err != nil {
		return apperr.Internal("tenant_bypass_failed", err)
	}

	if err := setMarker(tx, bypassMarker); err != nil {
		return apperr.Internal("tenant_bypass_failed", err)
	}

	bctx := withBypass(ctx)
	err := fn(bctx, tx.WithContext(bctx))

	if rerr := setMarker(tx, prev); rerr != nil && err == nil {
		err = apperr.Internal("tenant_restore_failed", rerr)
	}
	return err
}

func setMarker(tx *gorm.DB, value string) error {
	return tx.Exec("SELECT set_config('app.tenant_id', ?, true)", value).Error
}
