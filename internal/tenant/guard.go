package tenant

import (
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
)

// Guard is a gorm plugin that rejects statements touching tenant-owned
// models when the context carries neither a tenant, a bypass window, nor a
// privileged marker. The database policies already deny unscoped reads;
// the guard catches mistakes before they reach the wire and covers backends
// without native row filtering.
type Guard struct{}

func (Guard) Name() string { return "tenant:guard" }

func (g Guard) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant:guard_query", guarded); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("tenant:guard_create", guarded); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant:guard_update", guarded); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("tenant:guard_delete", guarded); err != nil {
		return err
	}
	return db.Callback().Row().Before("gorm:row").Register("tenant:guard_row", guarded)
}

func guarded(db *gorm.DB) {
	stmt := db.Statement
	if stmt == nil || stmt.Schema == nil {
		return
	}
	if _, owned := stmt.Schema.FieldsByName["TenantID"]; !owned {
		return
	}

	ctx := stmt.Context
	if ctx == nil {
		_ = db.AddError(apperr.Forbidden("tenant_unscoped", "Operation requires a tenant scope."))
		return
	}
	if IsPrivileged(ctx) || InBypass(ctx) {
		return
	}
	if _, ok := FromContext(ctx); ok {
		return
	}

	_ = db.AddError(apperr.Forbidden("tenant_unscoped", "Operation requires a tenant scope."))
}
