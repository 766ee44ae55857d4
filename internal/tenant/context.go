package tenant

import "context"

// Tenant identity is carried on the request context, never in a process-wide
// variable: concurrent requests each see only their own tenant.

type ctxKey int

const (
	tenantKey ctxKey = iota
	bypassKey
	privilegedKey
)

// WithTenant returns a context bound to the given tenant for the rest of the
// unit of work.
func WithTenant(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, tenantKey, id)
}

// FromContext returns the active tenant, or false when none is set.
func FromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(tenantKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Clear removes the active tenant. The resulting context is privileged-free:
// queries on tenant-owned models will be rejected by the guard.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, tenantKey, uint(0))
}

// AsPrivileged exempts the context from the in-process guard for bootstrap
// code paths that legitimately run without a tenant. The database row
// policies still apply; row access needs a marker regardless. Never use it
// when handling a request.
func AsPrivileged(ctx context.Context) context.Context {
	return context.WithValue(ctx, privilegedKey, true)
}

func IsPrivileged(ctx context.Context) bool {
	ok, _ := ctx.Value(privilegedKey).(bool)
	return ok
}

func withBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey, true)
}

// InBypass reports whether the context is inside a Bypass window.
func InBypass(ctx context.Context) bool {
	ok, _ := ctx.Value(bypassKey).(bool)
	return ok
}
