package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTenantRoundTrip(t *testing.T) {
	ctx := WithTenant(context.Background(), 7)

	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestFromContextUnset(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestZeroTenantIsNotScoped(t *testing.T) {
	ctx := WithTenant(context.Background(), 0)
	_, ok := FromContext(ctx)
	assert.False(t, ok)
}

func TestClearDropsTenant(t *testing.T) {
	ctx := WithTenant(context.Background(), 7)
	ctx = Clear(ctx)

	_, ok := FromContext(ctx)
	assert.False(t, ok)
	assert.False(t, IsPrivileged(ctx))
}

func TestPrivilegedFlag(t *testing.T) {
	ctx := AsPrivileged(context.Background())
	assert.True(t, IsPrivileged(ctx))
	assert.False(t, IsPrivileged(context.Background()))
}

func TestBypassFlag(t *testing.T) {
	ctx := withBypass(WithTenant(context.Background(), 3))
	assert.True(t, InBypass(ctx))
	assert.False(t, InBypass(context.Background()))

	// Bypass does not erase the ambient tenant identity.
	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)
}
