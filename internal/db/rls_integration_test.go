//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

// Exercises the forced row policies against a live database:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/db/
//
// The test connects as the table owner on purpose; FORCE ROW LEVEL SECURITY
// must filter that role like any other.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.Use(tenant.Guard{}))
	require.NoError(t, gdb.AutoMigrate(&models.Tenant{}, &models.Resource{}))
	applyRowPolicies(gdb)

	// TRUNCATE is not policy-filtered, so cleanup works owner-side.
	require.NoError(t, gdb.Exec("TRUNCATE resources, tenants RESTART IDENTITY CASCADE").Error)
	return gdb
}

func seedTwoTenants(t *testing.T, gdb *gorm.DB, scope *tenant.Scope) (models.Tenant, models.Tenant) {
	t.Helper()

	a := models.Tenant{Name: "Tenant A", Slug: "tenant-a", Timezone: "UTC"}
	b := models.Tenant{Name: "Tenant B", Slug: "tenant-b", Timezone: "UTC"}
	require.NoError(t, gdb.Create(&a).Error)
	require.NoError(t, gdb.Create(&b).Error)

	for _, tn := range []models.Tenant{a, b} {
		ctx := tenant.WithTenant(context.Background(), tn.ID)
		res := models.Resource{TenantID: tn.ID, Name: "Chair " + tn.Slug, Active: true}
		require.NoError(t, scope.Transaction(ctx, func(tx *gorm.DB) error {
			return tx.Create(&res).Error
		}))
	}
	return a, b
}

func TestRowPoliciesIsolateTenants(t *testing.T) {
	gdb := openTestDB(t)
	scope := tenant.NewScope(gdb)
	a, b := seedTwoTenants(t, gdb, scope)

	ctxA := tenant.WithTenant(context.Background(), a.ID)

	var visible []models.Resource
	require.NoError(t, scope.Transaction(ctxA, func(tx *gorm.DB) error {
		return tx.Find(&visible).Error
	}))
	require.Len(t, visible, 1)
	assert.Equal(t, a.ID, visible[0].TenantID)

	// Cross-tenant read by primary key comes back not-found, not forbidden.
	var other models.Resource
	err := scope.Transaction(ctxA, func(tx *gorm.DB) error {
		return tx.Where("tenant_id = ?", b.ID).First(&other).Error
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRowPoliciesBlockCrossTenantWrites(t *testing.T) {
	gdb := openTestDB(t)
	scope := tenant.NewScope(gdb)
	a, b := seedTwoTenants(t, gdb, scope)

	var victim models.Resource
	ctxB := tenant.WithTenant(context.Background(), b.ID)
	require.NoError(t, scope.Transaction(ctxB, func(tx *gorm.DB) error {
		return tx.First(&victim).Error
	}))

	// Under tenant A, B's row is invisible to UPDATE: zero rows affected.
	ctxA := tenant.WithTenant(context.Background(), a.ID)
	require.NoError(t, scope.Transaction(ctxA, func(tx *gorm.DB) error {
		res := tx.Model(&models.Resource{}).Where("id = ?", victim.ID).Update("name", "hijacked")
		if res.Error != nil {
			return res.Error
		}
		assert.Zero(t, res.RowsAffected)
		return nil
	}))

	require.NoError(t, scope.Transaction(ctxB, func(tx *gorm.DB) error {
		var after models.Resource
		if err := tx.First(&after, victim.ID).Error; err != nil {
			return err
		}
		assert.NotEqual(t, "hijacked", after.Name)
		return nil
	}))
}

// The server connects as the role that ran the migration, i.e. the table
// owner. Without FORCE the owner skips policy evaluation; an unset marker
// must read empty, not everything.
func TestRowPoliciesBindTableOwner(t *testing.T) {
	gdb := openTestDB(t)
	scope := tenant.NewScope(gdb)
	seedTwoTenants(t, gdb, scope)

	ctx := tenant.AsPrivileged(context.Background())
	var visible []models.Resource
	require.NoError(t, scope.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Find(&visible).Error
	}))
	assert.Empty(t, visible)
}

func TestBypassSeesAllTenants(t *testing.T) {
	gdb := openTestDB(t)
	scope := tenant.NewScope(gdb)
	a, _ := seedTwoTenants(t, gdb, scope)

	ctxA := tenant.WithTenant(context.Background(), a.ID)
	var during, after []models.Resource
	require.NoError(t, scope.Transaction(ctxA, func(tx *gorm.DB) error {
		err := tenant.Bypass(ctxA, tx, func(bctx context.Context, btx *gorm.DB) error {
			return btx.Find(&during).Error
		})
		if err != nil {
			return err
		}
		// The previous marker is restored once the bypass window closes.
		return tx.Find(&after).Error
	}))

	assert.Len(t, during, 2)
	require.Len(t, after, 1)
	assert.Equal(t, a.ID, after[0].TenantID)
}
