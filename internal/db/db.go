package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/config"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.Use(tenant.Guard{}); err != nil {
		log.Fatalf("failed to install tenant guard: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Resource{},
		&models.Service{},
		&models.Customer{},
		&models.WorkingHoursRule{},
		&models.BreakInterval{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	applyRowPolicies(db)

	return db
}

// Tenant-owned tables get a row-level security policy keyed on the
// transaction-local app.tenant_id marker. The sentinel 0 admits all rows
// (isolation bypass). The policies are FORCEd so they bind even the table
// owner: the server connects with the same role that ran the migration, and
// without FORCE that role would skip policy evaluation entirely and every
// query would run unfiltered. An unset marker therefore matches no rows.
func applyRowPolicies(db *gorm.DB) {
	tables := []string{
		"resources",
		"services",
		"customers",
		"working_hours_rules",
		"break_intervals",
		"bookings",
		"audit_logs",
	}

	for _, table := range tables {
		stmts := []string{
			"ALTER TABLE " + table + " ENABLE ROW LEVEL SECURITY",
			"ALTER TABLE " + table + " FORCE ROW LEVEL SECURITY",
			"DROP POLICY IF EXISTS tenant_isolation ON " + table,
			`CREATE POLICY tenant_isolation ON ` + table + ` USING (
                NULLIF(current_setting('app.tenant_id', true), '')::bigint = 0
                OR tenant_id = NULLIF(current_setting('app.tenant_id', true), '')::bigint
            )`,
		}
		for _, stmt := range stmts {
			// A table left without its policy would serve every tenant's
			// rows, so any failure here is fatal.
			if err := db.Exec(stmt).Error; err != nil {
				log.Fatalf("failed to apply row policy on %s: %v", table, err)
			}
		}
	}
}
