package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/models"
)

// AutoMigrate creates or updates the database schema for all models and
// installs the uniqueness guard for active requests.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Slot{},
		&models.Request{},
		&models.Session{},
		&models.Feedback{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := ensureActiveRequestIndex(db); err != nil {
		return fmt.Errorf("active request index: %w", err)
	}

	return nil
}

// ensureActiveRequestIndex installs a partial unique index so that at most one
// PENDING or APPROVED request can reference a slot. MySQL has no partial
// indexes; there the row-lock taken during request creation guards alone.
func ensureActiveRequestIndex(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		return db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_slot_active ` +
				`ON requests (slot_id) WHERE status IN ('PENDING','APPROVED')`,
		).Error
	default:
		return nil
	}
}
