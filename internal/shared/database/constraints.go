package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one active session per plate. The start flow's lookup-then-create
	// race is settled here, not in application code.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_active_session_per_plate
		ON parking_sessions (license_plate)
		WHERE stopped IS NULL;
	`).Error
	if err != nil {
		return err
	}

	// Reserved counter stays inside [0, capacity] even if a bug bypasses the
	// guarded UPDATE statements.
	err = db.Exec(`
		ALTER TABLE parking_lots
		DROP CONSTRAINT IF EXISTS check_reserved_within_capacity;
	`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		ALTER TABLE parking_lots
		ADD CONSTRAINT check_reserved_within_capacity
		CHECK (reserved >= 0 AND reserved <= capacity);
	`).Error
	if err != nil {
		return err
	}

	// Index for pass coverage lookups at the entry gate.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_hotel_passes_coverage
		ON hotel_passes (parking_lot_id, license_plate, valid_until);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
