package database

import (
	"mobypark/internal/invoices"
	"mobypark/internal/lots"
	"mobypark/internal/passes"
	"mobypark/internal/sessions"
	"mobypark/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&lots.ParkingLot{},
		&sessions.ParkingSession{},
		&passes.HotelPass{},
		&invoices.Invoice{},
	)
}
