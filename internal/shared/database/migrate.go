package database

import (
	"busline/internal/bookings"
	"busline/internal/buses"
	"busline/internal/payments"
	"busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/tickets"
	"busline/internal/trips"
	"busline/internal/users"

	"gorm.io/gorm"
)

// Migrate runs the schema migrations for every registered model.
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() used by primary key defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&routes.Route{},
		&buses.Bus{},
		&schedules.Schedule{},
		&trips.Trip{},
		&bookings.Booking{},
		&bookings.SeatAllocation{},
		&payments.Payment{},
		&tickets.Ticket{},
		&tickets.Refund{},
	)
}
