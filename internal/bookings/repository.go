package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeatTakenError reports the first requested seat that is already held
// by another non-cancelled booking for the same schedule and date.
type SeatTakenError struct {
	SeatNumber int
	SeatLabel  string
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d (%s) is already booked", e.SeatNumber, e.SeatLabel)
}

type Repository interface {
	// CreateWithSeatLock atomically re-checks seat availability and
	// inserts the booking together with its allocation. Two concurrent
	// calls for overlapping seats on the same (schedule, journey date)
	// cannot both succeed.
	CreateWithSeatLock(ctx context.Context, booking *Booking, allocation *SeatAllocation) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetAllocationByBookingID(ctx context.Context, bookingID uuid.UUID) (*SeatAllocation, error)
	GetTakenSeatNumbers(ctx context.Context, scheduleID uuid.UUID, journeyDate time.Time) (map[int]bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)

	// UpdateStatusIf flips the booking status only when the current
	// status matches from. Returns false when the guard failed.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSeatLock(ctx context.Context, booking *Booking, allocation *SeatAllocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the schedule row so concurrent bookings for the same
		// schedule serialize here. The availability re-check below is
		// only sound while this lock is held.
		var schedule struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("schedules").
			Select("id").
			Where("id = ?", booking.ScheduleID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&schedule).Error
		if err != nil {
			return err
		}

		taken, err := takenSeatNumbers(tx, booking.ScheduleID, booking.JourneyDate)
		if err != nil {
			return err
		}

		for _, seat := range allocation.Seats {
			if taken[seat.Number] {
				return &SeatTakenError{SeatNumber: seat.Number, SeatLabel: seat.Label}
			}
		}

		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		allocation.BookingID = booking.ID
		return tx.Create(allocation).Error
	})
}

func takenSeatNumbers(tx *gorm.DB, scheduleID uuid.UUID, journeyDate time.Time) (map[int]bool, error) {
	var allocations []SeatAllocation
	err := tx.Model(&SeatAllocation{}).
		Joins("JOIN bookings ON bookings.id = seat_allocations.booking_id").
		Where("bookings.schedule_id = ? AND bookings.journey_date = ? AND bookings.status <> ?",
			scheduleID, journeyDate, StatusCancelled).
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[int]bool)
	for _, allocation := range allocations {
		for _, seat := range allocation.Seats {
			taken[seat.Number] = true
		}
	}
	return taken, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetAllocationByBookingID(ctx context.Context, bookingID uuid.UUID) (*SeatAllocation, error) {
	var allocation SeatAllocation
	if err := r.db.WithContext(ctx).First(&allocation, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *repository) GetTakenSeatNumbers(ctx context.Context, scheduleID uuid.UUID, journeyDate time.Time) (map[int]bool, error) {
	return takenSeatNumbers(r.db.WithContext(ctx), scheduleID, journeyDate)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var found []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
