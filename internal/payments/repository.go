package payments

import (
	"context"
	"errors"
	"time"

	"busline/internal/bookings"
	"busline/internal/tickets"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrBookingNotPending is returned when the PENDING -> PAID status flip
// finds the booking in another state. The caller lost a race or the
// booking was already paid or cancelled.
var ErrBookingNotPending = errors.New("booking is not in PENDING state")

type Repository interface {
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// CompletePayment persists the payment record, the ticket and the
	// booking's PENDING -> PAID flip as one transaction. Either all
	// three happen or none do.
	CompletePayment(ctx context.Context, payment *Payment, ticket *tickets.Ticket) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	if err := r.db.WithContext(ctx).First(&payment, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) CompletePayment(ctx context.Context, payment *Payment, ticket *tickets.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded flip first: it doubles as the lock against a
		// concurrent payment for the same booking.
		result := tx.Model(&bookings.Booking{}).
			Where("id = ? AND status = ?", payment.BookingID, bookings.StatusPending).
			Updates(map[string]interface{}{
				"status":     bookings.StatusPaid,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrBookingNotPending
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		ticket.BookingID = payment.BookingID
		return tx.Create(ticket).Error
	})
}
