package tickets

import (
	"context"
	"errors"
	"time"

	"busline/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPaymentMissing is returned when a refund finds no payment row for
// a ticketed booking. A ticket without a payment is corrupt state.
var ErrPaymentMissing = errors.New("no payment found for booking")

// ErrMoneyAlreadyRefunded is returned when the money-returned flip
// finds the refund already marked. The caller lost a race.
var ErrMoneyAlreadyRefunded = errors.New("refund money already returned")

type Repository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetTicketByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error)
	GetRefundByID(ctx context.Context, id uuid.UUID) (*Refund, error)
	GetRefundByTicketID(ctx context.Context, ticketID uuid.UUID) (*Refund, error)
	ListRefunds(ctx context.Context) ([]Refund, error)

	// CancelWithRefund marks the booking CANCELLED, the payment
	// REFUNDED and creates the refund row as one transaction.
	CancelWithRefund(ctx context.Context, ticket *Ticket, refund *Refund) error

	// ConfirmMoneyReturned flips is_money_refunded under a guard,
	// deletes the booking's seat allocation and re-asserts the
	// CANCELLED status, all in one transaction.
	ConfirmMoneyReturned(ctx context.Context, refundID, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTicket(ctx context.Context, ticket *Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *repository) GetTicketByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetTicketByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetRefundByID(ctx context.Context, id uuid.UUID) (*Refund, error) {
	var refund Refund
	if err := r.db.WithContext(ctx).First(&refund, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *repository) GetRefundByTicketID(ctx context.Context, ticketID uuid.UUID) (*Refund, error) {
	var refund Refund
	if err := r.db.WithContext(ctx).First(&refund, "ticket_id = ?", ticketID).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *repository) ListRefunds(ctx context.Context) ([]Refund, error) {
	var refunds []Refund
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&refunds).Error
	return refunds, err
}

func (r *repository) CancelWithRefund(ctx context.Context, ticket *Ticket, refund *Refund) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&bookings.Booking{}).
			Where("id = ?", ticket.BookingID).
			Updates(map[string]interface{}{
				"status":     bookings.StatusCancelled,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		// The payments package owns this table. Going through the table
		// name keeps the refund flow from importing it back.
		result := tx.Table("payments").
			Where("booking_id = ?", ticket.BookingID).
			Updates(map[string]interface{}{
				"status":     "REFUNDED",
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPaymentMissing
		}

		refund.TicketID = ticket.ID
		return tx.Create(refund).Error
	})
}

func (r *repository) ConfirmMoneyReturned(ctx context.Context, refundID, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded flip doubles as the lock against a concurrent confirm.
		result := tx.Model(&Refund{}).
			Where("id = ? AND is_money_refunded = ?", refundID, false).
			Updates(map[string]interface{}{
				"is_money_refunded": true,
				"updated_at":        time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrMoneyAlreadyRefunded
		}

		// Releasing the allocation row frees the seats even for readers
		// that do not filter on booking status.
		err := tx.Where("booking_id = ?", bookingID).
			Delete(&bookings.SeatAllocation{}).Error
		if err != nil {
			return err
		}

		return tx.Model(&bookings.Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":     bookings.StatusCancelled,
				"updated_at": time.Now(),
			}).Error
	})
}
