package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket points at the immutable PDF artifact issued when a booking is
// paid. Exactly one per booking, created inside the payment transaction.
type Ticket struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID    uuid.UUID `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	TicketPdfURL string    `json:"ticket_pdf_url" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Refund records the cancellation of a ticketed booking. IsMoneyRefunded
// stays false until the fare is physically handed back at the counter.
// At most one refund per ticket.
type Refund struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TicketID        uuid.UUID `json:"ticket_id" gorm:"type:uuid;uniqueIndex;not null"`
	Reason          string    `json:"reason" gorm:"not null"`
	IsMoneyRefunded bool      `json:"is_money_refunded" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
