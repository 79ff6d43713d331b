package payments

import (
	"time"

	"github.com/google/uuid"
)

type Method string

const (
	MethodOnline Method = "ONLINE"
	MethodCash   Method = "CASH"
)

func IsValidMethod(method string) bool {
	switch Method(method) {
	case MethodOnline, MethodCash:
		return true
	default:
		return false
	}
}

// Status tracks the payment money. SUCCESS on completion, REFUNDED
// once the booking is cancelled through a refund.
type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusRefunded Status = "REFUNDED"
)

type Payment struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	Method        Method    `json:"method" gorm:"not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	ReferenceCode string    `json:"reference_code" gorm:"not null"`
	Status        Status    `json:"status" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
