package trips

import (
	"time"

	"github.com/google/uuid"
)

// Status is the tracking state of a physical journey. A trip starts
// PENDING, may drop to UNTRACKED when live tracking is lost, and ends
// COMPLETED. COMPLETED is terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusUntracked Status = "UNTRACKED"
	StatusCompleted Status = "COMPLETED"
)

func IsValidStatusUpdate(status string) bool {
	switch Status(status) {
	case StatusUntracked, StatusCompleted:
		return true
	default:
		return false
	}
}

type Trip struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ScheduleID uuid.UUID `json:"schedule_id" gorm:"type:uuid;not null;index"`
	Status     Status    `json:"status" gorm:"not null;default:'PENDING'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
