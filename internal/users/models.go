package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePassenger Role = "PASSENGER"
	RoleDriver    Role = "DRIVER"
	RoleAdmin     Role = "ADMIN"
)

type User struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName   string    `json:"first_name" gorm:"not null"`
	LastName    string    `json:"last_name" gorm:"not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"not null"`
	Role        Role      `json:"role" gorm:"not null;default:'PASSENGER'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RolePassenger), string(RoleDriver), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// FullName is the display name stamped onto tickets and emails.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
