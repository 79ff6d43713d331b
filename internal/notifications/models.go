package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingCreated NotificationType = "BOOKING_CREATED"
	NotificationTypeTicketIssued   NotificationType = "TICKET_ISSUED"
	NotificationTypeTicketResend   NotificationType = "TICKET_RESEND"
	NotificationTypeBookingRefund  NotificationType = "BOOKING_REFUND"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// EmailNotification is the message exchanged over the notification topic.
type EmailNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	TicketID  *uuid.UUID `json:"ticket_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

func (n *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*EmailNotification, error) {
	var notification EmailNotification
	if err := json.Unmarshal(data, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetPartitionKey keeps every message for one recipient on the same
// partition so their mail arrives in order.
func (n *EmailNotification) GetPartitionKey() string {
	return n.RecipientEmail
}

func (n *EmailNotification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *EmailNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	errStr := err.Error()
	n.LastError = &errStr
	n.RetryCount++
	n.UpdatedAt = time.Now()
}

type NotificationBuilder struct {
	notification *EmailNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &EmailNotification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			MaxRetries:   3,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	return nb
}

func (nb *NotificationBuilder) WithRecipient(userID uuid.UUID, email, name string) *NotificationBuilder {
	nb.notification.RecipientID = userID
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(key string, value interface{}) *NotificationBuilder {
	nb.notification.TemplateData[key] = value
	return nb
}

func (nb *NotificationBuilder) WithBookingID(bookingID uuid.UUID) *NotificationBuilder {
	nb.notification.BookingID = &bookingID
	return nb
}

func (nb *NotificationBuilder) WithTicketID(ticketID uuid.UUID) *NotificationBuilder {
	nb.notification.TicketID = &ticketID
	return nb
}

func (nb *NotificationBuilder) Build() *EmailNotification {
	return nb.notification
}
