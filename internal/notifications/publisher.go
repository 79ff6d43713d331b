package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingEvent carries the context needed to mail a booking invoice.
type BookingEvent struct {
	UserID      uuid.UUID
	UserEmail   string
	UserName    string
	BookingID   uuid.UUID
	Origin      string
	Destination string
	JourneyDate string
	SeatLabels  []string
	TotalPrice  float64
}

// TicketEvent carries the context needed to mail an issued ticket.
type TicketEvent struct {
	UserID      uuid.UUID
	UserEmail   string
	UserName    string
	BookingID   uuid.UUID
	TicketID    uuid.UUID
	TicketURL   string
	Origin      string
	Destination string
	JourneyDate string
}

// RefundEvent carries the context needed to mail a cancellation notice.
type RefundEvent struct {
	UserID      uuid.UUID
	UserEmail   string
	UserName    string
	BookingID   uuid.UUID
	TicketID    uuid.UUID
	JourneyDate string
	RefundNote  string
}

// Publisher is the fire-and-forget notification facade used by the
// booking, payment and ticket workflows. Publishing never blocks the
// caller and a failed publish never fails the transaction that
// triggered it.
type Publisher interface {
	BookingCreated(event BookingEvent)
	TicketIssued(event TicketEvent)
	TicketResend(event TicketEvent)
	BookingRefunded(event RefundEvent)
	Close() error
}

type kafkaPublisher struct {
	producer NotificationProducer
	timeout  time.Duration
}

// NewPublisher wraps a Kafka producer in the fire-and-forget facade.
func NewPublisher(producer NotificationProducer) Publisher {
	return &kafkaPublisher{
		producer: producer,
		timeout:  10 * time.Second,
	}
}

func (p *kafkaPublisher) publishAsync(notification *EmailNotification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.producer.PublishNotification(ctx, notification); err != nil {
			log.Printf("Failed to publish %s notification for %s: %v",
				notification.Type, notification.RecipientEmail, err)
		}
	}()
}

func (p *kafkaPublisher) BookingCreated(event BookingEvent) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCreated).
		WithRecipient(event.UserID, event.UserEmail, event.UserName).
		WithSubject("Your booking has been received").
		WithBookingID(event.BookingID).
		WithTemplateData("origin", event.Origin).
		WithTemplateData("destination", event.Destination).
		WithTemplateData("journey_date", event.JourneyDate).
		WithTemplateData("seat_labels", strings.Join(event.SeatLabels, ", ")).
		WithTemplateData("total_price", fmt.Sprintf("%.2f", event.TotalPrice)).
		Build()

	p.publishAsync(notification)
}

func (p *kafkaPublisher) TicketIssued(event TicketEvent) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeTicketIssued).
		WithRecipient(event.UserID, event.UserEmail, event.UserName).
		WithSubject("Your ticket is ready").
		WithBookingID(event.BookingID).
		WithTicketID(event.TicketID).
		WithTemplateData("origin", event.Origin).
		WithTemplateData("destination", event.Destination).
		WithTemplateData("journey_date", event.JourneyDate).
		WithTemplateData("ticket_url", event.TicketURL).
		Build()

	p.publishAsync(notification)
}

func (p *kafkaPublisher) TicketResend(event TicketEvent) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeTicketResend).
		WithRecipient(event.UserID, event.UserEmail, event.UserName).
		WithSubject("Your ticket").
		WithBookingID(event.BookingID).
		WithTicketID(event.TicketID).
		WithTemplateData("ticket_url", event.TicketURL).
		Build()

	p.publishAsync(notification)
}

func (p *kafkaPublisher) BookingRefunded(event RefundEvent) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingRefund).
		WithRecipient(event.UserID, event.UserEmail, event.UserName).
		WithSubject("Your booking has been cancelled").
		WithBookingID(event.BookingID).
		WithTicketID(event.TicketID).
		WithTemplateData("journey_date", event.JourneyDate).
		WithTemplateData("refund_note", event.RefundNote).
		Build()

	p.publishAsync(notification)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// noopPublisher is used when Kafka is disabled. Workflows keep their
// publish calls and nothing goes out.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(BookingEvent) {}
func (noopPublisher) TicketIssued(TicketEvent)    {}
func (noopPublisher) TicketResend(TicketEvent)    {}
func (noopPublisher) BookingRefunded(RefundEvent) {}
func (noopPublisher) Close() error                { return nil }
