package payments

import "github.com/google/uuid"

type PaymentResponse struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	BookingID    uuid.UUID `json:"booking_id"`
	Method       Method    `json:"method"`
	Amount       float64   `json:"amount"`
	Status       Status    `json:"status"`
	TicketPdfURL string    `json:"ticket_pdf_url"`
}
