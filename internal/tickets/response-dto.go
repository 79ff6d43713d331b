package tickets

import "github.com/google/uuid"

type TicketResponse struct {
	TicketID     uuid.UUID `json:"ticket_id"`
	BookingID    uuid.UUID `json:"booking_id"`
	TicketPdfURL string    `json:"ticket_pdf_url"`
}

type RefundResponse struct {
	RefundID        uuid.UUID `json:"refund_id"`
	TicketID        uuid.UUID `json:"ticket_id"`
	BookingID       uuid.UUID `json:"booking_id"`
	Reason          string    `json:"reason"`
	IsMoneyRefunded bool      `json:"is_money_refunded"`
}

type ConfirmRefundResponse struct {
	RefundID   uuid.UUID `json:"refund_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	TotalPrice float64   `json:"total_price"`
}

func toTicketResponse(ticket *Ticket) *TicketResponse {
	return &TicketResponse{
		TicketID:     ticket.ID,
		BookingID:    ticket.BookingID,
		TicketPdfURL: ticket.TicketPdfURL,
	}
}
