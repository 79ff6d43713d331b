package artifacts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// TicketData is everything stamped onto the ticket PDF.
type TicketData struct {
	BookingID       string
	PassengerName   string
	PassengerEmail  string
	PassengerPhone  string
	BusRegistration string
	BusType         string
	Class           string
	Origin          string
	Destination     string
	JourneyDate     string
	DepartureTime   string
	SeatLabels      []string
	TotalPrice      float64
	PaymentMethod   string
	ReferenceCode   string
}

// Renderer turns ticket data into an immutable PDF artifact.
type Renderer interface {
	RenderTicket(data TicketData) ([]byte, error)
}

type pdfRenderer struct{}

// NewPDFRenderer returns the gofpdf-backed ticket renderer.
func NewPDFRenderer() Renderer {
	return pdfRenderer{}
}

func (pdfRenderer) RenderTicket(d TicketData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID     : %s", safe(d.BookingID)),
		fmt.Sprintf("Passenger      : %s", safe(d.PassengerName)),
		fmt.Sprintf("Email          : %s", safe(d.PassengerEmail)),
		fmt.Sprintf("Phone          : %s", safe(d.PassengerPhone)),
		fmt.Sprintf("Bus            : %s (%s, %s)", safe(d.BusRegistration), safe(d.BusType), safe(d.Class)),
		fmt.Sprintf("Route          : %s -> %s", safe(d.Origin), safe(d.Destination)),
		fmt.Sprintf("Journey date   : %s", safe(d.JourneyDate)),
		fmt.Sprintf("Departure      : %s", safe(d.DepartureTime)),
		fmt.Sprintf("Seats          : %s", safe(strings.Join(d.SeatLabels, ", "))),
		fmt.Sprintf("Total fare     : %.2f", d.TotalPrice),
		fmt.Sprintf("Payment method : %s", safe(d.PaymentMethod)),
		fmt.Sprintf("Reference      : %s", safe(d.ReferenceCode)),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 8, "Present this ticket together with a valid ID when boarding.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func safe(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
