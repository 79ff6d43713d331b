package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"busline/internal/artifacts"
	"busline/internal/bookings"
	"busline/internal/buses"
	"busline/internal/notifications"
	"busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/shared/apperrors"
	"busline/internal/tickets"
	"busline/internal/users"
	"busline/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// CompletePayment confirms payment for a pending booking, renders
	// and stores the ticket artifact, and flips the booking to PAID.
	CompletePayment(ctx context.Context, requestingUserID, bookingID string, req CompletePaymentRequest) (*PaymentResponse, error)
}

type service struct {
	repo         Repository
	bookingRepo  bookings.Repository
	scheduleRepo schedules.Repository
	busRepo      buses.Repository
	routeRepo    routes.Repository
	userRepo     users.Repository
	renderer     artifacts.Renderer
	store        artifacts.Store
	publisher    notifications.Publisher
	log          *logger.Logger
}

func NewService(
	repo Repository,
	bookingRepo bookings.Repository,
	scheduleRepo schedules.Repository,
	busRepo buses.Repository,
	routeRepo routes.Repository,
	userRepo users.Repository,
	renderer artifacts.Renderer,
	store artifacts.Store,
	publisher notifications.Publisher,
	log *logger.Logger,
) Service {
	return &service{
		repo:         repo,
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		busRepo:      busRepo,
		routeRepo:    routeRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		store:        store,
		publisher:    publisher,
		log:          log,
	}
}

func (s *service) CompletePayment(ctx context.Context, requestingUserID, bookingID string, req CompletePaymentRequest) (*PaymentResponse, error) {
	ownerID, err := uuid.Parse(requestingUserID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "bookingId", Msg: "must be a valid uuid"}
	}
	if !IsValidMethod(req.Method) {
		return nil, &apperrors.ValidationError{Field: "method", Msg: "must be ONLINE or CASH"}
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up booking", Err: err}
	}

	// A user may only pay for their own booking.
	if booking.UserID != ownerID {
		return nil, &apperrors.ForbiddenError{Msg: "Invalid option for payment."}
	}

	if booking.Status == bookings.StatusPaid {
		return nil, &apperrors.ConflictError{Resource: "booking", Msg: "The booking has already been paid."}
	}
	if booking.Status == bookings.StatusCancelled {
		return nil, &apperrors.ConflictError{Resource: "booking", Msg: "The booking has been cancelled."}
	}

	// Exact amount only. No partial or over-payment.
	if req.Amount != booking.TotalPrice {
		return nil, &apperrors.ConflictError{
			Resource: "payment",
			Msg: fmt.Sprintf("Invalid amount selected for payment, correct amount is %s taka.",
				strconv.FormatFloat(booking.TotalPrice, 'f', -1, 64)),
		}
	}

	ticketData, user, err := s.collectTicketData(ctx, booking, req)
	if err != nil {
		return nil, err
	}

	// Render and store the artifact before touching the database, so a
	// renderer failure can never leave a paid booking without a ticket.
	pdf, err := s.renderer.RenderTicket(*ticketData)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to render ticket", Err: err}
	}
	ticketURL, err := s.store.Save(fmt.Sprintf("ticket-%s.pdf", booking.ID), pdf)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to store ticket", Err: err}
	}

	payment := &Payment{
		BookingID:     booking.ID,
		Method:        Method(req.Method),
		Amount:        req.Amount,
		ReferenceCode: req.ReferenceCode,
		Status:        StatusSuccess,
	}
	ticket := &tickets.Ticket{TicketPdfURL: ticketURL}

	if err := s.repo.CompletePayment(ctx, payment, ticket); err != nil {
		if errors.Is(err, ErrBookingNotPending) {
			return nil, &apperrors.ConflictError{Resource: "booking", Msg: "The booking has already been paid."}
		}
		return nil, &apperrors.InternalError{Msg: "failed to complete payment", Err: err}
	}

	s.log.LogPaymentCompleted(ctx, payment.ID.String(), booking.ID.String(), payment.Amount)

	s.publisher.TicketIssued(notifications.TicketEvent{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.FullName(),
		BookingID:   booking.ID,
		TicketID:    ticket.ID,
		TicketURL:   ticketURL,
		Origin:      ticketData.Origin,
		Destination: ticketData.Destination,
		JourneyDate: ticketData.JourneyDate,
	})

	return &PaymentResponse{
		PaymentID:    payment.ID,
		BookingID:    booking.ID,
		Method:       payment.Method,
		Amount:       payment.Amount,
		Status:       payment.Status,
		TicketPdfURL: ticketURL,
	}, nil
}

// collectTicketData gathers the allocation, schedule, bus, route and
// user rows the ticket artifact embeds. Any missing row is a broken
// reference, not user error.
func (s *service) collectTicketData(ctx context.Context, booking *bookings.Booking, req CompletePaymentRequest) (*artifacts.TicketData, *users.User, error) {
	allocation, err := s.bookingRepo.GetAllocationByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load seat allocation", Err: err}
	}
	schedule, err := s.scheduleRepo.GetByID(ctx, booking.ScheduleID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load schedule", Err: err}
	}
	bus, err := s.busRepo.GetByID(ctx, schedule.BusID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load bus", Err: err}
	}
	route, err := s.routeRepo.GetByID(ctx, schedule.RouteID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load route", Err: err}
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load user", Err: err}
	}

	data := &artifacts.TicketData{
		BookingID:       booking.ID.String(),
		PassengerName:   user.FullName(),
		PassengerEmail:  user.Email,
		PassengerPhone:  user.PhoneNumber,
		BusRegistration: bus.RegistrationNumber,
		BusType:         string(bus.BusType),
		Class:           string(bus.Class),
		Origin:          route.Origin,
		Destination:     route.Destination,
		JourneyDate:     bookings.FormatJourneyDate(booking.JourneyDate),
		DepartureTime:   schedule.EstimatedDepartureTime.Format("15:04"),
		SeatLabels:      allocation.Seats.Labels(),
		TotalPrice:      booking.TotalPrice,
		PaymentMethod:   req.Method,
		ReferenceCode:   req.ReferenceCode,
	}
	return data, user, nil
}
