package tickets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"busline/internal/bookings"
	"busline/internal/notifications"
	"busline/internal/shared/apperrors"
	"busline/internal/users"
	"busline/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// GetTicket returns the ticket for a paid booking of the
	// requesting user.
	GetTicket(ctx context.Context, requestingUserID, bookingID string) (*TicketResponse, error)

	// ResendTicket re-queues the ticket email for a paid booking.
	ResendTicket(ctx context.Context, requestingUserID, bookingID string) (*TicketResponse, error)

	// RequestRefund cancels a ticketed booking. The booking goes to
	// CANCELLED, its payment to REFUNDED, and a refund row is created
	// with the money still owed at the counter.
	RequestRefund(ctx context.Context, requestingUserID, ticketID string, req RefundRequest) (*RefundResponse, error)

	// ConfirmMoneyReturned marks a refund's money as handed back and
	// releases the seats. Admin only, at most once per refund.
	ConfirmMoneyReturned(ctx context.Context, refundID string) (*ConfirmRefundResponse, error)

	// ListRefunds returns every refund, newest first. Admin only.
	ListRefunds(ctx context.Context) ([]RefundResponse, error)
}

type service struct {
	repo           Repository
	bookingRepo    bookings.Repository
	bookingService bookings.Service
	userRepo       users.Repository
	publisher      notifications.Publisher
	log            *logger.Logger
}

func NewService(
	repo Repository,
	bookingRepo bookings.Repository,
	bookingService bookings.Service,
	userRepo users.Repository,
	publisher notifications.Publisher,
	log *logger.Logger,
) Service {
	return &service{
		repo:           repo,
		bookingRepo:    bookingRepo,
		bookingService: bookingService,
		userRepo:       userRepo,
		publisher:      publisher,
		log:            log,
	}
}

func (s *service) GetTicket(ctx context.Context, requestingUserID, bookingID string) (*TicketResponse, error) {
	_, _, ticket, err := s.loadOwnedTicket(ctx, requestingUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

func (s *service) ResendTicket(ctx context.Context, requestingUserID, bookingID string) (*TicketResponse, error) {
	user, booking, ticket, err := s.loadOwnedTicket(ctx, requestingUserID, bookingID)
	if err != nil {
		return nil, err
	}

	s.publisher.TicketResend(notifications.TicketEvent{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.FullName(),
		BookingID:   booking.ID,
		TicketID:    ticket.ID,
		TicketURL:   ticket.TicketPdfURL,
		JourneyDate: bookings.FormatJourneyDate(booking.JourneyDate),
	})

	return toTicketResponse(ticket), nil
}

func (s *service) RequestRefund(ctx context.Context, requestingUserID, ticketID string, req RefundRequest) (*RefundResponse, error) {
	ownerID, err := uuid.Parse(requestingUserID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "ticketId", Msg: "must be a valid uuid"}
	}

	ticket, err := s.repo.GetTicketByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "ticket", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up ticket", Err: err}
	}

	booking, err := s.bookingRepo.GetByID(ctx, ticket.BookingID)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to look up booking", Err: err}
	}
	if booking.UserID != ownerID {
		return nil, &apperrors.ForbiddenError{Msg: "You can only refund your own tickets."}
	}

	if existing, err := s.repo.GetRefundByTicketID(ctx, ticket.ID); err == nil {
		return nil, &apperrors.ConflictError{Resource: "refund", Msg: refundExistsMessage(existing)}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.InternalError{Msg: "failed to look up refund", Err: err}
	}

	refund := &Refund{Reason: req.Reason}
	if err := s.repo.CancelWithRefund(ctx, ticket, refund); err != nil {
		if errors.Is(err, ErrPaymentMissing) {
			return nil, &apperrors.InternalError{Msg: "no payment found for ticketed booking", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to refund ticket", Err: err}
	}

	s.bookingService.InvalidateAvailability(ctx, booking.ScheduleID, booking.JourneyDate)
	s.log.LogBookingCancelled(ctx, booking.ID.String(), ticket.ID.String())
	s.notifyRefund(ctx, booking, ticket.ID)

	return &RefundResponse{
		RefundID:        refund.ID,
		TicketID:        ticket.ID,
		BookingID:       booking.ID,
		Reason:          refund.Reason,
		IsMoneyRefunded: refund.IsMoneyRefunded,
	}, nil
}

func (s *service) ConfirmMoneyReturned(ctx context.Context, refundID string) (*ConfirmRefundResponse, error) {
	id, err := uuid.Parse(refundID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "refundId", Msg: "must be a valid uuid"}
	}

	refund, err := s.repo.GetRefundByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "refund", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up refund", Err: err}
	}
	if refund.IsMoneyRefunded {
		return nil, &apperrors.ForbiddenError{Msg: "The money has already been refunded."}
	}

	ticket, err := s.repo.GetTicketByID(ctx, refund.TicketID)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to look up ticket for refund", Err: err}
	}
	booking, err := s.bookingRepo.GetByID(ctx, ticket.BookingID)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to look up booking for refund", Err: err}
	}

	if err := s.repo.ConfirmMoneyReturned(ctx, refund.ID, booking.ID); err != nil {
		if errors.Is(err, ErrMoneyAlreadyRefunded) {
			return nil, &apperrors.ForbiddenError{Msg: "The money has already been refunded."}
		}
		return nil, &apperrors.InternalError{Msg: "failed to confirm refund", Err: err}
	}

	s.bookingService.InvalidateAvailability(ctx, booking.ScheduleID, booking.JourneyDate)
	s.log.LogMoneyRefunded(ctx, refund.ID.String(), booking.ID.String(), booking.TotalPrice)

	return &ConfirmRefundResponse{
		RefundID:   refund.ID,
		BookingID:  booking.ID,
		TotalPrice: booking.TotalPrice,
	}, nil
}

func (s *service) ListRefunds(ctx context.Context) ([]RefundResponse, error) {
	refunds, err := s.repo.ListRefunds(ctx)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list refunds", Err: err}
	}

	responses := make([]RefundResponse, 0, len(refunds))
	for i := range refunds {
		refund := &refunds[i]

		resp := RefundResponse{
			RefundID:        refund.ID,
			TicketID:        refund.TicketID,
			Reason:          refund.Reason,
			IsMoneyRefunded: refund.IsMoneyRefunded,
		}
		if ticket, err := s.repo.GetTicketByID(ctx, refund.TicketID); err == nil {
			resp.BookingID = ticket.BookingID
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// loadOwnedTicket resolves (user, booking, ticket) for a paid booking
// owned by the requesting user. The status check runs before the ticket
// lookup because an unpaid booking has no ticket row yet.
func (s *service) loadOwnedTicket(ctx context.Context, requestingUserID, bookingID string) (*users.User, *bookings.Booking, *Ticket, error) {
	ownerID, err := uuid.Parse(requestingUserID)
	if err != nil {
		return nil, nil, nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, nil, &apperrors.ValidationError{Field: "bookingId", Msg: "must be a valid uuid"}
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, &apperrors.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, nil, nil, &apperrors.InternalError{Msg: "failed to look up booking", Err: err}
	}
	if booking.UserID != ownerID {
		return nil, nil, nil, &apperrors.ForbiddenError{Msg: "You can only view your own tickets."}
	}
	if booking.Status != bookings.StatusPaid {
		return nil, nil, nil, &apperrors.ConflictError{Resource: "booking", Msg: "Payment has not been completed for this booked seats."}
	}

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, nil, nil, &apperrors.InternalError{Msg: "failed to load user", Err: err}
	}

	ticket, err := s.repo.GetTicketByBookingID(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A paid booking always has a ticket. This is broken state,
			// not a user-facing miss.
			return nil, nil, nil, &apperrors.InternalError{Msg: "no ticket found for paid booking", Err: err}
		}
		return nil, nil, nil, &apperrors.InternalError{Msg: "failed to look up ticket", Err: err}
	}

	return user, booking, ticket, nil
}

func (s *service) notifyRefund(ctx context.Context, booking *bookings.Booking, ticketID uuid.UUID) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.log.Warn("skipping refund notification, failed to load user",
			"booking_id", booking.ID.String(), "error", err)
		return
	}

	s.publisher.BookingRefunded(notifications.RefundEvent{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.FullName(),
		BookingID:   booking.ID,
		TicketID:    ticketID,
		JourneyDate: bookings.FormatJourneyDate(booking.JourneyDate),
		RefundNote: fmt.Sprintf("Collect %s taka from the counter.",
			strconv.FormatFloat(booking.TotalPrice, 'f', -1, 64)),
	})
}

func refundExistsMessage(refund *Refund) string {
	if refund.IsMoneyRefunded {
		return "This ticket has already been refunded with the booking money."
	}
	return "This ticket has already been refunded and collect the booking money from the counter."
}
