package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"busline/internal/buses"
	"busline/internal/notifications"
	"busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/shared/apperrors"
	"busline/internal/users"
	"busline/pkg/cache"
	"busline/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const journeyDateLayout = "2006-01-02"

// ParseJourneyDate normalizes a YYYY-MM-DD string to midnight UTC so
// every spelling of the same date maps to the same inventory key.
func ParseJourneyDate(value string) (time.Time, error) {
	parsed, err := time.Parse(journeyDateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatJourneyDate renders a journey date back to YYYY-MM-DD.
func FormatJourneyDate(value time.Time) string {
	return value.Format(journeyDateLayout)
}

type Service interface {
	AvailableSeats(ctx context.Context, query AvailabilityQuery) (*AvailabilityResponse, error)
	CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]BookingResponse, error)

	// InvalidateAvailability drops the cached free-seat set for one
	// (schedule, journey date) pair. Called by the refund workflow
	// when a cancellation releases seats.
	InvalidateAvailability(ctx context.Context, scheduleID uuid.UUID, journeyDate time.Time)
}

type service struct {
	repo            Repository
	scheduleRepo    schedules.Repository
	busRepo         buses.Repository
	routeRepo       routes.Repository
	userRepo        users.Repository
	cacheService    cache.Service
	publisher       notifications.Publisher
	log             *logger.Logger
	availabilityTTL time.Duration
}

func NewService(
	repo Repository,
	scheduleRepo schedules.Repository,
	busRepo buses.Repository,
	routeRepo routes.Repository,
	userRepo users.Repository,
	cacheService cache.Service,
	publisher notifications.Publisher,
	log *logger.Logger,
	availabilityTTL time.Duration,
) Service {
	return &service{
		repo:            repo,
		scheduleRepo:    scheduleRepo,
		busRepo:         busRepo,
		routeRepo:       routeRepo,
		userRepo:        userRepo,
		cacheService:    cacheService,
		publisher:       publisher,
		log:             log,
		availabilityTTL: availabilityTTL,
	}
}

// AvailableSeats computes the free seats for a (schedule, journey date)
// pair: the bus's full seat map minus every seat claimed by a
// non-cancelled booking.
func (s *service) AvailableSeats(ctx context.Context, query AvailabilityQuery) (*AvailabilityResponse, error) {
	scheduleID, err := uuid.Parse(query.ScheduleID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "schedule_id", Msg: "must be a valid uuid"}
	}
	journeyDate, err := ParseJourneyDate(query.JourneyDate)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "journey_date", Msg: "must be formatted as YYYY-MM-DD"}
	}
	dateKey := FormatJourneyDate(journeyDate)

	cacheKey := cache.AvailabilityKey(scheduleID.String(), dateKey)
	var cached AvailabilityResponse
	if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	schedule, bus, err := s.loadScheduleAndBus(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.GetTakenSeatNumbers(ctx, schedule.ID, journeyDate)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to compute taken seats", Err: err}
	}

	available := make(SeatList, 0, len(bus.Seats))
	for _, seat := range bus.Seats {
		if !taken[seat.Number] {
			available = append(available, seat)
		}
	}

	result := &AvailabilityResponse{
		ScheduleID:     schedule.ID,
		JourneyDate:    dateKey,
		TotalSeats:     len(bus.Seats),
		AvailableSeats: available,
	}

	if err := s.cacheService.Set(ctx, cacheKey, result, s.availabilityTTL); err != nil {
		s.log.Warn("failed to cache availability", "key", cacheKey, "error", err)
	}

	return result, nil
}

// CreateBooking validates the requested seats against the bus's seat
// map, then hands the availability re-check and the booking insert to
// the repository as one locked transaction.
func (s *service) CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*BookingResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "schedule_id", Msg: "must be a valid uuid"}
	}
	journeyDate, err := ParseJourneyDate(req.JourneyDate)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "journey_date", Msg: "must be formatted as YYYY-MM-DD"}
	}

	schedule, bus, err := s.loadScheduleAndBus(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	requested := dedupeSorted(req.Seats)
	maxSeat := bus.Seats.MaxSeat()
	for _, number := range requested {
		if !bus.Seats.Contains(number) {
			return nil, &apperrors.ValidationError{
				Field: "seats",
				Msg:   fmt.Sprintf("Invalid seat provided. Maximum seat is %d.", maxSeat),
			}
		}
	}

	// Restrict the bus's seat map to the requested numbers, keeping
	// the (number, label) pairing intact.
	allocationSeats := make(SeatList, 0, len(requested))
	for _, number := range requested {
		allocationSeats = append(allocationSeats, bus.Seats[number-1])
	}

	booking := &Booking{
		UserID:      ownerID,
		ScheduleID:  schedule.ID,
		JourneyDate: journeyDate,
		TotalPrice:  bus.FarePerTicket * float64(len(requested)),
		Status:      StatusPending,
	}
	allocation := &SeatAllocation{Seats: allocationSeats}

	if err := s.repo.CreateWithSeatLock(ctx, booking, allocation); err != nil {
		var seatTaken *SeatTakenError
		if errors.As(err, &seatTaken) {
			return nil, &apperrors.ConflictError{
				Resource: "seat",
				Msg: fmt.Sprintf("One of the selected seats has already been booked. Seat %d (%s) is taken.",
					seatTaken.SeatNumber, seatTaken.SeatLabel),
			}
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to create booking", Err: err}
	}

	s.InvalidateAvailability(ctx, schedule.ID, journeyDate)
	s.log.LogBookingCreated(ctx, booking.ID.String(), schedule.ID.String(), ownerID.String())
	s.notifyBookingCreated(ctx, booking, allocation, schedule.RouteID)

	resp := toBookingResponse(booking, allocation.Seats)
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID string) (*BookingResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "bookingId", Msg: "must be a valid uuid"}
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up booking", Err: err}
	}
	if booking.UserID != ownerID {
		return nil, &apperrors.ForbiddenError{Msg: "You can only view your own bookings."}
	}

	seats := s.allocationSeats(ctx, booking.ID)
	resp := toBookingResponse(booking, seats)
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID string) ([]BookingResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "user_id", Msg: "must be a valid uuid"}
	}

	found, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list bookings", Err: err}
	}

	responses := make([]BookingResponse, 0, len(found))
	for i := range found {
		seats := s.allocationSeats(ctx, found[i].ID)
		responses = append(responses, toBookingResponse(&found[i], seats))
	}
	return responses, nil
}

func (s *service) InvalidateAvailability(ctx context.Context, scheduleID uuid.UUID, journeyDate time.Time) {
	key := cache.AvailabilityKey(scheduleID.String(), FormatJourneyDate(journeyDate))
	if err := s.cacheService.Delete(ctx, key); err != nil {
		s.log.Warn("failed to invalidate availability cache", "key", key, "error", err)
	}
}

func (s *service) loadScheduleAndBus(ctx context.Context, scheduleID uuid.UUID) (*schedules.Schedule, *buses.Bus, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return nil, nil, &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}

	// A schedule without its bus is a broken foreign key, not user error.
	bus, err := s.busRepo.GetByID(ctx, schedule.BusID)
	if err != nil {
		return nil, nil, &apperrors.InternalError{Msg: "failed to load bus for schedule", Err: err}
	}

	return schedule, bus, nil
}

func (s *service) allocationSeats(ctx context.Context, bookingID uuid.UUID) SeatList {
	allocation, err := s.repo.GetAllocationByBookingID(ctx, bookingID)
	if err != nil {
		// CANCELLED bookings may have had their allocation deleted
		return nil
	}
	return allocation.Seats
}

func (s *service) notifyBookingCreated(ctx context.Context, booking *Booking, allocation *SeatAllocation, routeID uuid.UUID) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.log.Warn("skipping booking notification, user lookup failed", "booking_id", booking.ID, "error", err)
		return
	}

	var origin, destination string
	if route, err := s.routeRepo.GetByID(ctx, routeID); err == nil {
		origin, destination = route.Origin, route.Destination
	}

	s.publisher.BookingCreated(notifications.BookingEvent{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.FullName(),
		BookingID:   booking.ID,
		Origin:      origin,
		Destination: destination,
		JourneyDate: FormatJourneyDate(booking.JourneyDate),
		SeatLabels:  allocation.Seats.Labels(),
		TotalPrice:  booking.TotalPrice,
	})
}

// dedupeSorted copies, sorts and deduplicates the requested seat numbers.
func dedupeSorted(seats []int) []int {
	sorted := make([]int, len(seats))
	copy(sorted, seats)
	sort.Ints(sorted)

	deduped := sorted[:0]
	previous := 0
	for _, number := range sorted {
		if number != previous {
			deduped = append(deduped, number)
			previous = number
		}
	}
	return deduped
}
