package bookings

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"busline/internal/buses"
	"busline/internal/notifications"
	"busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/seatmap"
	"busline/internal/shared/apperrors"
	"busline/internal/users"
	"busline/pkg/cache"
	"busline/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeBookingRepo mimics the locked transaction of the real repository:
// the mutex plays the role of the schedules row lock, so two concurrent
// creates for overlapping seats cannot both pass the availability check.
type fakeBookingRepo struct {
	mu          sync.Mutex
	bookings    map[uuid.UUID]*Booking
	allocations map[uuid.UUID]*SeatAllocation
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    make(map[uuid.UUID]*Booking),
		allocations: make(map[uuid.UUID]*SeatAllocation),
	}
}

func (f *fakeBookingRepo) CreateWithSeatLock(_ context.Context, booking *Booking, allocation *SeatAllocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	taken := f.takenLocked(booking.ScheduleID, booking.JourneyDate)
	for _, seat := range allocation.Seats {
		if taken[seat.Number] {
			return &SeatTakenError{SeatNumber: seat.Number, SeatLabel: seat.Label}
		}
	}

	booking.ID = uuid.New()
	f.bookings[booking.ID] = booking
	allocation.BookingID = booking.ID
	f.allocations[booking.ID] = allocation
	return nil
}

func (f *fakeBookingRepo) takenLocked(scheduleID uuid.UUID, journeyDate time.Time) map[int]bool {
	taken := make(map[int]bool)
	for id, booking := range f.bookings {
		if booking.ScheduleID != scheduleID || !booking.JourneyDate.Equal(journeyDate) || booking.Status == StatusCancelled {
			continue
		}
		if allocation, ok := f.allocations[id]; ok {
			for _, seat := range allocation.Seats {
				taken[seat.Number] = true
			}
		}
	}
	return taken
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetAllocationByBookingID(_ context.Context, bookingID uuid.UUID) (*SeatAllocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	allocation, ok := f.allocations[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *allocation
	return &copied, nil
}

func (f *fakeBookingRepo) GetTakenSeatNumbers(_ context.Context, scheduleID uuid.UUID, journeyDate time.Time) (map[int]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.takenLocked(scheduleID, journeyDate), nil
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var found []Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			found = append(found, *booking)
		}
	}
	return found, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	return true, nil
}

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*schedules.Schedule
}

func (f *fakeScheduleRepo) Create(context.Context, *schedules.Schedule) error { return nil }

func (f *fakeScheduleRepo) GetByID(_ context.Context, id uuid.UUID) (*schedules.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleRepo) GetDuplicate(context.Context, uuid.UUID, uuid.UUID, time.Time, time.Time) (*schedules.Schedule, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepo) List(context.Context, schedules.ScheduleFilters) ([]schedules.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeBusRepo struct {
	buses map[uuid.UUID]*buses.Bus
}

func (f *fakeBusRepo) Create(context.Context, *buses.Bus) error { return nil }

func (f *fakeBusRepo) GetByID(_ context.Context, id uuid.UUID) (*buses.Bus, error) {
	bus, ok := f.buses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return bus, nil
}

func (f *fakeBusRepo) GetByRegistrationOrDriver(context.Context, string, uuid.UUID) (*buses.Bus, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBusRepo) List(context.Context, buses.BusFilters) ([]buses.Bus, error) { return nil, nil }

func (f *fakeBusRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeBusRepo) HasSchedules(context.Context, uuid.UUID) (bool, error) { return false, nil }

type fakeRouteRepo struct {
	routes map[uuid.UUID]*routes.Route
}

func (f *fakeRouteRepo) Create(context.Context, *routes.Route) error { return nil }

func (f *fakeRouteRepo) GetByID(_ context.Context, id uuid.UUID) (*routes.Route, error) {
	route, ok := f.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return route, nil
}

func (f *fakeRouteRepo) GetByEndpoints(context.Context, string, string) (*routes.Route, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRouteRepo) List(context.Context) ([]routes.Route, error) { return nil, nil }

func (f *fakeRouteRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeRouteRepo) IsReferencedBySchedule(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*users.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByIDAndRole(ctx context.Context, id uuid.UUID, role users.Role) (*users.User, error) {
	user, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

// memoryCache is an in-process stand-in for the Redis-backed service.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	// Tests only need miss/hit counting, never the decoded value.
	return cache.ErrCacheMiss
}

func (m *memoryCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = []byte("cached")
	m.sets++
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.deletes++
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

type countingPublisher struct {
	mu      sync.Mutex
	created int
}

func (p *countingPublisher) BookingCreated(notifications.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created++
}

func (p *countingPublisher) TicketIssued(notifications.TicketEvent) {}

func (p *countingPublisher) TicketResend(notifications.TicketEvent) {}

func (p *countingPublisher) BookingRefunded(notifications.RefundEvent) {}

func (p *countingPublisher) Close() error { return nil }

type bookingFixture struct {
	service    Service
	repo       *fakeBookingRepo
	cache      *memoryCache
	publisher  *countingPublisher
	userID     uuid.UUID
	scheduleID uuid.UUID
	totalSeats int
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	layout, err := seatmap.For(seatmap.BusTypeSleeper, seatmap.ClassFirstClass)
	if err != nil {
		t.Fatalf("seat map lookup failed: %v", err)
	}

	userID := uuid.New()
	busID := uuid.New()
	routeID := uuid.New()
	scheduleID := uuid.New()

	repo := newFakeBookingRepo()
	scheduleRepo := &fakeScheduleRepo{schedules: map[uuid.UUID]*schedules.Schedule{
		scheduleID: {ID: scheduleID, BusID: busID, RouteID: routeID},
	}}
	busRepo := &fakeBusRepo{buses: map[uuid.UUID]*buses.Bus{
		busID: {ID: busID, BusType: seatmap.BusTypeSleeper, Class: seatmap.ClassFirstClass, Seats: layout, FarePerTicket: 500},
	}}
	routeRepo := &fakeRouteRepo{routes: map[uuid.UUID]*routes.Route{
		routeID: {ID: routeID, Origin: "Dhaka", Destination: "Chittagong"},
	}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*users.User{
		userID: {ID: userID, FirstName: "Karim", LastName: "Mia", Email: "karim@example.com", Role: users.RolePassenger},
	}}
	memCache := newMemoryCache()
	publisher := &countingPublisher{}

	svc := NewService(repo, scheduleRepo, busRepo, routeRepo, userRepo, memCache, publisher, logger.New(), time.Minute)
	return &bookingFixture{
		service:    svc,
		repo:       repo,
		cache:      memCache,
		publisher:  publisher,
		userID:     userID,
		scheduleID: scheduleID,
		totalSeats: len(layout),
	}
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{1, 2, 2},
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", booking.Status)
	}
	// Duplicate seat numbers collapse before pricing.
	if booking.TotalPrice != 1000 {
		t.Fatalf("expected total price 1000, got %v", booking.TotalPrice)
	}
	if len(booking.Seats) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(booking.Seats))
	}
	if booking.Seats[0].Label != "1A" || booking.Seats[1].Label != "1B" {
		t.Fatalf("unexpected seat labels: %v", booking.Seats.Labels())
	}
}

func TestCreateBookingSeatAboveMax(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{21},
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for seat above map, got %v", err)
	}
}

func TestCreateBookingUnknownSchedule(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  uuid.NewString(),
		JourneyDate: "2026-10-01",
		Seats:       []int{1},
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateBookingSeatConflict(t *testing.T) {
	f := newBookingFixture(t)

	first := CreateBookingRequest{ScheduleID: f.scheduleID.String(), JourneyDate: "2026-10-01", Seats: []int{5, 6}}
	if _, err := f.service.CreateBooking(context.Background(), f.userID.String(), first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second := CreateBookingRequest{ScheduleID: f.scheduleID.String(), JourneyDate: "2026-10-01", Seats: []int{6, 7}}
	_, err := f.service.CreateBooking(context.Background(), uuid.NewString(), second)
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for overlapping seats, got %v", err)
	}
	// The conflict names the contested seat.
	if !strings.Contains(err.Error(), "Seat 6 (3B)") {
		t.Fatalf("expected the taken seat in the conflict message, got %q", err.Error())
	}
}

func TestCancelledBookingFreesSeats(t *testing.T) {
	f := newBookingFixture(t)

	first, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{8, 9},
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	flipped, err := f.repo.UpdateStatusIf(context.Background(), first.BookingID, StatusPending, StatusCancelled)
	if err != nil || !flipped {
		t.Fatalf("cancelling booking failed: flipped=%v err=%v", flipped, err)
	}

	availability, err := f.service.AvailableSeats(context.Background(), AvailabilityQuery{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("AvailableSeats failed: %v", err)
	}
	if len(availability.AvailableSeats) != f.totalSeats {
		t.Fatalf("expected all %d seats free after cancellation, got %d", f.totalSeats, len(availability.AvailableSeats))
	}

	// The exact seats of the cancelled booking can be booked again.
	rebooked, err := f.service.CreateBooking(context.Background(), uuid.NewString(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{8, 9},
	})
	if err != nil {
		t.Fatalf("rebooking cancelled seats failed: %v", err)
	}
	if len(rebooked.Seats) != 2 {
		t.Fatalf("expected 2 seats on the rebooking, got %d", len(rebooked.Seats))
	}
}

func TestCreateBookingSameSeatDifferentDate(t *testing.T) {
	f := newBookingFixture(t)

	first := CreateBookingRequest{ScheduleID: f.scheduleID.String(), JourneyDate: "2026-10-01", Seats: []int{5}}
	if _, err := f.service.CreateBooking(context.Background(), f.userID.String(), first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second := CreateBookingRequest{ScheduleID: f.scheduleID.String(), JourneyDate: "2026-10-02", Seats: []int{5}}
	if _, err := f.service.CreateBooking(context.Background(), f.userID.String(), second); err != nil {
		t.Fatalf("same seat on another date should be free: %v", err)
	}
}

func TestCreateBookingConcurrentOverlap(t *testing.T) {
	f := newBookingFixture(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = f.service.CreateBooking(context.Background(), uuid.NewString(), CreateBookingRequest{
				ScheduleID:  f.scheduleID.String(),
				JourneyDate: "2026-10-01",
				Seats:       []int{10},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !apperrors.IsConflict(err) {
			t.Fatalf("expected conflict errors for losers, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one booking to win seat 10, got %d", succeeded)
	}
}

func TestAvailableSeats(t *testing.T) {
	f := newBookingFixture(t)

	booked := CreateBookingRequest{ScheduleID: f.scheduleID.String(), JourneyDate: "2026-10-01", Seats: []int{1, 3}}
	if _, err := f.service.CreateBooking(context.Background(), f.userID.String(), booked); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	availability, err := f.service.AvailableSeats(context.Background(), AvailabilityQuery{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("AvailableSeats failed: %v", err)
	}
	if availability.TotalSeats != f.totalSeats {
		t.Fatalf("expected %d total seats, got %d", f.totalSeats, availability.TotalSeats)
	}
	if len(availability.AvailableSeats) != f.totalSeats-2 {
		t.Fatalf("expected %d free seats, got %d", f.totalSeats-2, len(availability.AvailableSeats))
	}
	for _, seat := range availability.AvailableSeats {
		if seat.Number == 1 || seat.Number == 3 {
			t.Fatalf("booked seat %d still reported free", seat.Number)
		}
	}
	if f.cache.sets != 1 {
		t.Fatalf("expected availability to be cached once, got %d sets", f.cache.sets)
	}
}

func TestCreateBookingInvalidatesAvailabilityCache(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.service.AvailableSeats(context.Background(), AvailabilityQuery{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
	}); err != nil {
		t.Fatalf("AvailableSeats failed: %v", err)
	}

	if _, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{2},
	}); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if f.cache.deletes == 0 {
		t.Fatalf("expected cached availability to be invalidated after booking")
	}
}

func TestGetBookingOwnership(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateBooking(context.Background(), f.userID.String(), CreateBookingRequest{
		ScheduleID:  f.scheduleID.String(),
		JourneyDate: "2026-10-01",
		Seats:       []int{4},
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if _, err := f.service.GetBooking(context.Background(), f.userID.String(), booking.BookingID.String()); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err = f.service.GetBooking(context.Background(), uuid.NewString(), booking.BookingID.String())
	if !apperrors.IsForbidden(err) {
		t.Fatalf("expected forbidden for foreign booking, got %v", err)
	}
}

func TestParseJourneyDateNormalizes(t *testing.T) {
	parsed, err := ParseJourneyDate("2026-10-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Hour() != 0 || parsed.Location() != time.UTC {
		t.Fatalf("expected midnight UTC, got %v", parsed)
	}
	if FormatJourneyDate(parsed) != "2026-10-01" {
		t.Fatalf("round trip mismatch: %s", FormatJourneyDate(parsed))
	}
}
