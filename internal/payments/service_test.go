package payments

import (
	"context"
	"testing"
	"time"

	"busline/internal/artifacts"
	"busline/internal/bookings"
	"busline/internal/buses"
	"busline/internal/notifications"
	"busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/seatmap"
	"busline/internal/shared/apperrors"
	"busline/internal/tickets"
	"busline/internal/users"
	"busline/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakePaymentRepo struct {
	payments map[uuid.UUID]*Payment
	issued   map[uuid.UUID]*tickets.Ticket
	bookings map[uuid.UUID]*bookings.Booking
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[uuid.UUID]*Payment),
		issued:   make(map[uuid.UUID]*tickets.Ticket),
		bookings: make(map[uuid.UUID]*bookings.Booking),
	}
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID uuid.UUID) (*Payment, error) {
	payment, ok := f.payments[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (f *fakePaymentRepo) CompletePayment(_ context.Context, payment *Payment, ticket *tickets.Ticket) error {
	booking, ok := f.bookings[payment.BookingID]
	if !ok || booking.Status != bookings.StatusPending {
		return ErrBookingNotPending
	}
	booking.Status = bookings.StatusPaid

	payment.ID = uuid.New()
	f.payments[payment.BookingID] = payment

	ticket.ID = uuid.New()
	ticket.BookingID = payment.BookingID
	f.issued[payment.BookingID] = ticket
	return nil
}

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*bookings.Booking
	allocations map[uuid.UUID]*bookings.SeatAllocation
}

func (f *fakeBookingRepo) CreateWithSeatLock(context.Context, *bookings.Booking, *bookings.SeatAllocation) error {
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*bookings.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetAllocationByBookingID(_ context.Context, bookingID uuid.UUID) (*bookings.SeatAllocation, error) {
	allocation, ok := f.allocations[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return allocation, nil
}

func (f *fakeBookingRepo) GetTakenSeatNumbers(context.Context, uuid.UUID, time.Time) (map[int]bool, error) {
	return map[int]bool{}, nil
}

func (f *fakeBookingRepo) ListByUser(context.Context, uuid.UUID) ([]bookings.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(context.Context, uuid.UUID, bookings.Status, bookings.Status) (bool, error) {
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

func (f *fakeScheduleRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeScheduleRepo) List(context.Context, schedules.ScheduleFilters) ([]schedules.Schedule, error) {
	return nil, nil
}

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

type fakeRenderer struct {
	rendered []artifacts.TicketData
}

func (f *fakeRenderer) RenderTicket(data artifacts.TicketData) ([]byte, error) {
	f.rendered = append(f.rendered, data)
	return []byte("%PDF-fake"), nil
}

type fakeStore struct {
	saved map[string][]byte
}

func (f *fakeStore) Save(name string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[name] = data
	return "http://localhost:8080/artifacts/" + name, nil
}

type recordingPublisher struct {
	issued []notifications.TicketEvent
}

func (p *recordingPublisher) BookingCreated(notifications.BookingEvent) {}

func (p *recordingPublisher) TicketIssued(event notifications.TicketEvent) {
	p.issued = append(p.issued, event)
}

func (p *recordingPublisher) TicketResend(notifications.TicketEvent) {}

func (p *recordingPublisher) BookingRefunded(notifications.RefundEvent) {}

func (p *recordingPublisher) Close() error { return nil }

type paymentFixture struct {
	service   Service
	repo      *fakePaymentRepo
	renderer  *fakeRenderer
	store     *fakeStore
	publisher *recordingPublisher

	userID    uuid.UUID
	bookingID uuid.UUID
}

func newPaymentFixture(t *testing.T, status bookings.Status) *paymentFixture {
	t.Helper()

	layout, err := seatmap.For(seatmap.BusTypeAC, seatmap.ClassFirstClass)
	if err != nil {
		t.Fatalf("seat map lookup failed: %v", err)
	}

	userID := uuid.New()
	busID := uuid.New()
	routeID := uuid.New()
	scheduleID := uuid.New()
	bookingID := uuid.New()

	booking := &bookings.Booking{
		ID:          bookingID,
		UserID:      userID,
		ScheduleID:  scheduleID,
		JourneyDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalPrice:  1500,
		Status:      status,
	}

	repo := newFakePaymentRepo()
	repo.bookings[bookingID] = booking

	bookingRepo := &fakeBookingRepo{
		bookings: map[uuid.UUID]*bookings.Booking{bookingID: booking},
		allocations: map[uuid.UUID]*bookings.SeatAllocation{
			bookingID: {BookingID: bookingID, Seats: bookings.SeatList{layout[0], layout[1], layout[2]}},
		},
	}
	scheduleRepo := &fakeScheduleRepo{schedules: map[uuid.UUID]*schedules.Schedule{
		scheduleID: {
			ID:                     scheduleID,
			BusID:                  busID,
			RouteID:                routeID,
			EstimatedDepartureTime: time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC),
			EstimatedArrivalTime:   time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC),
		},
	}}
	busRepo := &fakeBusRepo{buses: map[uuid.UUID]*buses.Bus{
		busID: {
			ID:                 busID,
			RegistrationNumber: "DHK-METRO-1122",
			BusType:            seatmap.BusTypeAC,
			Class:              seatmap.ClassFirstClass,
			Seats:              layout,
			FarePerTicket:      500,
		},
	}}
	routeRepo := &fakeRouteRepo{routes: map[uuid.UUID]*routes.Route{
		routeID: {ID: routeID, Origin: "Dhaka", Destination: "Sylhet"},
	}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*users.User{
		userID: {ID: userID, FirstName: "Nusrat", LastName: "Jahan", Email: "nusrat@example.com", PhoneNumber: "01700000000", Role: users.RolePassenger},
	}}

	renderer := &fakeRenderer{}
	store := &fakeStore{}
	publisher := &recordingPublisher{}

	svc := NewService(repo, bookingRepo, scheduleRepo, busRepo, routeRepo, userRepo, renderer, store, publisher, logger.New())
	return &paymentFixture{
		service:   svc,
		repo:      repo,
		renderer:  renderer,
		store:     store,
		publisher: publisher,
		userID:    userID,
		bookingID: bookingID,
	}
}

func validRequest() CompletePaymentRequest {
	return CompletePaymentRequest{Method: "ONLINE", Amount: 1500, ReferenceCode: "TXN-0001"}
}

func TestCompletePayment(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	payment, err := f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), validRequest())
	if err != nil {
		t.Fatalf("CompletePayment failed: %v", err)
	}
	if payment.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS payment, got %s", payment.Status)
	}
	if payment.TicketPdfURL == "" {
		t.Fatalf("expected a stored ticket URL")
	}
	if f.repo.bookings[f.bookingID].Status != bookings.StatusPaid {
		t.Fatalf("expected booking flipped to PAID")
	}
	if f.repo.issued[f.bookingID] == nil {
		t.Fatalf("expected a ticket row issued with the payment")
	}
	if len(f.renderer.rendered) != 1 {
		t.Fatalf("expected one rendered ticket, got %d", len(f.renderer.rendered))
	}
	if got := f.renderer.rendered[0].PassengerName; got != "Nusrat Jahan" {
		t.Fatalf("unexpected passenger name on ticket: %q", got)
	}
	if len(f.publisher.issued) != 1 {
		t.Fatalf("expected one ticket notification, got %d", len(f.publisher.issued))
	}
}

func TestCompletePaymentUnknownBooking(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	_, err := f.service.CompletePayment(context.Background(), f.userID.String(), uuid.NewString(), validRequest())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCompletePaymentForeignBooking(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	_, err := f.service.CompletePayment(context.Background(), uuid.NewString(), f.bookingID.String(), validRequest())
	if !apperrors.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestCompletePaymentAlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPaid)

	_, err := f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), validRequest())
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for paid booking, got %v", err)
	}
}

func TestCompletePaymentWrongAmount(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	req := validRequest()
	req.Amount = 900
	_, err := f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), req)
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for wrong amount, got %v", err)
	}
	if len(f.renderer.rendered) != 0 {
		t.Fatalf("no ticket should be rendered for a rejected payment")
	}
}

func TestCompletePaymentInvalidMethod(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	req := validRequest()
	req.Method = "CHEQUE"
	_, err := f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), req)
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown method, got %v", err)
	}
}

func TestCompletePaymentLostRace(t *testing.T) {
	f := newPaymentFixture(t, bookings.StatusPending)

	// Another payment wins between the service's status check and the
	// transactional flip.
	f.repo.bookings[f.bookingID].Status = bookings.StatusPending
	first, err := f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), validRequest())
	if err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	if first.Status != StatusSuccess {
		t.Fatalf("expected first payment to succeed")
	}

	// The booking is now PAID, so the second attempt must fail on the
	// status check with a conflict.
	_, err = f.service.CompletePayment(context.Background(), f.userID.String(), f.bookingID.String(), validRequest())
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for losing payment, got %v", err)
	}
}
