package buses

import (
	"context"
	"testing"

	"busline/internal/seatmap"
	"busline/internal/shared/apperrors"
	"busline/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeBusRepo struct {
	buses     map[uuid.UUID]*Bus
	scheduled map[uuid.UUID]bool
}

func (f *fakeBusRepo) Create(ctx context.Context, bus *Bus) error {
	if bus.ID == uuid.Nil {
		bus.ID = uuid.New()
	}
	f.buses[bus.ID] = bus
	return nil
}

func (f *fakeBusRepo) GetByID(ctx context.Context, id uuid.UUID) (*Bus, error) {
	if b, ok := f.buses[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBusRepo) GetByRegistrationOrDriver(ctx context.Context, registrationNumber string, driverID uuid.UUID) (*Bus, error) {
	for _, b := range f.buses {
		if b.RegistrationNumber == registrationNumber || b.DriverID == driverID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBusRepo) List(ctx context.Context, filters BusFilters) ([]Bus, error) {
	out := make([]Bus, 0, len(f.buses))
	for _, b := range f.buses {
		if filters.BusType != "" && b.BusType != seatmap.BusType(filters.BusType) {
			continue
		}
		if filters.Class != "" && b.Class != seatmap.Class(filters.Class) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.buses, id)
	return nil
}

func (f *fakeBusRepo) HasSchedules(ctx context.Context, busID uuid.UUID) (bool, error) {
	return f.scheduled[busID], nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*users.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByIDAndRole(ctx context.Context, id uuid.UUID, role users.Role) (*users.User, error) {
	u, ok := f.users[id]
	if !ok || u.Role != role {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newBusFixture() (Service, *fakeBusRepo, uuid.UUID) {
	driverID := uuid.New()
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*users.User{
		driverID: {ID: driverID, FirstName: "Jashim", LastName: "Sheikh", Role: users.RoleDriver},
	}}
	busRepo := &fakeBusRepo{buses: map[uuid.UUID]*Bus{}, scheduled: map[uuid.UUID]bool{}}
	return NewService(busRepo, userRepo), busRepo, driverID
}

func validBusRequest(driverID uuid.UUID) CreateBusRequest {
	return CreateBusRequest{
		RegistrationNumber: "DHK-1122",
		BusType:            string(seatmap.BusTypeNoneAC),
		Class:              string(seatmap.ClassEconomy),
		FarePerTicket:      350,
		DriverID:           driverID.String(),
	}
}

func TestCreateBusCopiesLayout(t *testing.T) {
	svc, repo, driverID := newBusFixture()

	resp, err := svc.CreateBus(context.Background(), validBusRequest(driverID))
	if err != nil {
		t.Fatalf("CreateBus returned error: %v", err)
	}
	if resp.TotalSeats != 60 {
		t.Fatalf("expected 60 seats for NONE_AC ECONOMY, got %d", resp.TotalSeats)
	}

	stored := repo.buses[resp.BusID]
	if stored == nil {
		t.Fatalf("bus was not persisted")
	}
	if len(stored.Seats) != 60 {
		t.Fatalf("expected the layout copied onto the bus, got %d seats", len(stored.Seats))
	}
	if stored.Seats[0].Label != "1A" {
		t.Fatalf("expected first seat label 1A, got %s", stored.Seats[0].Label)
	}
}

func TestCreateBusInvalidCombination(t *testing.T) {
	svc, _, driverID := newBusFixture()

	req := validBusRequest(driverID)
	req.BusType = string(seatmap.BusTypeNoneAC)
	req.Class = string(seatmap.ClassFirstClass)

	if _, err := svc.CreateBus(context.Background(), req); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for NONE_AC FIRSTCLASS, got %v", err)
	}
}

func TestCreateBusUnknownDriver(t *testing.T) {
	svc, _, _ := newBusFixture()

	req := validBusRequest(uuid.New())
	if _, err := svc.CreateBus(context.Background(), req); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error for unknown driver, got %v", err)
	}
}

func TestCreateBusDuplicateRegistration(t *testing.T) {
	svc, _, driverID := newBusFixture()

	if _, err := svc.CreateBus(context.Background(), validBusRequest(driverID)); err != nil {
		t.Fatalf("first CreateBus returned error: %v", err)
	}
	if _, err := svc.CreateBus(context.Background(), validBusRequest(driverID)); !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate registration, got %v", err)
	}
}

func TestDeleteBus(t *testing.T) {
	svc, repo, driverID := newBusFixture()

	created, err := svc.CreateBus(context.Background(), validBusRequest(driverID))
	if err != nil {
		t.Fatalf("CreateBus returned error: %v", err)
	}

	if err := svc.DeleteBus(context.Background(), created.BusID.String()); err != nil {
		t.Fatalf("DeleteBus returned error: %v", err)
	}
	if _, ok := repo.buses[created.BusID]; ok {
		t.Fatalf("bus still present after delete")
	}
}

func TestDeleteBusScheduled(t *testing.T) {
	svc, repo, driverID := newBusFixture()

	created, err := svc.CreateBus(context.Background(), validBusRequest(driverID))
	if err != nil {
		t.Fatalf("CreateBus returned error: %v", err)
	}
	repo.scheduled[created.BusID] = true

	if err := svc.DeleteBus(context.Background(), created.BusID.String()); !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for scheduled bus, got %v", err)
	}
	if _, ok := repo.buses[created.BusID]; !ok {
		t.Fatalf("scheduled bus must not be deleted")
	}
}

func TestDeleteBusUnknown(t *testing.T) {
	svc, _, _ := newBusFixture()

	if err := svc.DeleteBus(context.Background(), uuid.NewString()); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown bus, got %v", err)
	}
}

func TestGetBusesFiltersByType(t *testing.T) {
	svc, _, driverID := newBusFixture()

	if _, err := svc.CreateBus(context.Background(), validBusRequest(driverID)); err != nil {
		t.Fatalf("CreateBus returned error: %v", err)
	}

	found, err := svc.GetBuses(context.Background(), BusFilters{BusType: string(seatmap.BusTypeNoneAC)})
	if err != nil {
		t.Fatalf("GetBuses returned error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 bus, got %d", len(found))
	}

	empty, err := svc.GetBuses(context.Background(), BusFilters{BusType: string(seatmap.BusTypeSleeper)})
	if err != nil {
		t.Fatalf("GetBuses returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no sleeper buses, got %d", len(empty))
	}
}
