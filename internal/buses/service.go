package buses

import (
	"context"
	"errors"

	"busline/internal/seatmap"
	"busline/internal/shared/apperrors"
	"busline/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateBus(ctx context.Context, req CreateBusRequest) (*BusResponse, error)
	GetBuses(ctx context.Context, filters BusFilters) ([]BusResponse, error)
	GetBus(ctx context.Context, busID string) (*BusResponse, error)
	DeleteBus(ctx context.Context, busID string) error
}

type service struct {
	repo     Repository
	userRepo users.Repository
}

func NewService(repo Repository, userRepo users.Repository) Service {
	return &service{repo: repo, userRepo: userRepo}
}

func (s *service) CreateBus(ctx context.Context, req CreateBusRequest) (*BusResponse, error) {
	if !seatmap.ValidBusType(req.BusType) {
		return nil, &apperrors.ValidationError{Field: "bus_type", Msg: "unknown bus type"}
	}
	if !seatmap.ValidClass(req.Class) {
		return nil, &apperrors.ValidationError{Field: "class", Msg: "unknown class"}
	}

	layout, err := seatmap.For(seatmap.BusType(req.BusType), seatmap.Class(req.Class))
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "class", Msg: "unsupported bus type and class combination", Err: err}
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "driver_id", Msg: "must be a valid uuid"}
	}

	if _, err := s.userRepo.GetByIDAndRole(ctx, driverID, users.RoleDriver); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "driver", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up driver", Err: err}
	}

	existing, err := s.repo.GetByRegistrationOrDriver(ctx, req.RegistrationNumber, driverID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.InternalError{Msg: "failed to look up bus", Err: err}
	}
	if existing != nil {
		return nil, &apperrors.ConflictError{
			Resource: "bus",
			Msg:      "A bus with this registration number or driver already exists.",
		}
	}

	bus := &Bus{
		RegistrationNumber: req.RegistrationNumber,
		BusType:            seatmap.BusType(req.BusType),
		Class:              seatmap.Class(req.Class),
		Seats:              layout,
		FarePerTicket:      req.FarePerTicket,
		DriverID:           driverID,
	}
	if err := s.repo.Create(ctx, bus); err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to create bus", Err: err}
	}

	resp := toBusResponse(bus)
	return &resp, nil
}

// DeleteBus removes an unscheduled bus. A scheduled bus still backs
// live inventory, so the schedule has to go first.
func (s *service) DeleteBus(ctx context.Context, busID string) error {
	id, err := uuid.Parse(busID)
	if err != nil {
		return &apperrors.ValidationError{Field: "busId", Msg: "must be a valid uuid"}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "bus", Err: err}
		}
		return &apperrors.InternalError{Msg: "failed to look up bus", Err: err}
	}

	scheduled, err := s.repo.HasSchedules(ctx, id)
	if err != nil {
		return &apperrors.InternalError{Msg: "failed to check schedules for bus", Err: err}
	}
	if scheduled {
		return &apperrors.ConflictError{
			Resource: "bus",
			Msg:      "This bus is assigned to a schedule, delete the schedule first.",
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return &apperrors.InternalError{Msg: "failed to delete bus", Err: err}
	}
	return nil
}

func (s *service) GetBuses(ctx context.Context, filters BusFilters) ([]BusResponse, error) {
	if filters.BusType != "" && !seatmap.ValidBusType(filters.BusType) {
		return nil, &apperrors.ValidationError{Field: "bus_type", Msg: "unknown bus type"}
	}
	if filters.Class != "" && !seatmap.ValidClass(filters.Class) {
		return nil, &apperrors.ValidationError{Field: "class", Msg: "unknown class"}
	}

	found, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list buses", Err: err}
	}

	responses := make([]BusResponse, 0, len(found))
	for i := range found {
		responses = append(responses, toBusResponse(&found[i]))
	}
	return responses, nil
}

func (s *service) GetBus(ctx context.Context, busID string) (*BusResponse, error) {
	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "busId", Msg: "must be a valid uuid"}
	}

	bus, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "bus", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up bus", Err: err}
	}

	resp := toBusResponse(bus)
	return &resp, nil
}
