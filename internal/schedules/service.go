package schedules

import (
	"context"
	"errors"

	"busline/internal/buses"
	"busline/internal/routes"
	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error)
	GetSchedules(ctx context.Context, filters ScheduleFilters) ([]ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID string) (*ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type service struct {
	repo      Repository
	busRepo   buses.Repository
	routeRepo routes.Repository
}

func NewService(repo Repository, busRepo buses.Repository, routeRepo routes.Repository) Service {
	return &service{repo: repo, busRepo: busRepo, routeRepo: routeRepo}
}

func (s *service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	if !req.EstimatedArrivalTime.After(req.EstimatedDepartureTime) {
		return nil, &apperrors.ValidationError{
			Field: "estimated_arrival_time",
			Msg:   "must be after the estimated departure time",
		}
	}

	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "bus_id", Msg: "must be a valid uuid"}
	}
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "route_id", Msg: "must be a valid uuid"}
	}

	if _, err := s.busRepo.GetByID(ctx, busID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "bus", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up bus", Err: err}
	}
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "route", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up route", Err: err}
	}

	duplicate, err := s.repo.GetDuplicate(ctx, busID, routeID, req.EstimatedDepartureTime, req.EstimatedArrivalTime)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}
	if duplicate != nil {
		return nil, &apperrors.ConflictError{
			Resource: "schedule",
			Msg:      "A schedule with this configuration already exists.",
		}
	}

	schedule := &Schedule{
		BusID:                  busID,
		RouteID:                routeID,
		EstimatedDepartureTime: req.EstimatedDepartureTime,
		EstimatedArrivalTime:   req.EstimatedArrivalTime,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to create schedule", Err: err}
	}

	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *service) GetSchedules(ctx context.Context, filters ScheduleFilters) ([]ScheduleResponse, error) {
	found, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list schedules", Err: err}
	}

	responses := make([]ScheduleResponse, 0, len(found))
	for i := range found {
		responses = append(responses, toScheduleResponse(&found[i]))
	}
	return responses, nil
}

func (s *service) GetSchedule(ctx context.Context, scheduleID string) (*ScheduleResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "scheduleId", Msg: "must be a valid uuid"}
	}

	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}

	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *service) DeleteSchedule(ctx context.Context, scheduleID string) error {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return &apperrors.ValidationError{Field: "scheduleId", Msg: "must be a valid uuid"}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return &apperrors.InternalError{Msg: "failed to delete schedule", Err: err}
	}
	return nil
}
