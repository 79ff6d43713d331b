package trips

import (
	"context"
	"errors"
	"fmt"

	"busline/internal/schedules"
	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	StartTrip(ctx context.Context, req StartTripRequest) (*TripResponse, error)
	UpdateTripStatus(ctx context.Context, tripID string, req UpdateTripStatusRequest) (*TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*TripResponse, error)
	ListTrips(ctx context.Context) ([]TripResponse, error)
	GetScheduleTripStats(ctx context.Context, scheduleID string) (*ScheduleTripStats, error)
}

type service struct {
	repo         Repository
	scheduleRepo schedules.Repository
}

func NewService(repo Repository, scheduleRepo schedules.Repository) Service {
	return &service{repo: repo, scheduleRepo: scheduleRepo}
}

// StartTrip opens a new PENDING trip for a schedule. A schedule can
// only run one journey at a time, so an unfinished trip blocks a new one.
func (s *service) StartTrip(ctx context.Context, req StartTripRequest) (*TripResponse, error) {
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "schedule_id", Msg: "must be a valid uuid"}
	}

	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}

	unfinished, err := s.repo.GetUnfinishedBySchedule(ctx, scheduleID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.InternalError{Msg: "failed to look up trips", Err: err}
	}
	if unfinished != nil {
		return nil, &apperrors.ConflictError{
			Resource: "trip",
			Msg:      "Can not start another trip, first one has not been completed.",
		}
	}

	trip := &Trip{
		ScheduleID: scheduleID,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to create trip", Err: err}
	}

	resp := toTripResponse(trip)
	return &resp, nil
}

// UpdateTripStatus moves a trip to UNTRACKED or COMPLETED. A completed
// trip can never change again, and no-op updates are rejected.
func (s *service) UpdateTripStatus(ctx context.Context, tripID string, req UpdateTripStatusRequest) (*TripResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "tripId", Msg: "must be a valid uuid"}
	}
	if !IsValidStatusUpdate(req.Status) {
		return nil, &apperrors.ValidationError{Field: "status", Msg: "must be UNTRACKED or COMPLETED"}
	}

	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up trip", Err: err}
	}

	if trip.Status == StatusCompleted {
		return nil, &apperrors.ConflictError{
			Resource: "trip",
			Msg:      "This trip is already completed cannot update status.",
		}
	}
	if trip.Status == Status(req.Status) {
		return nil, &apperrors.ConflictError{
			Resource: "trip",
			Msg:      fmt.Sprintf("This trip status is already marked as %s.", req.Status),
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, Status(req.Status)); err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to update trip status", Err: err}
	}

	trip.Status = Status(req.Status)
	resp := toTripResponse(trip)
	return &resp, nil
}

func (s *service) GetTrip(ctx context.Context, tripID string) (*TripResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "tripId", Msg: "must be a valid uuid"}
	}

	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up trip", Err: err}
	}

	resp := toTripResponse(trip)
	return &resp, nil
}

func (s *service) ListTrips(ctx context.Context) ([]TripResponse, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list trips", Err: err}
	}

	responses := make([]TripResponse, 0, len(trips))
	for i := range trips {
		responses = append(responses, toTripResponse(&trips[i]))
	}
	return responses, nil
}

func (s *service) GetScheduleTripStats(ctx context.Context, scheduleID string) (*ScheduleTripStats, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "scheduleId", Msg: "must be a valid uuid"}
	}

	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "schedule", Err: err}
		}
		return nil, &apperrors.InternalError{Msg: "failed to look up schedule", Err: err}
	}

	count, err := s.repo.CountCompletedBySchedule(ctx, id)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to count completed trips", Err: err}
	}

	return &ScheduleTripStats{ScheduleID: id, CompletedTrips: count}, nil
}
