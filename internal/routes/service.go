package routes

import (
	"context"
	"errors"
	"fmt"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error)
	GetRoutes(ctx context.Context) ([]RouteResponse, error)
	DeleteRoute(ctx context.Context, routeID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error) {
	existing, err := s.repo.GetByEndpoints(ctx, req.Origin, req.Destination)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.InternalError{Msg: "failed to look up route", Err: err}
	}
	if existing != nil {
		return nil, &apperrors.ConflictError{Resource: "route", Msg: "A route with these properties already exists."}
	}

	route := &Route{
		Origin:             req.Origin,
		Destination:        req.Destination,
		DistanceInKm:       req.DistanceInKm,
		EstimatedTimeInMin: req.EstimatedTimeInMin,
	}
	if err := s.repo.Create(ctx, route); err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to create route", Err: err}
	}

	resp := toRouteResponse(route)
	return &resp, nil
}

func (s *service) GetRoutes(ctx context.Context) ([]RouteResponse, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, &apperrors.InternalError{Msg: "failed to list routes", Err: err}
	}

	responses := make([]RouteResponse, 0, len(found))
	for i := range found {
		responses = append(responses, toRouteResponse(&found[i]))
	}
	return responses, nil
}

func (s *service) DeleteRoute(ctx context.Context, routeID string) error {
	id, err := uuid.Parse(routeID)
	if err != nil {
		return &apperrors.ValidationError{Field: "routeId", Msg: "must be a valid uuid"}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "route", Err: fmt.Errorf("route %s: %w", id, err)}
		}
		return &apperrors.InternalError{Msg: "failed to look up route", Err: err}
	}

	referenced, err := s.repo.IsReferencedBySchedule(ctx, id)
	if err != nil {
		return &apperrors.InternalError{Msg: "failed to check schedules for route", Err: err}
	}
	if referenced {
		return &apperrors.ConflictError{
			Resource: "route",
			Msg:      "This route is used by a schedule, delete the schedule first.",
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return &apperrors.InternalError{Msg: "failed to delete route", Err: err}
	}
	return nil
}
