package routes

import (
	"context"
	"testing"

	"busline/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRouteRepo struct {
	routes     map[uuid.UUID]*Route
	referenced map[uuid.UUID]bool
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{
		routes:     map[uuid.UUID]*Route{},
		referenced: map[uuid.UUID]bool{},
	}
}

func (f *fakeRouteRepo) Create(ctx context.Context, route *Route) error {
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	f.routes[route.ID] = route
	return nil
}

func (f *fakeRouteRepo) GetByID(ctx context.Context, id uuid.UUID) (*Route, error) {
	if r, ok := f.routes[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRouteRepo) GetByEndpoints(ctx context.Context, origin, destination string) (*Route, error) {
	for _, r := range f.routes {
		if r.Origin == origin && r.Destination == destination {
			copied := *r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRouteRepo) List(ctx context.Context) ([]Route, error) {
	out := make([]Route, 0, len(f.routes))
	for _, r := range f.routes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRouteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.routes, id)
	return nil
}

func (f *fakeRouteRepo) IsReferencedBySchedule(ctx context.Context, routeID uuid.UUID) (bool, error) {
	return f.referenced[routeID], nil
}

func validRouteRequest() CreateRouteRequest {
	return CreateRouteRequest{
		Origin:             "Dhaka",
		Destination:        "Sylhet",
		DistanceInKm:       240,
		EstimatedTimeInMin: 360,
	}
}

func TestCreateRouteDuplicateEndpoints(t *testing.T) {
	repo := newFakeRouteRepo()
	svc := NewService(repo)

	if _, err := svc.CreateRoute(context.Background(), validRouteRequest()); err != nil {
		t.Fatalf("first CreateRoute returned error: %v", err)
	}
	if _, err := svc.CreateRoute(context.Background(), validRouteRequest()); !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate endpoints, got %v", err)
	}
}

func TestDeleteRoute(t *testing.T) {
	repo := newFakeRouteRepo()
	svc := NewService(repo)

	created, err := svc.CreateRoute(context.Background(), validRouteRequest())
	if err != nil {
		t.Fatalf("CreateRoute returned error: %v", err)
	}

	if err := svc.DeleteRoute(context.Background(), created.RouteID.String()); err != nil {
		t.Fatalf("DeleteRoute returned error: %v", err)
	}
	if _, ok := repo.routes[created.RouteID]; ok {
		t.Fatalf("route still present after delete")
	}
}

func TestDeleteRouteReferencedBySchedule(t *testing.T) {
	repo := newFakeRouteRepo()
	svc := NewService(repo)

	created, err := svc.CreateRoute(context.Background(), validRouteRequest())
	if err != nil {
		t.Fatalf("CreateRoute returned error: %v", err)
	}
	repo.referenced[created.RouteID] = true

	if err := svc.DeleteRoute(context.Background(), created.RouteID.String()); !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for scheduled route, got %v", err)
	}
	if _, ok := repo.routes[created.RouteID]; !ok {
		t.Fatalf("referenced route must not be deleted")
	}
}

func TestDeleteRouteUnknown(t *testing.T) {
	repo := newFakeRouteRepo()
	svc := NewService(repo)

	if err := svc.DeleteRoute(context.Background(), uuid.NewString()); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown route, got %v", err)
	}
}
