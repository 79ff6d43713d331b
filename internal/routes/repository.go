package routes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, route *Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*Route, error)
	GetByEndpoints(ctx context.Context, origin, destination string) (*Route, error)
	List(ctx context.Context) ([]Route, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// IsReferencedBySchedule reports whether any schedule still uses
	// the route.
	IsReferencedBySchedule(ctx context.Context, routeID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, route *Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Route, error) {
	var route Route
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) GetByEndpoints(ctx context.Context, origin, destination string) (*Route, error) {
	var route Route
	if err := r.db.WithContext(ctx).First(&route, "origin = ? AND destination = ?", origin, destination).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) List(ctx context.Context) ([]Route, error) {
	var found []Route
	if err := r.db.WithContext(ctx).Order("origin asc").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Route{}, "id = ?", id).Error
}

func (r *repository) IsReferencedBySchedule(ctx context.Context, routeID uuid.UUID) (bool, error) {
	// The schedules package imports routes, so the reference check goes
	// through the table name instead of importing it back.
	var count int64
	err := r.db.WithContext(ctx).
		Table("schedules").
		Where("route_id = ?", routeID).
		Count(&count).Error
	return count > 0, err
}
