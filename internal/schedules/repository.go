package schedules

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	GetDuplicate(ctx context.Context, busID, routeID uuid.UUID, departure, arrival time.Time) (*Schedule, error)
	List(ctx context.Context, filters ScheduleFilters) ([]Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, schedule *Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	var schedule Schedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) GetDuplicate(ctx context.Context, busID, routeID uuid.UUID, departure, arrival time.Time) (*Schedule, error) {
	var schedule Schedule
	err := r.db.WithContext(ctx).
		Where("bus_id = ? AND route_id = ? AND estimated_departure_time = ? AND estimated_arrival_time = ?",
			busID, routeID, departure, arrival).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Schedule{}, "id = ?", id).Error
}

func (r *repository) List(ctx context.Context, filters ScheduleFilters) ([]Schedule, error) {
	query := r.db.WithContext(ctx).Model(&Schedule{})
	if filters.RouteID != "" {
		query = query.Where("route_id = ?", filters.RouteID)
	}
	if filters.BusID != "" {
		query = query.Where("bus_id = ?", filters.BusID)
	}

	var found []Schedule
	if err := query.Order("estimated_departure_time asc").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
