package buses

import (
	"context"

	"busline/internal/seatmap"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bus *Bus) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bus, error)
	GetByRegistrationOrDriver(ctx context.Context, registrationNumber string, driverID uuid.UUID) (*Bus, error)
	List(ctx context.Context, filters BusFilters) ([]Bus, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// HasSchedules reports whether any schedule still references the bus.
	HasSchedules(ctx context.Context, busID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bus *Bus) error {
	return r.db.WithContext(ctx).Create(bus).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Bus, error) {
	var bus Bus
	if err := r.db.WithContext(ctx).First(&bus, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) GetByRegistrationOrDriver(ctx context.Context, registrationNumber string, driverID uuid.UUID) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).
		Where("registration_number = ? OR driver_id = ?", registrationNumber, driverID).
		First(&bus).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Bus{}, "id = ?", id).Error
}

func (r *repository) HasSchedules(ctx context.Context, busID uuid.UUID) (bool, error) {
	// The schedules package imports buses, so the reference check goes
	// through the table name instead of importing it back.
	var count int64
	err := r.db.WithContext(ctx).
		Table("schedules").
		Where("bus_id = ?", busID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filters BusFilters) ([]Bus, error) {
	query := r.db.WithContext(ctx).Model(&Bus{})
	if filters.BusType != "" {
		query = query.Where("bus_type = ?", seatmap.BusType(filters.BusType))
	}
	if filters.Class != "" {
		query = query.Where("class = ?", seatmap.Class(filters.Class))
	}

	var found []Bus
	if err := query.Order("created_at desc").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
