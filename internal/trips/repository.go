package trips

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	GetUnfinishedBySchedule(ctx context.Context, scheduleID uuid.UUID) (*Trip, error)
	List(ctx context.Context) ([]Trip, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	CountCompletedBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var trip Trip
	if err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *repository) GetUnfinishedBySchedule(ctx context.Context, scheduleID uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND status <> ?", scheduleID, StatusCompleted).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *repository) List(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Trip{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) CountCompletedBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Trip{}).
		Where("schedule_id = ? AND status = ?", scheduleID, StatusCompleted).
		Count(&count).Error
	return count, err
}
