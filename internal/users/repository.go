package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIDAndRole(ctx context.Context, id uuid.UUID, role Role) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByIDAndRole(ctx context.Context, id uuid.UUID, role Role) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ? AND role = ?", id, role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
