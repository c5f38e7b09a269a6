package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maaziride/internal/model"
)

// UserRepository defines identity record persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListUnverifiedDrivers(ctx context.Context) ([]model.User, error)
	IncrementRidesCompleted(ctx context.Context, id uuid.UUID) error
	UpdateDriverRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUnverifiedDrivers returns drivers awaiting admin sign-off, vehicle
// preloaded so the caller can evaluate onboarding completeness.
func (r *userRepository) ListUnverifiedDrivers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("role = ? AND is_verified = ?", model.RoleDriver, false).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) IncrementRidesCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("rides_completed", gorm.Expr("rides_completed + 1")).Error
}

func (r *userRepository) UpdateDriverRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("driver_rating", rating).Error
}
