package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maaziride/internal/model"
)

// VehicleRepository defines vehicle persistence operations, keyed by the
// owning driver's user id.
type VehicleRepository interface {
	Upsert(ctx context.Context, vehicle *model.Vehicle) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Vehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Upsert creates the driver's vehicle or replaces its attributes. One
// vehicle per driver.
func (r *vehicleRepository) Upsert(ctx context.Context, vehicle *model.Vehicle) error {
	var existing model.Vehicle
	err := r.db.WithContext(ctx).Where("user_id = ?", vehicle.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(vehicle).Error
	}
	if err != nil {
		return err
	}

	vehicle.ID = existing.ID
	vehicle.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}
