package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maaziride/internal/model"
)

// RideRepository defines ride persistence operations.
type RideRepository interface {
	Create(ctx context.Context, ride *model.Ride) error
	Update(ctx context.Context, ride *model.Ride) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ride, error)
	ListByRider(ctx context.Context, riderID uuid.UUID) ([]model.Ride, error)
	Assign(ctx context.Context, rideID, driverID uuid.UUID) (bool, error)
	AverageRating(ctx context.Context, driverID uuid.UUID) (*float64, error)
}

type rideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new ride repository.
func NewRideRepository(db *gorm.DB) RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *model.Ride) error {
	return r.db.WithContext(ctx).Create(ride).Error
}

func (r *rideRepository) Update(ctx context.Context, ride *model.Ride) error {
	return r.db.WithContext(ctx).Save(ride).Error
}

func (r *rideRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Ride, error) {
	var ride model.Ride
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ride).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *rideRepository) ListByRider(ctx context.Context, riderID uuid.UUID) ([]model.Ride, error) {
	var rides []model.Ride
	if err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Find(&rides).Error; err != nil {
		return nil, err
	}
	return rides, nil
}

// Assign claims a requested ride for a driver. Returns false when another
// driver already claimed it; the conditional update is the only ordering
// between competing drivers.
func (r *rideRepository) Assign(ctx context.Context, rideID, driverID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("id = ? AND status = ?", rideID, model.RideStatusRequested).
		Updates(map[string]interface{}{
			"driver_id": driverID,
			"status":    model.RideStatusAccepted,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AverageRating computes the mean rating over a driver's rated rides.
// Returns nil when no ride has been rated yet.
func (r *rideRepository) AverageRating(ctx context.Context, driverID uuid.UUID) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.Ride{}).
		Select("AVG(rating)").
		Where("driver_id = ? AND rating IS NOT NULL", driverID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
