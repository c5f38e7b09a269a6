package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "maaziride/internal/errors"
	"maaziride/internal/model"
	"maaziride/internal/realtime"
	"maaziride/internal/repository"
	"maaziride/internal/verification"
)

// RideService handles the booking flow: riders request, verified drivers
// accept and complete, riders rate.
type RideService interface {
	RequestRide(ctx context.Context, riderID uuid.UUID, pickup, dropoff string, fare decimal.Decimal) (*model.Ride, error)
	AcceptRide(ctx context.Context, driverID, rideID uuid.UUID) (*model.Ride, error)
	CompleteRide(ctx context.Context, driverID, rideID uuid.UUID) (*model.Ride, error)
	RateRide(ctx context.Context, riderID, rideID uuid.UUID, rating int) (*model.Ride, error)
	ListRiderRides(ctx context.Context, riderID uuid.UUID) ([]model.Ride, error)
}

type rideService struct {
	rides    repository.RideRepository
	users    repository.UserRepository
	vehicles repository.VehicleRepository
	tx       repository.TxManager
	events   realtime.Publisher
}

// NewRideService creates a new ride service.
func NewRideService(
	rides repository.RideRepository,
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	tx repository.TxManager,
	events realtime.Publisher,
) RideService {
	return &rideService{rides: rides, users: users, vehicles: vehicles, tx: tx, events: events}
}

func (s *rideService) findUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// RequestRide books a ride for a rider.
func (s *rideService) RequestRide(ctx context.Context, riderID uuid.UUID, pickup, dropoff string, fare decimal.Decimal) (*model.Ride, error) {
	rider, err := s.findUser(ctx, riderID)
	if err != nil {
		return nil, err
	}
	if rider.Role != model.RoleRider {
		return nil, apperrors.ErrForbidden
	}
	if fare.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidFare
	}

	ride := &model.Ride{
		RiderID:        riderID,
		PickupAddress:  pickup,
		DropoffAddress: dropoff,
		Fare:           fare,
		Status:         model.RideStatusRequested,
	}
	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}
	return ride, nil
}

// AcceptRide claims a requested ride for a verified driver. The driver's
// state is recomputed from the identity record here as well; the route
// guard alone is not trusted with the invariant.
func (s *rideService) AcceptRide(ctx context.Context, driverID, rideID uuid.UUID) (*model.Ride, error) {
	driver, err := s.findUser(ctx, driverID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.FindByUserID(ctx, driverID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if verification.StateFor(driver, vehicle) != verification.StateVerified {
		return nil, apperrors.ErrDriverNotVerified
	}

	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, fmt.Errorf("find ride: %w", err)
	}

	claimed, err := s.rides.Assign(ctx, rideID, driverID)
	if err != nil {
		return nil, fmt.Errorf("assign ride: %w", err)
	}
	if !claimed {
		return nil, apperrors.ErrRideUnavailable
	}

	ride.DriverID = &driverID
	ride.Status = model.RideStatusAccepted

	if s.events != nil {
		s.events.Publish(ride.RiderID.String(), "ride.accepted", map[string]interface{}{
			"ride_id":   ride.ID,
			"driver_id": driverID,
		})
	}
	return ride, nil
}

// CompleteRide finishes an accepted ride and bumps the driver's completed
// ride counter in the same transaction as the status change.
func (s *rideService) CompleteRide(ctx context.Context, driverID, rideID uuid.UUID) (*model.Ride, error) {
	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, fmt.Errorf("find ride: %w", err)
	}
	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, apperrors.ErrForbidden
	}
	if ride.Status != model.RideStatusAccepted {
		return nil, apperrors.ErrRideUnavailable
	}

	ride.Status = model.RideStatusCompleted
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.Rides.Update(ctx, ride); err != nil {
			return fmt.Errorf("update ride: %w", err)
		}
		return tx.Users.IncrementRidesCompleted(ctx, driverID)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(ride.RiderID.String(), "ride.completed", map[string]interface{}{
			"ride_id": ride.ID,
		})
	}
	return ride, nil
}

// RateRide records a rider's rating for a completed ride and refreshes the
// driver's running average.
func (s *rideService) RateRide(ctx context.Context, riderID, rideID uuid.UUID, rating int) (*model.Ride, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, fmt.Errorf("find ride: %w", err)
	}
	if ride.RiderID != riderID {
		return nil, apperrors.ErrForbidden
	}
	if ride.Status != model.RideStatusCompleted || ride.DriverID == nil {
		return nil, apperrors.ErrRideUnavailable
	}

	ride.Rating = &rating
	if err := s.rides.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("update ride: %w", err)
	}

	avg, err := s.rides.AverageRating(ctx, *ride.DriverID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if avg != nil {
		if err := s.users.UpdateDriverRating(ctx, *ride.DriverID, *avg); err != nil {
			return nil, fmt.Errorf("update driver rating: %w", err)
		}
	}
	return ride, nil
}

// ListRiderRides returns a rider's ride history, newest first.
func (s *rideService) ListRiderRides(ctx context.Context, riderID uuid.UUID) ([]model.Ride, error) {
	rides, err := s.rides.ListByRider(ctx, riderID)
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	return rides, nil
}
