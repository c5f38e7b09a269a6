package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "maaziride/internal/errors"
	"maaziride/internal/model"
	"maaziride/internal/repository"
)

func TestRideService_AcceptRide(t *testing.T) {
	driverID := uuid.New()
	riderID := uuid.New()
	rideID := uuid.New()

	requestedRide := func() *model.Ride {
		return &model.Ride{
			ID:      rideID,
			RiderID: riderID,
			Status:  model.RideStatusRequested,
			Fare:    decimal.NewFromInt(120),
		}
	}

	t.Run("verified driver claims the ride", func(t *testing.T) {
		users := new(MockUserRepository)
		vehicles := new(MockVehicleRepository)
		rides := new(MockRideRepository)
		events := new(MockEventPublisher)

		driver := readyDriver(driverID)
		driver.IsVerified = true
		users.On("FindByID", mock.Anything, driverID).Return(driver, nil)
		vehicles.On("FindByUserID", mock.Anything, driverID).Return(driverVehicle(driverID), nil)
		rides.On("FindByID", mock.Anything, rideID).Return(requestedRide(), nil)
		rides.On("Assign", mock.Anything, rideID, driverID).Return(true, nil)
		events.On("Publish", riderID.String(), "ride.accepted", mock.Anything).Return()

		svc := NewRideService(rides, users, vehicles, nil, events)
		ride, err := svc.AcceptRide(context.Background(), driverID, rideID)

		assert.NoError(t, err)
		assert.Equal(t, model.RideStatusAccepted, ride.Status)
		assert.Equal(t, driverID, *ride.DriverID)
		events.AssertExpectations(t)
	})

	t.Run("pending-review driver is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		vehicles := new(MockVehicleRepository)
		rides := new(MockRideRepository)

		users.On("FindByID", mock.Anything, driverID).Return(readyDriver(driverID), nil)
		vehicles.On("FindByUserID", mock.Anything, driverID).Return(driverVehicle(driverID), nil)

		svc := NewRideService(rides, users, vehicles, nil, nil)
		_, err := svc.AcceptRide(context.Background(), driverID, rideID)

		assert.ErrorIs(t, err, apperrors.ErrDriverNotVerified)
		rides.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already-claimed ride is unavailable", func(t *testing.T) {
		users := new(MockUserRepository)
		vehicles := new(MockVehicleRepository)
		rides := new(MockRideRepository)

		driver := readyDriver(driverID)
		driver.IsVerified = true
		users.On("FindByID", mock.Anything, driverID).Return(driver, nil)
		vehicles.On("FindByUserID", mock.Anything, driverID).Return(driverVehicle(driverID), nil)
		rides.On("FindByID", mock.Anything, rideID).Return(requestedRide(), nil)
		rides.On("Assign", mock.Anything, rideID, driverID).Return(false, nil)

		svc := NewRideService(rides, users, vehicles, nil, nil)
		_, err := svc.AcceptRide(context.Background(), driverID, rideID)

		assert.ErrorIs(t, err, apperrors.ErrRideUnavailable)
	})
}

func TestRideService_RequestRide(t *testing.T) {
	riderID := uuid.New()

	t.Run("rider books a ride", func(t *testing.T) {
		users := new(MockUserRepository)
		rides := new(MockRideRepository)

		users.On("FindByID", mock.Anything, riderID).
			Return(&model.User{ID: riderID, Role: model.RoleRider}, nil)
		rides.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Ride) bool {
			return r.RiderID == riderID && r.Status == model.RideStatusRequested
		})).Return(nil)

		svc := NewRideService(rides, users, new(MockVehicleRepository), nil, nil)
		ride, err := svc.RequestRide(context.Background(), riderID, "MG Road", "Airport", decimal.NewFromInt(450))

		assert.NoError(t, err)
		assert.Equal(t, model.RideStatusRequested, ride.Status)
	})

	t.Run("driver cannot book as a rider", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, riderID).
			Return(&model.User{ID: riderID, Role: model.RoleDriver}, nil)

		svc := NewRideService(new(MockRideRepository), users, new(MockVehicleRepository), nil, nil)
		_, err := svc.RequestRide(context.Background(), riderID, "MG Road", "Airport", decimal.NewFromInt(450))

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("non-positive fare is a client error", func(t *testing.T) {
		users := new(MockUserRepository)
		rides := new(MockRideRepository)
		users.On("FindByID", mock.Anything, riderID).
			Return(&model.User{ID: riderID, Role: model.RoleRider}, nil)

		svc := NewRideService(rides, users, new(MockVehicleRepository), nil, nil)

		_, err := svc.RequestRide(context.Background(), riderID, "MG Road", "Airport", decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFare)

		_, err = svc.RequestRide(context.Background(), riderID, "MG Road", "Airport", decimal.NewFromInt(-10))
		assert.ErrorIs(t, err, apperrors.ErrInvalidFare)

		rides.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRideService_CompleteRide(t *testing.T) {
	driverID := uuid.New()
	riderID := uuid.New()
	rideID := uuid.New()

	acceptedRide := func() *model.Ride {
		return &model.Ride{
			ID:       rideID,
			RiderID:  riderID,
			DriverID: &driverID,
			Status:   model.RideStatusAccepted,
		}
	}

	t.Run("completes and bumps the counter in one transaction", func(t *testing.T) {
		rides := new(MockRideRepository)
		txUsers := new(MockUserRepository)
		txRides := new(MockRideRepository)
		events := new(MockEventPublisher)

		rides.On("FindByID", mock.Anything, rideID).Return(acceptedRide(), nil)
		txRides.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Ride) bool {
			return r.Status == model.RideStatusCompleted
		})).Return(nil)
		txUsers.On("IncrementRidesCompleted", mock.Anything, driverID).Return(nil)
		events.On("Publish", riderID.String(), "ride.completed", mock.Anything).Return()

		tx := &MockTxManager{Tx: repository.Tx{Users: txUsers, Rides: txRides}}
		tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

		svc := NewRideService(rides, new(MockUserRepository), new(MockVehicleRepository), tx, events)
		ride, err := svc.CompleteRide(context.Background(), driverID, rideID)

		assert.NoError(t, err)
		assert.Equal(t, model.RideStatusCompleted, ride.Status)
		txRides.AssertExpectations(t)
		txUsers.AssertExpectations(t)
		// The status write goes through the transaction, not the
		// service's own repository.
		rides.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("counter failure rolls the status write back with it", func(t *testing.T) {
		rides := new(MockRideRepository)
		txUsers := new(MockUserRepository)
		txRides := new(MockRideRepository)

		rides.On("FindByID", mock.Anything, rideID).Return(acceptedRide(), nil)
		txRides.On("Update", mock.Anything, mock.Anything).Return(nil)
		txUsers.On("IncrementRidesCompleted", mock.Anything, driverID).Return(assert.AnError)

		tx := &MockTxManager{Tx: repository.Tx{Users: txUsers, Rides: txRides}}
		tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

		svc := NewRideService(rides, new(MockUserRepository), new(MockVehicleRepository), tx, nil)
		_, err := svc.CompleteRide(context.Background(), driverID, rideID)

		assert.Error(t, err)
		// No write ever touches the non-transactional repository, so the
		// rollback covers both the status change and the counter.
		rides.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("only the assigned driver may complete", func(t *testing.T) {
		rides := new(MockRideRepository)
		otherDriver := uuid.New()
		rides.On("FindByID", mock.Anything, rideID).Return(&model.Ride{
			ID:       rideID,
			RiderID:  riderID,
			DriverID: &otherDriver,
			Status:   model.RideStatusAccepted,
		}, nil)

		svc := NewRideService(rides, new(MockUserRepository), new(MockVehicleRepository), nil, nil)
		_, err := svc.CompleteRide(context.Background(), driverID, rideID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestRideService_RateRide(t *testing.T) {
	driverID := uuid.New()
	riderID := uuid.New()
	rideID := uuid.New()

	completedRide := func() *model.Ride {
		return &model.Ride{
			ID:       rideID,
			RiderID:  riderID,
			DriverID: &driverID,
			Status:   model.RideStatusCompleted,
		}
	}

	t.Run("records rating and refreshes the average", func(t *testing.T) {
		users := new(MockUserRepository)
		rides := new(MockRideRepository)

		avg := 4.5
		rides.On("FindByID", mock.Anything, rideID).Return(completedRide(), nil)
		rides.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Ride) bool {
			return r.Rating != nil && *r.Rating == 5
		})).Return(nil)
		rides.On("AverageRating", mock.Anything, driverID).Return(&avg, nil)
		users.On("UpdateDriverRating", mock.Anything, driverID, 4.5).Return(nil)

		svc := NewRideService(rides, users, new(MockVehicleRepository), nil, nil)
		ride, err := svc.RateRide(context.Background(), riderID, rideID, 5)

		assert.NoError(t, err)
		assert.Equal(t, 5, *ride.Rating)
		users.AssertExpectations(t)
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		svc := NewRideService(new(MockRideRepository), new(MockUserRepository), new(MockVehicleRepository), nil, nil)

		_, err := svc.RateRide(context.Background(), riderID, rideID, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating)

		_, err = svc.RateRide(context.Background(), riderID, rideID, 6)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
	})

	t.Run("only the ride's rider may rate", func(t *testing.T) {
		rides := new(MockRideRepository)
		rides.On("FindByID", mock.Anything, rideID).Return(completedRide(), nil)

		svc := NewRideService(rides, new(MockUserRepository), new(MockVehicleRepository), nil, nil)
		_, err := svc.RateRide(context.Background(), uuid.New(), rideID, 4)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
