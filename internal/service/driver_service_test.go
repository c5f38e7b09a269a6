package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "maaziride/internal/errors"
	"maaziride/internal/model"
	"maaziride/internal/verification"
)

func TestDriverService_SubmitDocuments(t *testing.T) {
	driverID := uuid.New()

	t.Run("stores documents without touching the verified flag", func(t *testing.T) {
		users := new(MockUserRepository)
		vehicles := new(MockVehicleRepository)

		users.On("FindByID", mock.Anything, driverID).
			Return(&model.User{ID: driverID, Role: model.RoleDriver}, nil)
		vehicles.On("FindByUserID", mock.Anything, driverID).Return(nil, gorm.ErrRecordNotFound)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.DrivingLicenseURL == "https://files.example/license.pdf" && !u.IsVerified
		})).Return(nil)

		svc := NewDriverService(users, vehicles, nil)
		user, err := svc.SubmitDocuments(context.Background(), driverID,
			"https://files.example/license.pdf",
			"https://files.example/registration.pdf",
			"https://files.example/insurance.pdf")

		assert.NoError(t, err)
		assert.False(t, user.IsVerified)
		users.AssertExpectations(t)
	})

	t.Run("resubmission still leaves the driver unverified", func(t *testing.T) {
		users := new(MockUserRepository)
		vehicles := new(MockVehicleRepository)

		driver := readyDriver(driverID)
		users.On("FindByID", mock.Anything, driverID).Return(driver, nil)
		vehicles.On("FindByUserID", mock.Anything, driverID).Return(driverVehicle(driverID), nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := NewDriverService(users, vehicles, nil)
		for i := 0; i < 3; i++ {
			user, err := svc.SubmitDocuments(context.Background(), driverID,
				"https://files.example/license.pdf",
				"https://files.example/registration.pdf",
				"https://files.example/insurance.pdf")
			assert.NoError(t, err)
			assert.False(t, user.IsVerified)
		}
	})

	t.Run("rider is forbidden", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, driverID).
			Return(&model.User{ID: driverID, Role: model.RoleRider}, nil)

		svc := NewDriverService(users, new(MockVehicleRepository), nil)
		_, err := svc.SubmitDocuments(context.Background(), driverID, "a", "b", "c")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unknown principal", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, driverID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewDriverService(users, new(MockVehicleRepository), nil)
		_, err := svc.SubmitDocuments(context.Background(), driverID, "a", "b", "c")

		assert.ErrorIs(t, err, apperrors.ErrIdentityNotFound)
	})
}

func TestDriverService_UpsertVehicle(t *testing.T) {
	driverID := uuid.New()

	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)

	users.On("FindByID", mock.Anything, driverID).
		Return(&model.User{ID: driverID, Role: model.RoleDriver}, nil)
	vehicles.On("FindByUserID", mock.Anything, driverID).Return(nil, gorm.ErrRecordNotFound)
	vehicles.On("Upsert", mock.Anything, mock.MatchedBy(func(v *model.Vehicle) bool {
		return v.UserID == driverID && v.LicensePlate == "KA-01-AB-1234"
	})).Return(nil)

	svc := NewDriverService(users, vehicles, nil)
	vehicle, err := svc.UpsertVehicle(context.Background(), driverID, VehicleInput{
		Make:         "Maruti",
		Model:        "Swift",
		Year:         2021,
		Color:        "white",
		LicensePlate: "KA-01-AB-1234",
	})

	assert.NoError(t, err)
	assert.True(t, vehicle.Complete())
	vehicles.AssertExpectations(t)
}

func TestDriverService_VerificationStatus(t *testing.T) {
	driverID := uuid.New()

	tests := []struct {
		name          string
		user          *model.User
		vehicle       *model.Vehicle
		vehicleErr    error
		expectedState verification.State
	}{
		{
			name:          "nothing submitted yet",
			user:          &model.User{ID: driverID, Role: model.RoleDriver},
			vehicleErr:    gorm.ErrRecordNotFound,
			expectedState: verification.StateOnboardingIncomplete,
		},
		{
			name:          "complete submission awaiting review",
			user:          readyDriver(driverID),
			vehicle:       driverVehicle(driverID),
			expectedState: verification.StatePendingAdminReview,
		},
		{
			name: "verified driver",
			user: func() *model.User {
				u := readyDriver(driverID)
				u.IsVerified = true
				return u
			}(),
			vehicle:       driverVehicle(driverID),
			expectedState: verification.StateVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			vehicles := new(MockVehicleRepository)

			users.On("FindByID", mock.Anything, driverID).Return(tt.user, nil)
			if tt.vehicleErr != nil {
				vehicles.On("FindByUserID", mock.Anything, driverID).Return(nil, tt.vehicleErr)
			} else {
				vehicles.On("FindByUserID", mock.Anything, driverID).Return(tt.vehicle, nil)
			}

			svc := NewDriverService(users, vehicles, nil)
			report, err := svc.VerificationStatus(context.Background(), driverID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedState, report.CompletionStatus)
			assert.Equal(t, tt.user.IsVerified, report.Status.IsVerified)
		})
	}
}
