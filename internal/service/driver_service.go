package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"maaziride/internal/cache"
	apperrors "maaziride/internal/errors"
	"maaziride/internal/model"
	"maaziride/internal/repository"
	"maaziride/internal/verification"
)

const statusCacheTTL = 30 * time.Second

// VehicleInput carries the vehicle attributes a driver submits during
// onboarding or a profile update.
type VehicleInput struct {
	Make          string
	Model         string
	Year          int
	Color         string
	LicensePlate  string
	VehicleImages []string
}

// StatusReport is the driver-facing view of the verification pipeline.
type StatusReport struct {
	Status           verification.Status `json:"status"`
	CompletionStatus verification.State  `json:"completion_status"`
}

// DriverService handles driver onboarding and verification status reads.
// None of its operations touch IsVerified: resubmitting onboarding data
// can never advance a driver to verified.
type DriverService interface {
	SubmitDocuments(ctx context.Context, driverID uuid.UUID, license, registration, insurance string) (*model.User, error)
	UpsertVehicle(ctx context.Context, driverID uuid.UUID, input VehicleInput) (*model.Vehicle, error)
	UpdatePayment(ctx context.Context, driverID uuid.UUID, upiID string) (*model.User, error)
	VerificationStatus(ctx context.Context, driverID uuid.UUID) (*StatusReport, error)
	DriverWithVehicle(ctx context.Context, driverID uuid.UUID) (*model.User, *model.Vehicle, error)
}

type driverService struct {
	users    repository.UserRepository
	vehicles repository.VehicleRepository
	cache    *cache.Client
}

// NewDriverService creates a new driver service.
func NewDriverService(users repository.UserRepository, vehicles repository.VehicleRepository, cache *cache.Client) DriverService {
	return &driverService{users: users, vehicles: vehicles, cache: cache}
}

func statusCacheKey(driverID uuid.UUID) string {
	return fmt.Sprintf("verification_status:%s", driverID)
}

// DriverWithVehicle loads the identity record and vehicle for a driver.
// The vehicle being absent is a valid state and comes back nil.
func (s *driverService) DriverWithVehicle(ctx context.Context, driverID uuid.UUID) (*model.User, *model.Vehicle, error) {
	user, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrIdentityNotFound
		}
		return nil, nil, fmt.Errorf("find driver: %w", err)
	}
	if user.Role != model.RoleDriver {
		return nil, nil, apperrors.ErrForbidden
	}

	vehicle, err := s.vehicles.FindByUserID(ctx, driverID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("find vehicle: %w", err)
	}
	return user, vehicle, nil
}

// SubmitDocuments stores the three required document URLs. Moving a driver
// out of OnboardingIncomplete happens here; admin review is still required
// before anything unlocks.
func (s *driverService) SubmitDocuments(ctx context.Context, driverID uuid.UUID, license, registration, insurance string) (*model.User, error) {
	user, _, err := s.DriverWithVehicle(ctx, driverID)
	if err != nil {
		return nil, err
	}

	user.DrivingLicenseURL = license
	user.VehicleRegistrationURL = registration
	user.InsuranceURL = insurance

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update documents: %w", err)
	}

	_ = s.cache.Delete(ctx, statusCacheKey(driverID))
	return user, nil
}

// UpsertVehicle creates or replaces the driver's vehicle record.
func (s *driverService) UpsertVehicle(ctx context.Context, driverID uuid.UUID, input VehicleInput) (*model.Vehicle, error) {
	if _, _, err := s.DriverWithVehicle(ctx, driverID); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{
		UserID:        driverID,
		Make:          input.Make,
		Model:         input.Model,
		Year:          input.Year,
		Color:         input.Color,
		LicensePlate:  input.LicensePlate,
		VehicleImages: input.VehicleImages,
	}

	if err := s.vehicles.Upsert(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("upsert vehicle: %w", err)
	}

	_ = s.cache.Delete(ctx, statusCacheKey(driverID))
	return vehicle, nil
}

// UpdatePayment stores the driver's UPI id.
func (s *driverService) UpdatePayment(ctx context.Context, driverID uuid.UUID, upiID string) (*model.User, error) {
	user, _, err := s.DriverWithVehicle(ctx, driverID)
	if err != nil {
		return nil, err
	}

	user.UpiID = upiID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return user, nil
}

// VerificationStatus derives the driver's verification status from the
// identity record, with a short cache in front of the two store reads.
func (s *driverService) VerificationStatus(ctx context.Context, driverID uuid.UUID) (*StatusReport, error) {
	if data, _ := s.cache.Get(ctx, statusCacheKey(driverID)); data != nil {
		var cached StatusReport
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, vehicle, err := s.DriverWithVehicle(ctx, driverID)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		Status:           verification.Evaluate(user, vehicle),
		CompletionStatus: verification.StateFor(user, vehicle),
	}

	if payload, err := json.Marshal(report); err == nil {
		_ = s.cache.Set(ctx, statusCacheKey(driverID), payload, statusCacheTTL)
	}
	return report, nil
}
