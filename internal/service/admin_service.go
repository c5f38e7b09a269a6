package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"maaziride/internal/cache"
	apperrors "maaziride/internal/errors"
	"maaziride/internal/mirror"
	"maaziride/internal/model"
	"maaziride/internal/queue"
	"maaziride/internal/realtime"
	"maaziride/internal/repository"
	"maaziride/internal/verification"
)

// VerificationResult is the outcome of an admin verification action.
// MirrorSynced=false means the identity record was updated but the mirror
// write failed; a reconciliation task has been queued and the record stays
// authoritative for all gating.
type VerificationResult struct {
	User         *model.User `json:"user"`
	MirrorSynced bool        `json:"mirror_synced"`
}

// AdminService handles admin moderation of drivers. Callers are assumed to
// have passed the admin role middleware; no per-method role re-check.
type AdminService interface {
	SetVerified(ctx context.Context, driverID uuid.UUID, verified bool) (*VerificationResult, error)
	ListPendingDrivers(ctx context.Context) ([]model.User, error)
}

type adminService struct {
	users    repository.UserRepository
	vehicles repository.VehicleRepository
	mirror   mirror.Store
	tasks    queue.Publisher
	events   realtime.Publisher
	cache    *cache.Client
	log      *zap.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	mirrorStore mirror.Store,
	tasks queue.Publisher,
	events realtime.Publisher,
	cache *cache.Client,
	log *zap.Logger,
) AdminService {
	return &adminService{
		users:    users,
		vehicles: vehicles,
		mirror:   mirrorStore,
		tasks:    tasks,
		events:   events,
		cache:    cache,
		log:      log,
	}
}

// SetVerified flips a driver's verification flag. The identity record is
// written first and wins; the mirror update follows in the same request.
// Verifying a driver whose onboarding is incomplete is refused so the
// record never claims verified without the documents and vehicle behind it.
// Idempotent: repeating the call leaves the same final state.
func (s *adminService) SetVerified(ctx context.Context, driverID uuid.UUID, verified bool) (*VerificationResult, error) {
	user, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDriverNotFound
		}
		return nil, fmt.Errorf("find driver: %w", err)
	}
	if user.Role != model.RoleDriver {
		return nil, apperrors.ErrDriverNotFound
	}

	if verified {
		vehicle, err := s.vehicles.FindByUserID(ctx, driverID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find vehicle: %w", err)
		}
		if verification.Evaluate(user, vehicle).NeedsOnboarding {
			return nil, apperrors.ErrDriverNotReady
		}
	}

	user.IsVerified = verified
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	synced := syncMirror(ctx, s.log, s.mirror, s.tasks, user)

	_ = s.cache.Delete(ctx, statusCacheKey(driverID))

	// Fire-and-forget; delivery failure must not fail the action.
	if s.events != nil {
		s.events.Publish(driverID.String(), "verification.updated", map[string]interface{}{
			"verified": verified,
		})
	}

	return &VerificationResult{User: user, MirrorSynced: synced}, nil
}

// ListPendingDrivers returns drivers that finished onboarding and are
// waiting for admin sign-off.
func (s *adminService) ListPendingDrivers(ctx context.Context) ([]model.User, error) {
	drivers, err := s.users.ListUnverifiedDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unverified drivers: %w", err)
	}

	pending := make([]model.User, 0, len(drivers))
	for _, driver := range drivers {
		if !verification.Evaluate(&driver, driver.Vehicle).NeedsOnboarding {
			pending = append(pending, driver)
		}
	}
	return pending, nil
}
