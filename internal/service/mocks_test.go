package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"maaziride/internal/mirror"
	"maaziride/internal/model"
	"maaziride/internal/queue"
	"maaziride/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListUnverifiedDrivers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) IncrementRidesCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDriverRating(ctx context.Context, id uuid.UUID, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

// MockTxManager is a mock implementation of repository.TxManager. The
// transaction closure runs against the repositories in Tx so tests can
// tell tx-scoped writes from writes on the service's own repositories.
type MockTxManager struct {
	mock.Mock
	Tx repository.Tx
}

func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m.Tx)
}

// MockVehicleRepository is a mock implementation of repository.VehicleRepository.
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Upsert(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

// MockRideRepository is a mock implementation of repository.RideRepository.
type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) Create(ctx context.Context, ride *model.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) Update(ctx context.Context, ride *model.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ride), args.Error(1)
}

func (m *MockRideRepository) ListByRider(ctx context.Context, riderID uuid.UUID) ([]model.Ride, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ride), args.Error(1)
}

func (m *MockRideRepository) Assign(ctx context.Context, rideID, driverID uuid.UUID) (bool, error) {
	args := m.Called(ctx, rideID, driverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRideRepository) AverageRating(ctx context.Context, driverID uuid.UUID) (*float64, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

// MockMirrorStore is a mock implementation of mirror.Store.
type MockMirrorStore struct {
	mock.Mock
}

func (m *MockMirrorStore) GetMetadata(ctx context.Context, principalID string) (*mirror.Metadata, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mirror.Metadata), args.Error(1)
}

func (m *MockMirrorStore) SetMetadata(ctx context.Context, principalID string, md mirror.Metadata) error {
	args := m.Called(ctx, principalID, md)
	return args.Error(0)
}

// MockTaskPublisher is a mock implementation of queue.Publisher.
type MockTaskPublisher struct {
	mock.Mock
}

func (m *MockTaskPublisher) PublishMirrorSync(ctx context.Context, task queue.MirrorSyncTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of realtime.Publisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(principalID, event string, payload interface{}) {
	m.Called(principalID, event, payload)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, principalID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, principalID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
