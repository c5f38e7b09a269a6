package repository

import (
	"context"

	"gorm.io/gorm"
)

// Tx bundles the repositories rebound to one database transaction.
type Tx struct {
	Users UserRepository
	Rides RideRepository
}

// TxManager runs a function with transaction-scoped repositories. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given database.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Tx{
			Users: NewUserRepository(tx),
			Rides: NewRideRepository(tx),
		})
	})
}
