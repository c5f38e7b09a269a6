package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RideStatus represents the status of a ride.
type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride is a booking made by a rider and fulfilled by a verified driver.
type Ride struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	RiderID        uuid.UUID       `json:"rider_id" gorm:"type:char(36);not null;index"`
	DriverID       *uuid.UUID      `json:"driver_id,omitempty" gorm:"type:char(36);index"`
	PickupAddress  string          `json:"pickup_address" gorm:"size:512;not null"`
	DropoffAddress string          `json:"dropoff_address" gorm:"size:512;not null"`
	Fare           decimal.Decimal `json:"fare" gorm:"type:decimal(20,2);not null"`
	Status         RideStatus      `json:"status" gorm:"type:varchar(20);not null;default:'requested';index"`
	Rating         *int            `json:"rating,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Rider  User  `json:"-" gorm:"foreignKey:RiderID"`
	Driver *User `json:"-" gorm:"foreignKey:DriverID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Ride) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
