package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the account role of a user. It is authoritative on the User row
// and mirrored to the external identity provider after every transition.
type Role string

const (
	RoleUnset  Role = "unset"
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one a principal may select.
// Admin accounts are only created by seeding or by another admin.
func (r Role) Valid() bool {
	return r == RoleRider || r == RoleDriver
}

// User is the identity record for a principal. Its id equals the principal
// id issued by the external auth provider. Role and IsVerified are the
// authoritative copies of the mirrored metadata.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'unset';index"`

	// Driver verification. IsVerified is only meaningful for role=driver and
	// may only be set by an admin action.
	IsVerified             bool   `json:"is_verified" gorm:"default:false;index"`
	DrivingLicenseURL      string `json:"driving_license_url,omitempty" gorm:"size:512"`
	VehicleRegistrationURL string `json:"vehicle_registration_url,omitempty" gorm:"size:512"`
	InsuranceURL           string `json:"insurance_url,omitempty" gorm:"size:512"`

	UpiID          string   `json:"upi_id,omitempty" gorm:"size:255"`
	RidesCompleted int      `json:"rides_completed" gorm:"not null;default:0"`
	DriverRating   *float64 `json:"driver_rating,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
