package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle belongs to exactly one driver. Its absence is a valid state: the
// driver has not yet submitted vehicle info.
type Vehicle struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	Make          string    `json:"make" gorm:"size:100"`
	Model         string    `json:"model" gorm:"size:100"`
	Year          int       `json:"year"`
	Color         string    `json:"color" gorm:"size:50"`
	LicensePlate  string    `json:"license_plate" gorm:"size:20;uniqueIndex"`
	VehicleImages []string  `json:"vehicle_images,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Complete reports whether all required vehicle fields are present.
func (v *Vehicle) Complete() bool {
	return v != nil &&
		v.Make != "" &&
		v.Model != "" &&
		v.Year != 0 &&
		v.Color != "" &&
		v.LicensePlate != ""
}
