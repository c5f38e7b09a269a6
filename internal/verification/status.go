package verification

import "maaziride/internal/model"

// Status is the derived verification status of a driver. It is never
// stored; it is recomputed from the identity record and vehicle on demand.
type Status struct {
	HasDocuments      bool `json:"has_documents"`
	HasVehicleInfo    bool `json:"has_vehicle_info"`
	NeedsOnboarding   bool `json:"needs_onboarding"`
	NeedsVerification bool `json:"needs_verification"`
	IsVerified        bool `json:"is_verified"`
}

// Evaluate derives the verification status from a user and their vehicle.
// It is pure and deterministic, and is the single place where "is this
// driver ready" is computed. IsVerified passes through from the identity
// record; only an admin action may set it.
func Evaluate(user *model.User, vehicle *model.Vehicle) Status {
	hasDocuments := user != nil &&
		user.DrivingLicenseURL != "" &&
		user.VehicleRegistrationURL != "" &&
		user.InsuranceURL != ""

	hasVehicleInfo := vehicle.Complete()

	isVerified := user != nil && user.IsVerified

	return Status{
		HasDocuments:      hasDocuments,
		HasVehicleInfo:    hasVehicleInfo,
		NeedsOnboarding:   !hasDocuments || !hasVehicleInfo,
		NeedsVerification: hasDocuments && hasVehicleInfo && !isVerified,
		IsVerified:        isVerified,
	}
}
