package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maaziride/internal/errors"
	"maaziride/internal/service"
)

// DriverHandler handles driver onboarding and verification status.
type DriverHandler struct {
	driverService service.DriverService
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(driverService service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// DocumentsRequest carries the three required document URLs returned by the
// file host after upload.
type DocumentsRequest struct {
	DrivingLicenseURL      string `json:"driving_license_url" validate:"required,url"`
	VehicleRegistrationURL string `json:"vehicle_registration_url" validate:"required,url"`
	InsuranceURL           string `json:"insurance_url" validate:"required,url"`
}

// VehicleRequest carries the vehicle attributes for onboarding.
type VehicleRequest struct {
	Make          string   `json:"make" validate:"required"`
	Model         string   `json:"model" validate:"required"`
	Year          int      `json:"year" validate:"required,gte=1980,lte=2030"`
	Color         string   `json:"color" validate:"required"`
	LicensePlate  string   `json:"license_plate" validate:"required"`
	VehicleImages []string `json:"vehicle_images" validate:"omitempty,dive,url"`
}

// PaymentRequest carries the driver's payment identifier.
type PaymentRequest struct {
	UpiID string `json:"upi_id" validate:"required"`
}

// VerificationStatusResponse is the shape served on /drivers/me/verification-status.
type VerificationStatusResponse struct {
	IsVerified       bool   `json:"isVerified"`
	HasDocuments     bool   `json:"hasDocuments"`
	HasVehicle       bool   `json:"hasVehicle"`
	CompletionStatus string `json:"completionStatus"`
}

// SubmitDocuments godoc
// @Summary Submit driver onboarding documents
// @Tags drivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DocumentsRequest true "Document URLs"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /drivers/me/documents [put]
func (h *DriverHandler) SubmitDocuments(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	var req DocumentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.driverService.SubmitDocuments(
		c.Request().Context(),
		principalID,
		req.DrivingLicenseURL,
		req.VehicleRegistrationURL,
		req.InsuranceURL,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpsertVehicle godoc
// @Summary Create or replace the driver's vehicle
// @Tags drivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VehicleRequest true "Vehicle"
// @Success 200 {object} model.Vehicle
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /drivers/me/vehicle [put]
func (h *DriverHandler) UpsertVehicle(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.driverService.UpsertVehicle(c.Request().Context(), principalID, service.VehicleInput{
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Color:         req.Color,
		LicensePlate:  req.LicensePlate,
		VehicleImages: req.VehicleImages,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, vehicle)
}

// UpdatePayment godoc
// @Summary Update the driver's payment identifier
// @Tags drivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment info"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /drivers/me/payment [put]
func (h *DriverHandler) UpdatePayment(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.driverService.UpdatePayment(c.Request().Context(), principalID, req.UpiID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// VerificationStatus godoc
// @Summary Get the driver's verification status
// @Tags drivers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} VerificationStatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /drivers/me/verification-status [get]
func (h *DriverHandler) VerificationStatus(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	report, err := h.driverService.VerificationStatus(c.Request().Context(), principalID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, VerificationStatusResponse{
		IsVerified:       report.Status.IsVerified,
		HasDocuments:     report.Status.HasDocuments,
		HasVehicle:       report.Status.HasVehicleInfo,
		CompletionStatus: string(report.CompletionStatus),
	})
}
