package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"maaziride/internal/errors"
	"maaziride/internal/service"
)

// AdminHandler handles admin moderation endpoints. Role enforcement lives
// in the router middleware, not here.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SetVerifiedRequest is the body of the driver verification PATCH.
type SetVerifiedRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// SetVerified godoc
// @Summary Approve or reject a driver's verification
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Driver ID"
// @Param request body SetVerifiedRequest true "Verification flag"
// @Success 200 {object} service.VerificationResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/drivers/{id} [patch]
func (h *AdminHandler) SetVerified(c echo.Context) error {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid driver ID",
			Code:  "INVALID_UUID",
		})
	}

	var req SetVerifiedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.adminService.SetVerified(c.Request().Context(), driverID, *req.Verified)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// ListPendingDrivers godoc
// @Summary List drivers awaiting verification review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/drivers/pending [get]
func (h *AdminHandler) ListPendingDrivers(c echo.Context) error {
	drivers, err := h.adminService.ListPendingDrivers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, drivers)
}
