package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"maaziride/internal/errors"
	"maaziride/internal/service"
)

// RideHandler handles the ride booking flow.
type RideHandler struct {
	rideService service.RideService
}

// NewRideHandler creates a new ride handler.
func NewRideHandler(rideService service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// RequestRideRequest is the body of a ride booking.
type RequestRideRequest struct {
	PickupAddress  string `json:"pickup_address" validate:"required"`
	DropoffAddress string `json:"dropoff_address" validate:"required"`
	Fare           string `json:"fare" validate:"required"`
}

// RateRideRequest is the body of a ride rating.
type RateRideRequest struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

// RequestRide godoc
// @Summary Book a ride
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RequestRideRequest true "Ride details"
// @Success 201 {object} model.Ride
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /rides [post]
func (h *RideHandler) RequestRide(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	var req RequestRideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fare, err := decimal.NewFromString(req.Fare)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid fare",
			Code:  "INVALID_FARE",
		})
	}

	ride, err := h.rideService.RequestRide(c.Request().Context(), principalID, req.PickupAddress, req.DropoffAddress, fare)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, ride)
}

// AcceptRide godoc
// @Summary Accept a requested ride (verified drivers only)
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ride ID"
// @Success 200 {object} model.Ride
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rides/{id}/accept [post]
func (h *RideHandler) AcceptRide(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid ride ID",
			Code:  "INVALID_UUID",
		})
	}

	ride, err := h.rideService.AcceptRide(c.Request().Context(), principalID, rideID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ride)
}

// CompleteRide godoc
// @Summary Complete an accepted ride
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ride ID"
// @Success 200 {object} model.Ride
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rides/{id}/complete [post]
func (h *RideHandler) CompleteRide(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid ride ID",
			Code:  "INVALID_UUID",
		})
	}

	ride, err := h.rideService.CompleteRide(c.Request().Context(), principalID, rideID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ride)
}

// RateRide godoc
// @Summary Rate a completed ride
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ride ID"
// @Param request body RateRideRequest true "Rating"
// @Success 200 {object} model.Ride
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id}/rate [post]
func (h *RideHandler) RateRide(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid ride ID",
			Code:  "INVALID_UUID",
		})
	}

	var req RateRideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ride, err := h.rideService.RateRide(c.Request().Context(), principalID, rideID, req.Rating)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ride)
}

// ListMyRides godoc
// @Summary List the rider's rides
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Ride
// @Failure 401 {object} errors.ErrorResponse
// @Router /rides [get]
func (h *RideHandler) ListMyRides(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	rides, err := h.rideService.ListRiderRides(c.Request().Context(), principalID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rides)
}
