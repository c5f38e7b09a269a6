package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"maaziride/internal/auth"
	"maaziride/internal/config"
	"maaziride/internal/handler"
	"maaziride/internal/model"
	"maaziride/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	authHandler *handler.AuthHandler,
	driverHandler *handler.DriverHandler,
	adminHandler *handler.AdminHandler,
	rideHandler *handler.RideHandler,
	wsHandler *handler.WSHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), ClaimsToContext())

	secured.POST("/auth/role", authHandler.SelectRole)
	secured.GET("/ws", wsHandler.Connect)

	// Driver onboarding. Reachable by any driver; verification is what
	// these routes produce, so they must not require it.
	drivers := secured.Group("/drivers/me", RequireRole(users, model.RoleDriver))
	drivers.PUT("/documents", driverHandler.SubmitDocuments)
	drivers.PUT("/vehicle", driverHandler.UpsertVehicle)
	drivers.PUT("/payment", driverHandler.UpdatePayment)
	drivers.GET("/verification-status", driverHandler.VerificationStatus)

	// Admin moderation, one reusable role check for every admin action.
	admin := secured.Group("/admin", RequireRole(users, model.RoleAdmin))
	admin.GET("/drivers/pending", adminHandler.ListPendingDrivers)
	admin.PATCH("/drivers/:id", adminHandler.SetVerified)

	// Rides. Booking is for riders; fulfillment is driver-protected and
	// requires a verified driver, enforced by the gatekeeper.
	secured.POST("/rides", rideHandler.RequestRide, RequireRole(users, model.RoleRider))
	secured.GET("/rides", rideHandler.ListMyRides, RequireRole(users, model.RoleRider))
	secured.POST("/rides/:id/accept", rideHandler.AcceptRide, Gatekeeper(users, vehicles, true))
	secured.POST("/rides/:id/complete", rideHandler.CompleteRide, Gatekeeper(users, vehicles, true))
	secured.POST("/rides/:id/rate", rideHandler.RateRide, RequireRole(users, model.RoleRider))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
