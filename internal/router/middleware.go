package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"maaziride/internal/auth"
	"maaziride/internal/errors"
	"maaziride/internal/handler"
	"maaziride/internal/model"
	"maaziride/internal/repository"
	"maaziride/internal/verification"
)

// ClaimsToContext copies the JWT claims parsed by echo-jwt into plain
// context keys the handlers read.
func ClaimsToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			c.Set(handler.ContextPrincipalID, claims.PrincipalID)
			c.Set(handler.ContextRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole is the one reusable authorization check for role-gated
// routes. The role is read from the identity record, not from the token or
// the mirror: the record is authoritative.
func RequireRole(users repository.UserRepository, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principalID, err := handler.PrincipalID(c)
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), principalID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
						Error: "forbidden",
						Code:  "FORBIDDEN",
					})
				}
				// fail closed on store errors
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "could not verify identity",
					Code:  "UNAUTHENTICATED",
				})
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "forbidden",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// Gatekeeper guards driver-protected resources. It computes the onboarding
// state from the identity record on every request and turns the decision
// into a response; the decision itself stays a value so it can be tested
// without HTTP. Any record read error fails closed as unauthenticated.
func Gatekeeper(users repository.UserRepository, vehicles repository.VehicleRepository, requiresVerified bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principalID, err := handler.PrincipalID(c)
			if err != nil {
				return err
			}
			ctx := c.Request().Context()

			var user *model.User
			if u, err := users.FindByID(ctx, principalID); err == nil {
				user = u
			} else if err != gorm.ErrRecordNotFound {
				// store unreachable: fail closed
				decision := verification.Decide(verification.StateUnauthenticated, requiresVerified)
				return c.JSON(http.StatusUnauthorized, decision)
			}

			var vehicle *model.Vehicle
			if user != nil {
				if v, err := vehicles.FindByUserID(ctx, principalID); err == nil {
					vehicle = v
				} else if err != gorm.ErrRecordNotFound {
					decision := verification.Decide(verification.StateUnauthenticated, requiresVerified)
					return c.JSON(http.StatusUnauthorized, decision)
				}
			}

			state := verification.StateFor(user, vehicle)
			decision := verification.Decide(state, requiresVerified)
			if !decision.Allow {
				status := http.StatusForbidden
				if state == verification.StateUnauthenticated {
					status = http.StatusUnauthorized
				}
				return c.JSON(status, decision)
			}
			return next(c)
		}
	}
}
