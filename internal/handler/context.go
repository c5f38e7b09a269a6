package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the auth middleware.
const (
	ContextPrincipalID = "principal_id"
	ContextRole        = "role"
)

// PrincipalID returns the authenticated principal's id from the request
// context, or a 401 when the middleware did not set one.
func PrincipalID(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ContextPrincipalID).(string)
	if !ok || raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid principal id")
	}
	return id, nil
}
