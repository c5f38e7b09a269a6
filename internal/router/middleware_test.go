package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"maaziride/internal/auth"
	"maaziride/internal/handler"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestClaimsToContext(t *testing.T) {
	principalID := uuid.New().String()

	c := newTestContext(t)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		PrincipalID: principalID,
		Email:       "driver@example.com",
		Role:        "driver",
	}))

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	err := ClaimsToContext()(next)(c)
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, principalID, c.Get(handler.ContextPrincipalID))
	assert.Equal(t, "driver", c.Get(handler.ContextRole))

	got, err := handler.PrincipalID(c)
	assert.NoError(t, err)
	assert.Equal(t, principalID, got.String())
}

func TestClaimsToContext_MissingToken(t *testing.T) {
	c := newTestContext(t)

	err := ClaimsToContext()(func(c echo.Context) error { return nil })(c)

	var httpErr *echo.HTTPError
	if assert.ErrorAs(t, err, &httpErr) {
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}
