package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"maaziride/internal/realtime"
)

// originAllowed accepts any origin when no allowed origin is configured
// (local development); otherwise the Origin header must match exactly.
func originAllowed(allowed, origin string) bool {
	if allowed == "" {
		return true
	}
	return origin == allowed
}

// WSHandler upgrades authenticated principals onto the realtime hub.
type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new websocket handler. allowedOrigin is the
// browser origin permitted to connect; empty allows all.
func NewWSHandler(hub *realtime.Hub, allowedOrigin string) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowedOrigin, r.Header.Get("Origin"))
			},
		},
	}
}

// Connect godoc
// @Summary Subscribe to realtime events
// @Tags realtime
// @Security BearerAuth
// @Success 101
// @Failure 401 {object} errors.ErrorResponse
// @Router /ws [get]
func (h *WSHandler) Connect(c echo.Context) error {
	principalID, err := PrincipalID(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}

	client := realtime.NewClient(h.hub, principalID.String(), conn)
	go client.ReadLoop()
	return nil
}
