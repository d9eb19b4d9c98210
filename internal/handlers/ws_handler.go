package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set Authorization headers on WebSocket requests from
	// every context, so the JWT middleware already authenticated this request
	// and origin checking is delegated to the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated requests into hub connections
type WSHandler struct {
	hub *ws.Hub
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RegisterWSRoutes registers the WebSocket endpoint
func (h *WSHandler) RegisterWSRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect upgrades the request and pumps the connection until it closes
func (h *WSHandler) Connect(c echo.Context) error {
	userID := getUserIDFromContext(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("ws: upgrade for user %d failed: %v", userID, err)
		return err
	}

	client := h.hub.NewClient(userID, conn)
	client.Run()
	return nil
}
