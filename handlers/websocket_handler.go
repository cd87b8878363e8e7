package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/matchday/roster-system/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API already allows any origin over CORS; the socket follows
		// suit. Tighten both together when a fixed frontend origin exists.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs upgrades the connection and attaches it to the hub so the client
// receives change events instead of polling.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		log.Printf("failed to upgrade websocket connection: %v", err)
		return
	}

	live.ServeClient(h.hub, conn)
}
