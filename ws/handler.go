package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler, HTTP upgrade isteklerini WebSocket bağlantısına çevirir.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler, constructor.
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin kontrolü CORS katmanında yapılır; WS upgrade'de
			// tüm origin'lere izin verilir — yayınlanan her şey zaten public.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection godoc
// GET /ws
// Bağlantıyı WebSocket'e upgrade eder ve client'ı hub'a kaydeder.
// Auth yok — feed anonim ve read-only'dir.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := newClient(h.hub, conn)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
