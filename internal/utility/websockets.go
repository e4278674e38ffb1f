package utility

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// RefreshMessage tells an open dashboard to reload its data.
const RefreshMessage = "REFRESH"

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow CORS for development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub holds the open dashboard connection of each patient.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// Register a new client connection, replacing any previous one.
func (h *Hub) Register(patientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[patientID]; ok && old != conn {
		old.Close()
	}
	h.clients[patientID] = conn
	log.Info().Str("patient_id", patientID).Msg("WebSocket Client Connected")
}

// Unregister a client (when they close the tab)
func (h *Hub) Unregister(patientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[patientID]; ok && current == conn {
		delete(h.clients, patientID)
		log.Info().Str("patient_id", patientID).Msg("WebSocket Client Disconnected")
	}
}

// Notify asks the patient's open dashboard to refresh.
func (h *Hub) Notify(patientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.clients[patientID]; ok {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(RefreshMessage)); err != nil {
			log.Error().Err(err).Str("patient_id", patientID).Msg("Failed to send WS message, removing client")
			conn.Close()
			delete(h.clients, patientID)
		}
	}
}

// Connected is the number of open dashboards.
func (h *Hub) Connected() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
