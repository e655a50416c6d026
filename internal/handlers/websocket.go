package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// writeWait bounds a single broadcast write; clients slower than this
// are dropped.
const writeWait = 5 * time.Second

// WSMessage is the envelope for every message sent to clients
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// JobStatusUpdate is the payload broadcast on every job transition
type JobStatusUpdate struct {
	JobID         string    `json:"job_id"`
	Status        string    `json:"status"`
	Query         string    `json:"query,omitempty"`
	ProfilesFound int       `json:"profiles_found,omitempty"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// WebSocketHandler streams job transitions to connected clients. Each
// connection gets its own write mutex; gorilla/websocket allows only
// one concurrent writer per connection.
type WebSocketHandler struct {
	logger      arbor.ILogger
	events      interfaces.EventService
	clients     map[*websocket.Conn]bool
	clientMutex map[*websocket.Conn]*sync.Mutex
	mu          sync.RWMutex
}

// NewWebSocketHandler creates the handler and subscribes it to the job
// event stream.
func NewWebSocketHandler(events interfaces.EventService, logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		logger:      logger,
		events:      events,
		clients:     make(map[*websocket.Conn]bool),
		clientMutex: make(map[*websocket.Conn]*sync.Mutex),
	}

	if events != nil {
		h.subscribeToJobEvents()
	}

	return h
}

// HandleWebSocket handles GET /ws: upgrades the connection and keeps it
// registered until the client goes away.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", total)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		remaining := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", remaining)
	}()

	// Read loop keeps the connection alive; clients do not send anything
	// we act on.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// subscribeToJobEvents forwards every job transition to connected clients
func (h *WebSocketHandler) subscribeToJobEvents() {
	jobEvents := []interfaces.EventType{
		interfaces.EventJobSubmitted,
		interfaces.EventJobStarted,
		interfaces.EventJobCompleted,
		interfaces.EventJobFailed,
	}

	for _, eventType := range jobEvents {
		h.events.Subscribe(eventType, func(ctx context.Context, event interfaces.Event) error {
			job, ok := event.Payload.(*models.LeadJob)
			if !ok {
				h.logger.Warn().Str("event", string(event.Type)).Msg("Invalid job event payload type")
				return nil
			}

			update := JobStatusUpdate{
				JobID:         job.ID,
				Status:        string(job.Status),
				Query:         job.OriginalQuery,
				ProfilesFound: job.ProfilesFound,
				Error:         job.ErrorMessage,
				Timestamp:     time.Now(),
			}

			h.broadcast(WSMessage{
				Type:    string(event.Type),
				Payload: update,
			})
			return nil
		})
	}
}

// broadcast sends one message to every connected client
func (h *WebSocketHandler) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	mutexes := make([]*sync.Mutex, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
		mutexes = append(mutexes, h.clientMutex[conn])
	}
	h.mu.RUnlock()

	for i, conn := range clients {
		mutex := mutexes[i]
		mutex.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteMessage(websocket.TextMessage, data)
		mutex.Unlock()

		if err != nil {
			h.logger.Warn().Err(err).Msg("Dropping unresponsive WebSocket client")
			h.mu.Lock()
			delete(h.clients, conn)
			delete(h.clientMutex, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}
