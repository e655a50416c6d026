package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
	"github.com/ternarybob/indago/internal/services/events"
)

func dialTestWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, handler *WebSocketHandler, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if handler.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %d connected clients, got %d", want, handler.ClientCount())
}

func TestWebSocketBroadcastsJobEvents(t *testing.T) {
	eventService := events.NewService(arbor.NewLogger())
	defer eventService.Close()
	handler := NewWebSocketHandler(eventService, arbor.NewLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer server.Close()

	first := dialTestWebSocket(t, server)
	second := dialTestWebSocket(t, server)
	waitForClients(t, handler, 2)

	job := &models.LeadJob{
		ID:            "job_ws",
		OriginalQuery: "fintech CTOs",
		Status:        models.JobStatusCompleted,
		ProfilesFound: 7,
	}
	err := eventService.PublishSync(context.Background(), interfaces.Event{
		Type:    interfaces.EventJobCompleted,
		Payload: job,
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		var msg struct {
			Type    string          `json:"type"`
			Payload JobStatusUpdate `json:"payload"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Client %d failed to read message: %v", i, err)
		}
		if msg.Type != "job_completed" {
			t.Errorf("Client %d: expected job_completed, got %s", i, msg.Type)
		}
		if msg.Payload.JobID != "job_ws" {
			t.Errorf("Client %d: unexpected job id %s", i, msg.Payload.JobID)
		}
		if msg.Payload.Status != "completed" {
			t.Errorf("Client %d: unexpected status %s", i, msg.Payload.Status)
		}
		if msg.Payload.ProfilesFound != 7 {
			t.Errorf("Client %d: unexpected profile count %d", i, msg.Payload.ProfilesFound)
		}
	}
}

func TestWebSocketBroadcastsFailures(t *testing.T) {
	eventService := events.NewService(arbor.NewLogger())
	defer eventService.Close()
	handler := NewWebSocketHandler(eventService, arbor.NewLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer server.Close()

	conn := dialTestWebSocket(t, server)
	waitForClients(t, handler, 1)

	job := &models.LeadJob{
		ID:           "job_fail",
		Status:       models.JobStatusFailed,
		ErrorMessage: "LinkedIn login failed",
	}
	err := eventService.PublishSync(context.Background(), interfaces.Event{
		Type:    interfaces.EventJobFailed,
		Payload: job,
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload JobStatusUpdate `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	if msg.Type != "job_failed" {
		t.Errorf("Expected job_failed, got %s", msg.Type)
	}
	if msg.Payload.Error != "LinkedIn login failed" {
		t.Errorf("Unexpected error payload: %q", msg.Payload.Error)
	}
}

func TestWebSocketClientCleanup(t *testing.T) {
	eventService := events.NewService(arbor.NewLogger())
	defer eventService.Close()
	handler := NewWebSocketHandler(eventService, arbor.NewLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer server.Close()

	conn := dialTestWebSocket(t, server)
	waitForClients(t, handler, 1)

	conn.Close()
	waitForClients(t, handler, 0)
}

func TestWebSocketIgnoresUnknownPayloads(t *testing.T) {
	eventService := events.NewService(arbor.NewLogger())
	defer eventService.Close()
	handler := NewWebSocketHandler(eventService, arbor.NewLogger())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer server.Close()

	conn := dialTestWebSocket(t, server)
	waitForClients(t, handler, 1)

	// A payload that is not a job must not reach clients
	err := eventService.PublishSync(context.Background(), interfaces.Event{
		Type:    interfaces.EventJobStarted,
		Payload: "not a job",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err == nil {
		t.Errorf("Expected no message, got type %s", msg.Type)
	}
}
