package events

import (
	"context"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// TestNewLoggerSubscriber verifies that the logger subscriber accepts
// job payloads and events without payloads
func TestNewLoggerSubscriber(t *testing.T) {
	logger := arbor.NewLogger()
	subscriber := NewLoggerSubscriber(logger)
	ctx := context.Background()

	event := interfaces.Event{
		Type: interfaces.EventJobCompleted,
		Payload: &models.LeadJob{
			ID:            "job-123",
			Status:        models.JobStatusCompleted,
			ProfilesFound: 12,
		},
	}
	if err := subscriber(ctx, event); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	bare := interfaces.Event{Type: interfaces.EventJobSubmitted}
	if err := subscriber(ctx, bare); err != nil {
		t.Errorf("Expected no error for event without payload, got: %v", err)
	}
}

func TestSubscribeLoggerToAllEvents(t *testing.T) {
	logger := arbor.NewLogger()
	service := NewService(logger)

	if err := SubscribeLoggerToAllEvents(service, logger); err != nil {
		t.Fatalf("Failed to subscribe logger: %v", err)
	}

	// Every lifecycle event type should now deliver without error
	job := &models.LeadJob{ID: "job-1", Status: models.JobStatusFailed, ErrorMessage: "LinkedIn login failed"}
	for _, eventType := range []interfaces.EventType{
		interfaces.EventJobSubmitted,
		interfaces.EventJobStarted,
		interfaces.EventJobCompleted,
		interfaces.EventJobFailed,
	} {
		if err := service.PublishSync(context.Background(), interfaces.Event{Type: eventType, Payload: job}); err != nil {
			t.Errorf("PublishSync(%s) returned error: %v", eventType, err)
		}
	}
}
