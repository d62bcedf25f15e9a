package events

import (
	"context"
	"encoding/json"
	"time"

	"betsmith/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const EVENTS_CHANNEL = "betsmith:events"

type EventType string

const (
	REGENERATION_COMPLETE EventType = "regeneration_complete"
	PICK_UPDATED          EventType = "pick_updated"
)

// Event is a fire-and-forget notification published to valkey pub/sub for
// out-of-process consumers (websocket gateways, admin tooling).
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventBus struct {
	client valkey.Client
	config config.Config
	log    logger.Logger
}

func New(client valkey.Client, config config.Config) *EventBus {
	return &EventBus{
		client: client,
		config: config,
		log:    logger.New("EventBus"),
	}
}

// Publish sends an event on the shared channel. Publishing is best effort;
// callers treat failures as log-and-continue.
func (b *EventBus) Publish(ctx context.Context, eventType EventType, userID *uuid.UUID, data map[string]any) error {
	log := b.log.Function("Publish")

	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "type", eventType)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = b.client.Do(
		publishCtx,
		b.client.B().Publish().Channel(EVENTS_CHANNEL).Message(string(payload)).Build(),
	).Error()
	if err != nil {
		return log.Err("failed to publish event", err, "type", eventType)
	}

	return nil
}

func (b *EventBus) Close() error {
	// The shared valkey client is owned and closed by the database layer.
	return nil
}
