// Package events announces state changes. Publishing is fire-and-forget:
// publishers never fail the operation that emitted the event and the
// engine never reads events back.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event names, first element of every topic tuple.
const (
	TopicContractInitialized = "contract_initialized"
	TopicCarAdded            = "car_added"
	TopicCarRemoved          = "car_removed"
	TopicRented              = "rented"
	TopicCarReturned         = "car_returned"
	TopicPayoutOwner         = "payout_owner"
	TopicPayoutAdmin         = "payout_admin"
)

// Event is a structured notification. Topics carries the event name
// followed by the principals involved; Payload holds the remaining data.
type Event struct {
	ID      string         `json:"id"`
	Topics  []string       `json:"topics"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// New builds an Event with a fresh ID and timestamp.
func New(topics []string, payload map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Topics:  topics,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type multiPublisher struct {
	publishers []Publisher
}

// Multi fans one event out to several publishers.
func Multi(publishers ...Publisher) Publisher {
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) Publish(ctx context.Context, event Event) {
	for _, p := range m.publishers {
		p.Publish(ctx, event)
	}
}
