package events

import (
	"context"
	"strings"

	"rentacar-backend/internal/logger"
)

type logPublisher struct{}

// NewLogPublisher writes every event to the structured log.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event Event) {
	logger.Info("event published",
		"event_id", event.ID,
		"topics", strings.Join(event.Topics, "/"),
		"payload", event.Payload,
		"at", event.At,
	)
}
