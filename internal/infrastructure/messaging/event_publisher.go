package messaging

import (
	"context"

	"github.com/oksasatya/data-labeling-backend/internal/application"
)

// JSONPublisher is satisfied by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, messageType string, body any) error
}

// EventPublisher sends lifecycle events to a queue as JSON.
type EventPublisher struct {
	pub JSONPublisher
}

func NewEventPublisher(pub JSONPublisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (p *EventPublisher) Publish(ctx context.Context, ev application.Event) error {
	return p.pub.PublishJSON(ctx, ev.Type, ev)
}

var _ application.EventPublisher = (*EventPublisher)(nil)
