package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventGroupCreated           = "group.created"
	EventGroupUpdated           = "group.updated"
	EventGroupDeactivated       = "group.deactivated"
	EventGroupMembershipChanged = "group.membership_changed"
	EventLabelCreated           = "label.created"
	EventLabelUpdated           = "label.updated"
	EventUserCreated            = "user.created"
	EventUserUpdated            = "user.updated"
	EventUserDeactivated        = "user.deactivated"
)

// Event is a lifecycle notification. Data must never hold secrets or hashes.
type Event struct {
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// EventPublisher delivers events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// publishEvent is best effort: a failed publish is logged and the request still succeeds.
func publishEvent(ctx context.Context, p EventPublisher, logger *logrus.Logger, ev Event) {
	if p == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, ev); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event":     ev.Type,
			"entity_id": ev.EntityID,
		}).Warn("publish event failed")
	}
}
