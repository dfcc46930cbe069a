package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/internal/application"
)

// DecodeEvent parses a queued event. The AMQP type property, when present,
// must agree with the payload.
func DecodeEvent(body []byte, messageType string) (application.Event, error) {
	var ev application.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		return ev, fmt.Errorf("decode event: missing type")
	}
	if messageType != "" && messageType != ev.Type {
		return ev, fmt.Errorf("decode event: type %q does not match payload %q", messageType, ev.Type)
	}
	return ev, nil
}

// EventLogger writes consumed events to the log. It is the only consumer
// today; other sinks can sit behind the same Handle signature.
type EventLogger struct {
	Logger *logrus.Logger
}

// Handle returns an error only for malformed messages, which should not be requeued.
func (h *EventLogger) Handle(body []byte, messageType string) error {
	ev, err := DecodeEvent(body, messageType)
	if err != nil {
		return err
	}
	fields := logrus.Fields{
		"event":       ev.Type,
		"entity_id":   ev.EntityID,
		"occurred_at": ev.OccurredAt,
	}
	for k, v := range ev.Data {
		fields["data."+k] = v
	}
	h.Logger.WithFields(fields).Info("event received")
	return nil
}
