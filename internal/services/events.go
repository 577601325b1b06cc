package services

import (
	"encoding/json"

	"vendorhub/pkg/logger"
)

const (
	EventCommitmentCreated = "commitment.created"
	EventLabelProcessed    = "label.processed"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent is best effort: a missing publisher or a broker failure is logged, never returned.
func publishEvent(pub EventPublisher, log *logger.Logger, routingKey string, payload interface{}) {
	if pub == nil {
		log.Debug("Event publisher not configured, skipping event", "event", routingKey)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn("Failed to marshal event", "event", routingKey, "error", err)
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		log.Warn("Failed to publish event", "event", routingKey, "error", err)
		return
	}
	log.Debug("Published event", "event", routingKey)
}
