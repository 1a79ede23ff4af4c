package metrics

import (
	"context"
	"strconv"

	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.CandyGranted,
		event.GachaDrawn,
		event.GachaJackpot,
		event.ExchangeCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.CandyGrantedPayloadV1:
		CandyGranted.WithLabelValues(payload.Tier).Add(float64(payload.Count))

	case event.GachaDrawnPayloadV1:
		switch evt.Type {
		case event.GachaDrawn:
			DrawsPerformed.WithLabelValues(payload.ItemTier).Inc()
			CandyConsumed.Inc()
			if payload.PityTriggered {
				PityTriggered.Inc()
			}
		case event.GachaJackpot:
			JackpotsWon.Inc()
		}

	case event.ExchangeCompletedPayloadV1:
		item := strconv.Itoa(payload.ItemID)
		ExchangesCompleted.WithLabelValues(item).Inc()
		ItemsExchanged.WithLabelValues(item).Add(float64(payload.Amount))

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
