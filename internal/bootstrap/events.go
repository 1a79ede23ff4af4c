package bootstrap

import (
	"log/slog"

	"github.com/candystand/CandyBot_Go/internal/event"
	"github.com/candystand/CandyBot_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and wires the
// subscribers that listen for business events.
func InitializeEventSystem() event.Bus {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized)
	return bus
}
