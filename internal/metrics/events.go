package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
	"github.com/osse101/DegenBox_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all lifecycle and ledger events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.BoxCreated,
		event.BoxCommitted,
		event.BoxRevealed,
		event.BoxSettled,
		event.BoxRefunded,
		event.VaultWithdrawn,
		event.TreasuryWithdrawn,
		event.RandomnessPending,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics. Payloads are decoded by
// event type so replayed dead-letter entries count the same as live ones.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.BoxCreated:
		var p domain.BoxCreatedPayload
		if p, err = event.DecodePayload[domain.BoxCreatedPayload](evt.Payload); err == nil {
			BoxesCreated.Inc()
			SalesVolume.Add(float64(p.Price))
			CommissionCollected.Add(float64(p.Commission))
		}
	case event.BoxRevealed:
		var p domain.BoxRevealedPayload
		if p, err = event.DecodePayload[domain.BoxRevealedPayload](evt.Payload); err == nil {
			BoxesRevealed.WithLabelValues(string(p.Tier), strconv.FormatBool(p.Expired)).Inc()
		}
	case event.BoxSettled, event.BoxRefunded:
		var p domain.BoxSettledPayload
		if p, err = event.DecodePayload[domain.BoxSettledPayload](evt.Payload); err == nil {
			BoxesClosed.WithLabelValues(string(p.Tier)).Inc()
			PaidOut.WithLabelValues(string(p.Tier)).Add(float64(p.Amount))
		}
	case event.RandomnessPending:
		RandomnessNotReady.Inc()
	case event.VaultWithdrawn, event.TreasuryWithdrawn:
		var p domain.WithdrawalPayload
		if p, err = event.DecodePayload[domain.WithdrawalPayload](evt.Payload); err == nil {
			source := SourceVault
			if evt.Type == event.TreasuryWithdrawn {
				source = SourceTreasury
			}
			Withdrawn.WithLabelValues(source).Add(float64(p.Amount))
		}
	}

	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
	}
	return nil
}
