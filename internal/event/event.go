package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/DegenBox_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string         `json:"version"`
	Type     Type           `json:"type"`
	Payload  any            `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Lifecycle and ledger event types
const (
	BoxCreated        Type = domain.EventTypeBoxCreated
	BoxCommitted      Type = domain.EventTypeBoxCommitted
	BoxRevealed       Type = domain.EventTypeBoxRevealed
	BoxSettled        Type = domain.EventTypeBoxSettled
	BoxRefunded       Type = domain.EventTypeBoxRefunded
	VaultWithdrawn    Type = domain.EventTypeVaultWithdrawn
	TreasuryWithdrawn Type = domain.EventTypeTreasuryWithdrawn
	RandomnessPending Type = domain.EventTypeRandomnessNotReady
)

// New wraps a payload in the current schema version
func New(t Type, payload any) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// GetMetadataValue returns a metadata value or nil
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
