package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers battle events synchronously, in publish order, to subscribers and to
// per-type function handlers. A panicking receiver is logged and skipped.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  map[string]Subscriber
	funcHandlers map[string][]EventHandler
	logger       zerolog.Logger

	countMu   sync.Mutex
	published map[string]int
}

// NewEventBus creates a bus that logs through the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a bus that logs through the given logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
		published:    make(map[string]int),
	}
}

// Subscribe registers a subscriber, replacing any with the same ID.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added")
}

// Unsubscribe removes a subscriber by ID.
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed")
}

// SubscribeFunc registers handler for one event type and returns a handler id.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
	handlerID := fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added")
	return handlerID
}

// Publish delivers event to every interested subscriber, then to the function handlers
// registered for its type.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.countMu.Lock()
	eb.published[eventType]++
	eb.countMu.Unlock()

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eb.logger.Trace().
		Str("event_type", eventType).
		Str("battle_id", event.BattleID()).
		Msg("Publishing event")

	for id, subscriber := range eb.subscribers {
		if subscriber.InterestedIn(eventType) {
			eb.deliver(event, "subscriber "+id, subscriber.HandleEvent)
		}
	}
	for i, handler := range eb.funcHandlers[eventType] {
		eb.deliver(event, fmt.Sprintf("handler %s_func_%d", eventType, i+1), handler)
	}
}

func (eb *EventBus) deliver(event Event, receiver string, handle EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", event.Type()).
				Str("battle_id", event.BattleID()).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	handle(event)
}

// PublishedCount returns how many events of eventType have been published.
func (eb *EventBus) PublishedCount(eventType string) int {
	eb.countMu.Lock()
	defer eb.countMu.Unlock()
	return eb.published[eventType]
}

// GetSubscriberCount returns the number of subscribers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
