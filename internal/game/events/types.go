package events

import (
	"time"
)

// Event is the base interface for all battle events
type Event interface {
	// Type returns the event type as a string for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// BattleID returns the ID of the battle this event belongs to
	BattleID() string
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Battle    string    `json:"battle_id"`
}

// Type implements Event interface
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp implements Event interface
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// BattleID implements Event interface
func (e BaseEvent) BattleID() string {
	return e.Battle
}

func newBase(eventType, battleID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Battle: battleID}
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber represents an entity that can receive events
type Subscriber interface {
	// ID returns a unique identifier for this subscriber
	ID() string
	// HandleEvent processes an event
	HandleEvent(Event)
	// InterestedIn returns true if the subscriber wants to receive this event type
	InterestedIn(eventType string) bool
}

// EventMetadata contains additional context for events
type EventMetadata struct {
	// Round in progress when the event occurred
	Round int `json:"round,omitempty"`
	// UnitID of the acting unit, if any
	UnitID int `json:"unit_id,omitempty"`
}

// Publisher is the interface for publishing events
type Publisher interface {
	// Publish sends an event to all interested subscribers
	Publish(Event)
}

// Bus is the main event bus interface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
