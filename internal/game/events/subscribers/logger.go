package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("battle_id", event.BattleID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.TraceLevel:
		logEvent = eventLogger.Trace()
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.BattleStartedEvent:
		logEvent.
			Int("width", e.Width).
			Int("height", e.Height).
			Int("elves", e.Elves).
			Int("goblins", e.Goblins)

	case *events.BattleEndedEvent:
		if e.HasWinner {
			logEvent.Str("winner", e.Winner.String())
		}
		logEvent.
			Int("rounds", e.Rounds).
			Int("total_hp", e.TotalHP).
			Int("score", e.Score).
			Dur("duration", e.Duration)

	case *events.RoundStartedEvent:
		logEvent.
			Int("round", e.Metadata.Round).
			Int("units", len(e.Order))

	case *events.RoundCompletedEvent:
		logEvent.
			Int("round", e.Metadata.Round).
			Int("completed", e.Completed).
			Dur("process_time", e.ProcessedTime)

	case *events.UnitMovedEvent:
		logEvent.
			Int("round", e.Metadata.Round).
			Int("unit_id", e.Metadata.UnitID).
			Str("faction", e.Faction.String()).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Stringer("dest", e.Dest)

	case *events.UnitAttackedEvent:
		logEvent.
			Int("round", e.Metadata.Round).
			Int("attacker_id", e.Metadata.UnitID).
			Int("defender_id", e.DefenderID).
			Int("damage", e.Damage).
			Int("remaining_hp", e.RemainingHP)

	case *events.UnitKilledEvent:
		logEvent.
			Int("round", e.Metadata.Round).
			Int("killer_id", e.Metadata.UnitID).
			Int("victim_id", e.VictimID).
			Str("faction", e.Faction.String()).
			Stringer("pos", e.Pos)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Battle event")
}
