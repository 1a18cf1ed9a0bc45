package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game/events"
	"github.com/mitchelldurbincs/skirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/mitchelldurbincs/skirmish/internal/game/rules"
	"github.com/mitchelldurbincs/skirmish/internal/game/states"
)

// EngineConfig carries everything needed to build an Engine.
type EngineConfig struct {
	Arena       *mapgen.Arena
	Rules       Rules
	Logger      zerolog.Logger
	BattleID    string
	EventBus    *events.EventBus
	Subscribers []events.Subscriber
}

// Option adjusts an EngineConfig.
type Option func(*EngineConfig)

// WithLogger sets the parent logger. The default is a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *EngineConfig) { c.Logger = logger }
}

// WithBattleID fixes the battle id instead of generating one.
func WithBattleID(id string) Option {
	return func(c *EngineConfig) { c.BattleID = id }
}

// WithEventBus publishes battle events on an existing bus.
func WithEventBus(bus *events.EventBus) Option {
	return func(c *EngineConfig) { c.EventBus = bus }
}

// WithSubscriber registers a subscriber on the engine's bus.
func WithSubscriber(s events.Subscriber) Option {
	return func(c *EngineConfig) { c.Subscribers = append(c.Subscribers, s) }
}

// EngineInitializer handles the construction of a battle engine
type EngineInitializer struct {
	config EngineConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg EngineConfig) *EngineInitializer {
	return &EngineInitializer{config: cfg}
}

// Initialize validates the configuration and builds the engine
func (ei *EngineInitializer) Initialize() (*Engine, error) {
	if ei.config.Arena == nil {
		return nil, fmt.Errorf("engine requires an arena")
	}
	if err := ei.config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	ei.setupDefaults()

	units, err := roster.New(ei.config.Arena.Placements, ei.config.Rules.HitPoints, ei.config.Rules.PowerFor)
	if err != nil {
		return nil, fmt.Errorf("roster setup failed: %w", err)
	}

	engine := ei.createEngine(units)
	ei.setupEventHandling(engine)

	elves, goblins := units.FactionCounts()
	engine.eventBus.Publish(events.NewBattleStartedEvent(
		engine.battleID,
		engine.grid.W,
		engine.grid.H,
		elves,
		goblins,
	))

	ei.logger.Debug().
		Int("width", engine.grid.W).
		Int("height", engine.grid.H).
		Int("elves", elves).
		Int("goblins", goblins).
		Int("elf_power", ei.config.Rules.ElfPower).
		Int("goblin_power", ei.config.Rules.GoblinPower).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in a battle id, logger and event bus when none were given
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.BattleID == "" {
		ei.config.BattleID = uuid.NewString()
	}
	ei.logger = ei.config.Logger.With().
		Str("component", "BattleEngine").
		Str("battle_id", ei.config.BattleID).
		Logger()
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}
}

// createEngine wires the engine components together
func (ei *EngineInitializer) createEngine(units *roster.Roster) *Engine {
	battleContext := states.NewBattleContext(ei.config.BattleID, ei.logger)
	stateMachine := states.NewStateMachine(battleContext, ei.config.EventBus)

	engine := &Engine{
		battleID:     ei.config.BattleID,
		arena:        ei.config.Arena,
		grid:         ei.config.Arena.Grid,
		units:        units,
		rules:        ei.config.Rules,
		logger:       ei.logger,
		eventBus:     ei.config.EventBus,
		stateMachine: stateMachine,
		winCondition: rules.NewWinConditionChecker(ei.logger),
	}
	engine.roundProcessor = NewRoundProcessor(engine)
	return engine
}

// setupEventHandling registers configured subscribers
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	for _, s := range ei.config.Subscribers {
		engine.eventBus.Subscribe(s)
	}
}
