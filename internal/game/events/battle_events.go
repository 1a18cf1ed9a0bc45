package events

import (
	"time"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// Event type constants
const (
	TypeBattleStarted   = "battle.started"
	TypeBattleEnded     = "battle.ended"
	TypeRoundStarted    = "round.started"
	TypeRoundCompleted  = "round.completed"
	TypeUnitMoved       = "unit.moved"
	TypeUnitAttacked    = "unit.attacked"
	TypeUnitKilled      = "unit.killed"
	TypeStateTransition = "state.transition"
)

// AllTypes lists every event type the engine publishes
var AllTypes = []string{
	TypeBattleStarted, TypeBattleEnded, TypeRoundStarted, TypeRoundCompleted,
	TypeUnitMoved, TypeUnitAttacked, TypeUnitKilled, TypeStateTransition,
}

// BattleStartedEvent is published once the engine is built
type BattleStartedEvent struct {
	BaseEvent
	Width   int
	Height  int
	Elves   int
	Goblins int
}

func NewBattleStartedEvent(battleID string, width, height, elves, goblins int) *BattleStartedEvent {
	return &BattleStartedEvent{
		BaseEvent: newBase(TypeBattleStarted, battleID),
		Width:     width,
		Height:    height,
		Elves:     elves,
		Goblins:   goblins,
	}
}

// BattleEndedEvent is published when one faction has been wiped out
type BattleEndedEvent struct {
	BaseEvent
	Winner    roster.Faction
	HasWinner bool
	Rounds    int
	TotalHP   int
	Score     int
	Duration  time.Duration
}

func NewBattleEndedEvent(battleID string, winner roster.Faction, hasWinner bool, rounds, totalHP int, duration time.Duration) *BattleEndedEvent {
	return &BattleEndedEvent{
		BaseEvent: newBase(TypeBattleEnded, battleID),
		Winner:    winner,
		HasWinner: hasWinner,
		Rounds:    rounds,
		TotalHP:   totalHP,
		Score:     rounds * totalHP,
		Duration:  duration,
	}
}

// RoundStartedEvent carries the acting order snapshot for the round
type RoundStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Order    []int
}

func NewRoundStartedEvent(battleID string, round int, order []int) *RoundStartedEvent {
	snapshot := make([]int, len(order))
	copy(snapshot, order)
	return &RoundStartedEvent{
		BaseEvent: newBase(TypeRoundStarted, battleID),
		Metadata:  EventMetadata{Round: round},
		Order:     snapshot,
	}
}

// RoundCompletedEvent is published when every entry of the acting order had its chance
type RoundCompletedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	Completed     int
	ProcessedTime time.Duration
}

func NewRoundCompletedEvent(battleID string, round, completed int, processedTime time.Duration) *RoundCompletedEvent {
	return &RoundCompletedEvent{
		BaseEvent:     newBase(TypeRoundCompleted, battleID),
		Metadata:      EventMetadata{Round: round},
		Completed:     completed,
		ProcessedTime: processedTime,
	}
}

// UnitMovedEvent records a single step
type UnitMovedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Faction  roster.Faction
	From     core.Coordinate
	To       core.Coordinate
	Dest     core.Coordinate
}

func NewUnitMovedEvent(battleID string, round, unitID int, faction roster.Faction, from, to, dest core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, battleID),
		Metadata:  EventMetadata{Round: round, UnitID: unitID},
		Faction:   faction,
		From:      from,
		To:        to,
		Dest:      dest,
	}
}

// UnitAttackedEvent records one hit
type UnitAttackedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	DefenderID  int
	Damage      int
	RemainingHP int
}

func NewUnitAttackedEvent(battleID string, round, attackerID, defenderID, damage, remaining int) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent:   newBase(TypeUnitAttacked, battleID),
		Metadata:    EventMetadata{Round: round, UnitID: attackerID},
		DefenderID:  defenderID,
		Damage:      damage,
		RemainingHP: remaining,
	}
}

// UnitKilledEvent is published when a unit is removed from the roster
type UnitKilledEvent struct {
	BaseEvent
	Metadata EventMetadata
	VictimID int
	Faction  roster.Faction
	Pos      core.Coordinate
}

func NewUnitKilledEvent(battleID string, round, killerID, victimID int, faction roster.Faction, pos core.Coordinate) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent: newBase(TypeUnitKilled, battleID),
		Metadata:  EventMetadata{Round: round, UnitID: killerID},
		VictimID:  victimID,
		Faction:   faction,
		Pos:       pos,
	}
}

// StateTransitionEvent is published by the state machine
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewStateTransitionEvent(battleID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, battleID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
