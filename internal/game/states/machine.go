package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/skirmish/internal/game/events"
)

// State represents a battle phase with lifecycle callbacks
type State interface {
	// Phase returns the BattlePhase this state represents
	Phase() BattlePhase

	// Enter is called when transitioning into this state
	Enter(ctx *BattleContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *BattleContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *BattleContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      BattlePhase
	To        BattlePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages battle phase transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   BattlePhase
	states         map[BattlePhase]State
	context        *BattleContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine. publisher may be nil.
func NewStateMachine(ctx *BattleContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseIdle,
		states:         make(map[BattlePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 16),
		maxHistorySize: 1000,
		publisher:      publisher,
	}

	sm.RegisterState(NewIdleState())
	sm.RegisterState(NewRoundInProgressState())
	sm.RegisterState(NewRoundCompleteState())
	sm.RegisterState(NewGameOverState())
	sm.RegisterState(NewErrorState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current battle phase
func (sm *StateMachine) CurrentPhase() BattlePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase BattlePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.BattleID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Trace().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		// Keep the most recent entries
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the battle context
func (sm *StateMachine) GetContext() *BattleContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase BattlePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
