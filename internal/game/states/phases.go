package states

import "fmt"

// BattlePhase represents where the battle is in its round cycle
type BattlePhase int

const (
	// PhaseIdle - Engine built, no round started yet
	PhaseIdle BattlePhase = iota

	// PhaseRoundInProgress - Units are taking their turns
	PhaseRoundInProgress

	// PhaseRoundComplete - Every unit in the acting order had its chance
	PhaseRoundComplete

	// PhaseGameOver - One faction has no living units
	PhaseGameOver

	// PhaseError - An internal fault stopped the battle
	PhaseError
)

// String returns the string representation of a BattlePhase
func (p BattlePhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRoundInProgress:
		return "RoundInProgress"
	case PhaseRoundComplete:
		return "RoundComplete"
	case PhaseGameOver:
		return "GameOver"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no further rounds can be played
func (p BattlePhase) IsTerminal() bool {
	return p == PhaseGameOver || p == PhaseError
}

// CanStartRound returns true if a new round may begin from this phase
func (p BattlePhase) CanStartRound() bool {
	return p == PhaseIdle || p == PhaseRoundComplete
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p BattlePhase) AllowedTransitions() []BattlePhase {
	switch p {
	case PhaseIdle:
		return []BattlePhase{PhaseRoundInProgress, PhaseError}
	case PhaseRoundInProgress:
		return []BattlePhase{PhaseRoundComplete, PhaseGameOver, PhaseError}
	case PhaseRoundComplete:
		return []BattlePhase{PhaseRoundInProgress, PhaseGameOver, PhaseError}
	default:
		return []BattlePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p BattlePhase) CanTransitionTo(target BattlePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a BattlePhase
func ParsePhase(s string) (BattlePhase, error) {
	switch s {
	case "Idle":
		return PhaseIdle, nil
	case "RoundInProgress":
		return PhaseRoundInProgress, nil
	case "RoundComplete":
		return PhaseRoundComplete, nil
	case "GameOver":
		return PhaseGameOver, nil
	case "Error":
		return PhaseError, nil
	default:
		return PhaseIdle, fmt.Errorf("unknown battle phase %q", s)
	}
}
