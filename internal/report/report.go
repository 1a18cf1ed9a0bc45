// Package report renders battle and tuning results as protobuf Structs and JSON.
package report

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/skirmish/internal/game"
	"github.com/mitchelldurbincs/skirmish/internal/tuning"
)

// Build assembles the report for a battle outcome and, when tuned is non-nil, the boost
// search that followed it.
func Build(outcome game.Outcome, tuned *tuning.Result) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"battle": outcomeFields(outcome),
	}
	if tuned != nil {
		fields["tuning"] = map[string]interface{}{
			"faction":  tuned.Faction.String(),
			"strategy": string(tuned.Strategy),
			"boost":    tuned.Boost,
			"power":    tuned.Power,
			"trials":   tuned.Trials,
			"battle":   outcomeFields(tuned.Outcome),
		}
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return s, nil
}

func outcomeFields(o game.Outcome) map[string]interface{} {
	return map[string]interface{}{
		"battle_id":  o.BattleID,
		"rounds":     o.Rounds,
		"total_hp":   o.TotalHP,
		"score":      o.Score,
		"winner":     o.WinnerName(),
		"finished":   o.Finished,
		"casualties": o.Casualties,
		"survivors": map[string]interface{}{
			"elves":   o.Elves,
			"goblins": o.Goblins,
		},
		"start": map[string]interface{}{
			"elves":   o.StartElves,
			"goblins": o.StartGoblins,
		},
	}
}

// JSON renders a report as indented JSON.
func JSON(s *structpb.Struct) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

// Text renders the short human readable summary printed by the CLI.
func Text(outcome game.Outcome, tuned *tuning.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Battle %s\n", outcome.BattleID)
	fmt.Fprintf(&sb, "  winner:   %s\n", outcome.WinnerName())
	fmt.Fprintf(&sb, "  rounds:   %d\n", outcome.Rounds)
	fmt.Fprintf(&sb, "  total hp: %d\n", outcome.TotalHP)
	fmt.Fprintf(&sb, "  score:    %d\n", outcome.Score)
	if tuned != nil {
		fmt.Fprintf(&sb, "Minimum %s boost %d (power %d) after %d trials\n",
			tuned.Faction, tuned.Boost, tuned.Power, tuned.Trials)
		fmt.Fprintf(&sb, "  rounds:   %d\n", tuned.Outcome.Rounds)
		fmt.Fprintf(&sb, "  total hp: %d\n", tuned.Outcome.TotalHP)
		fmt.Fprintf(&sb, "  score:    %d\n", tuned.Outcome.Score)
	}
	return sb.String()
}
