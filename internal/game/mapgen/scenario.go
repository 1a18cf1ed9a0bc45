package mapgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named arena plus optional rule overrides and the results it is known to
// produce. Zero values mean "not set".
type Scenario struct {
	Name        string      `yaml:"name"`
	Map         string      `yaml:"map"`
	HitPoints   int         `yaml:"hit_points"`
	AttackPower PowerConfig `yaml:"attack_power"`
	Expected    Expectation `yaml:"expected"`

	Arena *Arena `yaml:"-"`
}

// PowerConfig overrides per-faction attack power.
type PowerConfig struct {
	Elf    int `yaml:"elf"`
	Goblin int `yaml:"goblin"`
}

// Expectation records known results for regression checks.
type Expectation struct {
	Rounds  int    `yaml:"rounds"`
	TotalHP int    `yaml:"total_hp"`
	Score   int    `yaml:"score"`
	Winner  string `yaml:"winner"`
	Boost   int    `yaml:"boost"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadScenario reads a YAML scenario file and parses its map.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	if err := loadYAML(path, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := sc.parse(); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// ParseScenario decodes a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.parse(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) parse() error {
	if sc.HitPoints < 0 || sc.AttackPower.Elf < 0 || sc.AttackPower.Goblin < 0 {
		return fmt.Errorf("scenario %q: hit points and attack power must not be negative", sc.Name)
	}
	arena, err := ParseArena(sc.Map)
	if err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	sc.Arena = arena
	return nil
}
