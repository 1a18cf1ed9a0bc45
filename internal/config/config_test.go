package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/skirmish/internal/testutil"
)

func reset() {
	cfg = nil
	v = nil
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit_FromFile_OverridesDefaults(t *testing.T) {
	configFile := writeConfig(t, t.TempDir(), "config.yaml", `
battle:
  hit_points: 150
  attack_power:
    elf: 15
tuning:
  strategy: binary
  parallelism: 8
output:
  format: json
  render: true
`)
	reset()

	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 150, c.Battle.HitPoints)
	assert.Equal(t, 15, c.Battle.AttackPower.Elf)
	assert.Equal(t, 3, c.Battle.AttackPower.Goblin)
	assert.Equal(t, "binary", c.Tuning.Strategy)
	assert.Equal(t, 8, c.Tuning.Parallelism)
	assert.Equal(t, "json", c.Output.Format)
	assert.True(t, c.Output.Render)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInit_MissingFile_UsesDefaults(t *testing.T) {
	reset()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 200, c.Battle.HitPoints)
	assert.Equal(t, 3, c.Battle.AttackPower.Elf)
	assert.Equal(t, 3, c.Battle.AttackPower.Goblin)
	assert.Equal(t, 10000, c.Battle.MaxRounds)
	assert.Equal(t, "elf", c.Tuning.Faction)
	assert.Equal(t, "linear", c.Tuning.Strategy)
	assert.Equal(t, 0, c.Tuning.MaxBoost)
	assert.Equal(t, 4, c.Tuning.Parallelism)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, "text", c.Output.Format)
	assert.False(t, c.Output.Render)
}

func TestInit_EnvironmentVariables_Override(t *testing.T) {
	reset()
	t.Setenv("SKIRMISH_BATTLE_ATTACK_POWER_ELF", "34")
	t.Setenv("SKIRMISH_TUNING_STRATEGY", "parallel")
	t.Setenv("SKIRMISH_LOGGING_LEVEL", "debug")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 34, c.Battle.AttackPower.Elf)
	assert.Equal(t, "parallel", c.Tuning.Strategy)
	assert.Equal(t, "debug", c.Logging.Level)
}

func TestInit_InvalidValues_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero hit points", "battle:\n  hit_points: 0\n"},
		{"negative goblin power", "battle:\n  attack_power:\n    goblin: -1\n"},
		{"zero max rounds", "battle:\n  max_rounds: 0\n"},
		{"unknown faction", "tuning:\n  faction: dwarf\n"},
		{"unknown strategy", "tuning:\n  strategy: random\n"},
		{"negative max boost", "tuning:\n  max_boost: -2\n"},
		{"zero parallelism", "tuning:\n  parallelism: 0\n"},
		{"tiny generator", "generator:\n  width: 2\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"unknown log format", "logging:\n  format: xml\n"},
		{"unknown output format", "output:\n  format: csv\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.content)
			reset()

			err := Init(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestValidate_FactionAliases_Accepted(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	for _, f := range []string{"elf", "Elves", "g", " goblin "} {
		c := *Get()
		c.Tuning.Faction = f
		assert.NoError(t, Validate(&c), f)
	}
}

func TestSet_UpdatesStruct(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("battle.attack_power.elf", 12)
	Set("output.render", true)

	c := Get()
	assert.Equal(t, 12, c.Battle.AttackPower.Elf)
	assert.True(t, c.Output.Render)
}

func TestGetHelpers_ReturnTypedValues(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)
	Set("test.float", 3.14)

	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
	assert.Equal(t, 3.14, GetFloat64("test.float"))
	assert.Equal(t, 200, GetViper().GetInt("battle.hit_points"))
}

func TestGetViper_BeforeInit_Panics(t *testing.T) {
	reset()
	r := testutil.AssertPanic(t, func() { GetViper() }, "GetViper before Init")
	assert.Contains(t, r, "config not initialized")
}

func TestLoadEnvironmentConfig_MergesOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	baseConfig := writeConfig(t, tmpDir, "config.yaml", `
battle:
  hit_points: 200
  attack_power:
    elf: 4
tuning:
  parallelism: 2
`)
	writeConfig(t, tmpDir, "config.prod.yaml", `
battle:
  attack_power:
    elf: 20
tuning:
  parallelism: 16
  strategy: binary
`)

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	reset()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 200, c.Battle.HitPoints)
	assert.Equal(t, 20, c.Battle.AttackPower.Elf)
	assert.Equal(t, 16, c.Tuning.Parallelism)
	assert.Equal(t, "binary", c.Tuning.Strategy)
}

func TestLoadEnvironmentConfig_EmptyEnv_NoOp(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	assert.NoError(t, LoadEnvironmentConfig(""))
	assert.Equal(t, 200, Get().Battle.HitPoints)
}
