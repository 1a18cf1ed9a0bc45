package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Battle    BattleConfig    `mapstructure:"battle"`
	Tuning    TuningConfig    `mapstructure:"tuning"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Output    OutputConfig    `mapstructure:"output"`
}

// BattleConfig holds combat rules
type BattleConfig struct {
	HitPoints   int               `mapstructure:"hit_points"`
	AttackPower AttackPowerConfig `mapstructure:"attack_power"`
	MaxRounds   int               `mapstructure:"max_rounds"`
}

// AttackPowerConfig holds per-faction attack power
type AttackPowerConfig struct {
	Elf    int `mapstructure:"elf"`
	Goblin int `mapstructure:"goblin"`
}

// TuningConfig holds power search settings
type TuningConfig struct {
	Faction     string `mapstructure:"faction"`
	Strategy    string `mapstructure:"strategy"`
	MaxBoost    int    `mapstructure:"max_boost"`
	Parallelism int    `mapstructure:"parallelism"`
}

// GeneratorConfig holds random arena settings
type GeneratorConfig struct {
	Width     int   `mapstructure:"width"`
	Height    int   `mapstructure:"height"`
	Elves     int   `mapstructure:"elves"`
	Goblins   int   `mapstructure:"goblins"`
	WallRatio int   `mapstructure:"wall_ratio"`
	Seed      int64 `mapstructure:"seed"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Render bool   `mapstructure:"render"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values in viper
func setViperDefaults(v *viper.Viper) {
	// Battle defaults
	v.SetDefault("battle.hit_points", 200)
	v.SetDefault("battle.attack_power.elf", 3)
	v.SetDefault("battle.attack_power.goblin", 3)
	v.SetDefault("battle.max_rounds", 10000)

	// Tuning defaults
	v.SetDefault("tuning.faction", "elf")
	v.SetDefault("tuning.strategy", "linear")
	v.SetDefault("tuning.max_boost", 0) // 0 means bounded by hit points
	v.SetDefault("tuning.parallelism", 4)

	// Generator defaults
	v.SetDefault("generator.width", 16)
	v.SetDefault("generator.height", 12)
	v.SetDefault("generator.elves", 4)
	v.SetDefault("generator.goblins", 6)
	v.SetDefault("generator.wall_ratio", 6)
	v.SetDefault("generator.seed", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Output defaults
	v.SetDefault("output.format", "text")
	v.SetDefault("output.render", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/skirmish")
	}

	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig reloads the config file on change. onChange receives the reloaded
// config, or the validation error if the new file is rejected; the previous
// config stays in effect on error.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}

var (
	validLevels   = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validFactions = []string{"elf", "elves", "e", "goblin", "goblins", "g"}
)

// Validate validates the configuration values
func Validate(c *Config) error {
	// Battle rules
	if c.Battle.HitPoints <= 0 {
		return fmt.Errorf("battle.hit_points must be positive")
	}
	if c.Battle.AttackPower.Elf <= 0 || c.Battle.AttackPower.Goblin <= 0 {
		return fmt.Errorf("battle.attack_power values must be positive")
	}
	if c.Battle.MaxRounds <= 0 {
		return fmt.Errorf("battle.max_rounds must be positive")
	}

	// Tuning
	if !oneOf(c.Tuning.Faction, validFactions) {
		return fmt.Errorf("tuning.faction must be elf or goblin, got %q", c.Tuning.Faction)
	}
	if !oneOf(c.Tuning.Strategy, []string{"linear", "binary", "parallel"}) {
		return fmt.Errorf("tuning.strategy must be linear, binary or parallel, got %q", c.Tuning.Strategy)
	}
	if c.Tuning.MaxBoost < 0 {
		return fmt.Errorf("tuning.max_boost must be non-negative")
	}
	if c.Tuning.Parallelism < 1 {
		return fmt.Errorf("tuning.parallelism must be at least 1")
	}

	// Generator
	if c.Generator.Width < 3 || c.Generator.Height < 3 {
		return fmt.Errorf("generator dimensions must be at least 3")
	}
	if c.Generator.Elves < 0 || c.Generator.Goblins < 0 {
		return fmt.Errorf("generator unit counts must be non-negative")
	}
	if c.Generator.WallRatio < 0 {
		return fmt.Errorf("generator.wall_ratio must be non-negative")
	}

	// Logging and output
	if !oneOf(c.Logging.Level, validLevels) {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, []string{"console", "json"}) {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if !oneOf(c.Output.Format, []string{"text", "json"}) {
		return fmt.Errorf("output.format must be text or json, got %q", c.Output.Format)
	}

	return nil
}

func oneOf(s string, options []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
