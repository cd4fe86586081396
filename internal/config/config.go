package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Search      SearchConfig      `mapstructure:"search"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	SelfPlay    SelfPlayConfig    `mapstructure:"selfplay"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds session settings
type GameConfig struct {
	StartingPlayer  string `mapstructure:"starting_player"`
	AutomatedPlayer string `mapstructure:"automated_player"`
}

// SearchConfig holds the automated player's search budget
type SearchConfig struct {
	Depth       int  `mapstructure:"depth"`
	TimeLimitMs int  `mapstructure:"time_limit_ms"`
	Metrics     bool `mapstructure:"metrics"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SelfPlayConfig holds settings for the self-play demo
type SelfPlayConfig struct {
	Games          int    `mapstructure:"games"`
	DepthA         int    `mapstructure:"depth_a"`
	DepthB         int    `mapstructure:"depth_b"`
	RandomOpenings int    `mapstructure:"random_openings"`
	Seed           uint64 `mapstructure:"seed"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	LogEvents bool `mapstructure:"log_events"`
	DevMode   bool `mapstructure:"dev_mode"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.starting_player", "A")
	v.SetDefault("game.automated_player", "A")

	// Search defaults
	v.SetDefault("search.depth", 6)
	v.SetDefault("search.time_limit_ms", 0)
	v.SetDefault("search.metrics", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Self-play defaults
	v.SetDefault("selfplay.games", 1)
	v.SetDefault("selfplay.depth_a", 6)
	v.SetDefault("selfplay.depth_b", 4)
	v.SetDefault("selfplay.random_openings", 0)
	v.SetDefault("selfplay.seed", 1)

	// Development defaults
	v.SetDefault("development.log_events", false)
	v.SetDefault("development.dev_mode", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mancala")
	}

	v.SetEnvPrefix("MANCALA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file at an explicit path falls back to defaults; for the
		// default locations only ConfigFileNotFoundError is ignored.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
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
		// Initialize with defaults if not already initialized
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

// LoadEnvironmentConfig loads environment-specific config overlay
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
	// Re-unmarshal to update struct
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

// WatchConfig enables hot-reloading of config file. A reload that fails
// validation is passed to onChange and the previous values are kept.
func WatchConfig(onChange func(*Config, error)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
}

// StartingPlayer returns the parsed game.starting_player.
func (c *Config) StartingPlayer() core.Player {
	p, _ := core.ParsePlayer(c.Game.StartingPlayer)
	return p
}

// AutomatedPlayer returns the parsed game.automated_player.
func (c *Config) AutomatedPlayer() core.Player {
	p, _ := core.ParsePlayer(c.Game.AutomatedPlayer)
	return p
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := core.ParsePlayer(c.Game.StartingPlayer); err != nil {
		return fmt.Errorf("%w: game.starting_player: %w", core.ErrConfiguration, err)
	}
	if _, err := core.ParsePlayer(c.Game.AutomatedPlayer); err != nil {
		return fmt.Errorf("%w: game.automated_player: %w", core.ErrConfiguration, err)
	}

	if c.Search.Depth <= 0 {
		return fmt.Errorf("%w: search.depth must be positive, got %d", core.ErrConfiguration, c.Search.Depth)
	}
	if c.Search.TimeLimitMs < 0 {
		return fmt.Errorf("%w: search.time_limit_ms must be non-negative", core.ErrConfiguration)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level: %w", core.ErrConfiguration, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", core.ErrConfiguration, c.Logging.Format)
	}

	if c.SelfPlay.Games <= 0 {
		return fmt.Errorf("%w: selfplay.games must be positive", core.ErrConfiguration)
	}
	if c.SelfPlay.DepthA <= 0 || c.SelfPlay.DepthB <= 0 {
		return fmt.Errorf("%w: selfplay depths must be positive", core.ErrConfiguration)
	}
	if c.SelfPlay.RandomOpenings < 0 {
		return fmt.Errorf("%w: selfplay.random_openings must be non-negative", core.ErrConfiguration)
	}

	return nil
}
