package scene

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxTreeDepth  = 32
	DefaultMaxChildCount = 1000
	DefaultLogLevel      = "info"
)

// Config tunes the Tracker. It is usually loaded from the environment:
//
//	SCENE_DEBUG=true
//	SCENE_MAX_TREE_DEPTH=64
//	SCENE_MAX_CHILD_COUNT=5000
//	SCENE_LOG_LEVEL=debug
type Config struct {
	// Debug enables the tree depth and child count warnings.
	Debug         bool   `config:"SCENE_DEBUG"`
	MaxTreeDepth  int    `config:"SCENE_MAX_TREE_DEPTH"`
	MaxChildCount int    `config:"SCENE_MAX_CHILD_COUNT"`
	LogLevel      string `config:"SCENE_LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxTreeDepth:  DefaultMaxTreeDepth,
		MaxChildCount: DefaultMaxChildCount,
		LogLevel:      DefaultLogLevel,
	}
}

// LoadConfig reads the SCENE_* environment variables. Unset values fall back
// to the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to load scene config from env")
	}
	cfg.setDefaults()
	if _, err := cfg.level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.MaxTreeDepth <= 0 {
		c.MaxTreeDepth = DefaultMaxTreeDepth
	}
	if c.MaxChildCount <= 0 {
		c.MaxChildCount = DefaultMaxChildCount
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func (c Config) level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid SCENE_LOG_LEVEL %q", c.LogLevel)
	}
	return lvl, nil
}
