package scene

import (
	"github.com/rs/zerolog"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithConfig replaces the tracker configuration. Zero fields take defaults.
func WithConfig(cfg Config) Option {
	return func(t *Tracker) {
		cfg.setDefaults()
		t.cfg = cfg
	}
}

// WithLogger sets the logger used for debug warnings and lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger.With().Str("module", "scene").Logger()
	}
}
