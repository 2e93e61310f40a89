package ecs

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for table creation, swap and purge traces.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger.With().Str("module", "ecs").Logger()
	}
}

// WithPrettyLog logs human-readable output to stderr.
func WithPrettyLog() Option {
	return func(r *Registry) {
		r.logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Str("module", "ecs").Logger()
	}
}
