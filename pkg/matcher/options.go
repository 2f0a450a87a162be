package matcher

import (
	"github.com/rs/zerolog"

	"rgehrsitz/switchmatch/pkg/rules"
)

// Option configures a Matcher.
type Option func(*config)

type config struct {
	autoBreak bool
	eq        rules.Equaler
	logger    zerolog.Logger
}

func defaultConfig() config {
	return config{
		autoBreak: true,
		eq:        rules.DeepEqual,
		logger:    zerolog.Nop(),
	}
}

// WithAutoBreak sets whether the first match short-circuits every later
// case. It defaults to true.
func WithAutoBreak(enabled bool) Option {
	return func(c *config) {
		c.autoBreak = enabled
	}
}

// WithEqualer replaces the structural equality oracle.
func WithEqualer(eq rules.Equaler) Option {
	return func(c *config) {
		if eq != nil {
			c.eq = eq
		}
	}
}

// WithLogger enables debug tracing of state changes.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
