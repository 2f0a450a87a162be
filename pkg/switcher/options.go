package switcher

import (
	"time"

	"github.com/rs/zerolog"

	"rgehrsitz/switchmatch/pkg/rules"
)

// Observer is notified once per resolution request.
type Observer interface {
	ObserveResolution(source Source, elapsed time.Duration, err error)
}

// Option configures a Switcher.
type Option func(*config)

type config struct {
	autoBreak bool
	eq        rules.Equaler
	logger    zerolog.Logger
	observer  Observer
}

func defaultConfig() config {
	return config{
		autoBreak: true,
		eq:        rules.DeepEqual,
		logger:    zerolog.Nop(),
	}
}

// WithAutoBreak sets whether a scan ends at the first match. Defaults to true.
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

// WithLogger enables debug tracing of every scan.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithObserver reports every resolution to o.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}
