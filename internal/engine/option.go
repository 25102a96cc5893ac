package engine

import "github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's logger. The default is logger.NopLogger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}
