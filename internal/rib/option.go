package rib

import "github.com/mikkelsvartveit/gdp-multicast-simulator/internal/logger"

// Option configures a RIB at construction time, mirroring the teacher's
// functional-options convention (internal/routingtable.Option).
type Option func(*RIB)

// WithLogger overrides the RIB's logger. The default is logger.NopLogger.
func WithLogger(l logger.Logger) Option {
	return func(r *RIB) {
		r.logger = l
	}
}
