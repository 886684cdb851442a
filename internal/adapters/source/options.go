package source

import "github.com/cobiadigital/school-pay-visualization/pkg/logger"

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger used for load warnings.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithStrict makes any record anomaly fail the load.
func WithStrict(strict bool) Option {
	return func(ld *loader) {
		ld.strict = strict
	}
}
