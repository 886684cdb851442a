package dashboard

import "github.com/cobiadigital/school-pay-visualization/internal/domain/derive"

// DefaultTableRowLimit is the number of detail rows shown.
const DefaultTableRowLimit = 20

// Option configures Build.
type Option func(*config)

type config struct {
	progressionCap int
	tableRowLimit  int
}

// WithProgressionCap sets how many jurisdictions get a progression line.
func WithProgressionCap(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.progressionCap = n
		}
	}
}

// WithTableRowLimit sets how many detail rows are returned.
func WithTableRowLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tableRowLimit = n
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		progressionCap: derive.DefaultProgressionCap,
		tableRowLimit:  DefaultTableRowLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
