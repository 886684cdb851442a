// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional .env file, an optional YAML file and
//   SALARY_* environment variables, in that order.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// GenericPath points at the nationwide per-district CSV. Required.
	GenericPath string `koanf:"generic_path"`

	// DetailedPath points at the optional detailed per-district CSV.
	DetailedPath string `koanf:"detailed_path"`

	// Strict fails startup when loaded records carry anomalies such as
	// a top salary below the starting salary.
	Strict bool `koanf:"strict"`

	// ProgressionCap bounds the number of jurisdictions in the
	// salary progression chart.
	ProgressionCap int `koanf:"progression_cap"`

	// TableRowLimit caps the rows of the district detail table.
	TableRowLimit int `koanf:"table_row_limit"`

	// CacheTTLSeconds controls how long computed dashboard views are kept.
	// Zero disables the cache.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string `koanf:"cors_origins"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsRefreshSeconds is the system gauge refresh period.
	MetricsRefreshSeconds int `koanf:"metrics_refresh_seconds"`

	// MetricsLabels are constant labels added to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8050",
		GenericPath:     "teacher_salary_data.csv",
		DetailedPath:    "alabama_teacher_salaries.csv",
		Strict:          false,
		ProgressionCap:  10,
		TableRowLimit:   20,
		CacheTTLSeconds: 300,
		CORSOrigins:     []string{"*"},

		MetricsEnabled:        true,
		MetricsNamespace:      "salary",
		MetricsRefreshSeconds: 10,
	}
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	const op = "config.validate"
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return wrap(op, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig))
	case strings.TrimSpace(c.GenericPath) == "":
		return wrap(op, fmt.Errorf("%w: generic_path must not be empty", ErrInvalidConfig))
	case c.ProgressionCap < 1:
		return wrap(op, fmt.Errorf("%w: progression_cap must be positive", ErrInvalidConfig))
	case c.TableRowLimit < 1:
		return wrap(op, fmt.Errorf("%w: table_row_limit must be positive", ErrInvalidConfig))
	case c.CacheTTLSeconds < 0:
		return wrap(op, fmt.Errorf("%w: cache_ttl_seconds must not be negative", ErrInvalidConfig))
	case strings.TrimSpace(c.MetricsNamespace) == "":
		return wrap(op, fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig))
	case c.MetricsRefreshSeconds < 1:
		return wrap(op, fmt.Errorf("%w: metrics_refresh_seconds must be positive", ErrInvalidConfig))
	}
	return nil
}
