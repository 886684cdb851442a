package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/cobiadigital/school-pay-visualization/internal/config"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
	"github.com/cobiadigital/school-pay-visualization/pkg/logger"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceFlags override the configured CSV paths.
type sourceFlags struct {
	generic  string
	detailed string
	strict   bool
}

func newRootCmd() *cobra.Command {
	flags := &sourceFlags{}

	rootCmd := &cobra.Command{
		Use:   "salaryd",
		Short: "Teacher salary comparison dashboard",
		Long: `Compares public school teacher salaries across U.S. states.
Serves the dashboard API, prints headline figures, renders charts and
generates sample source data.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.generic, "generic", "", "nationwide district CSV (overrides generic_path)")
	rootCmd.PersistentFlags().StringVar(&flags.detailed, "detailed", "", "detailed district CSV (overrides detailed_path)")
	rootCmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "fail when records carry anomalies")

	serve := serveCmd(flags)
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(summaryCmd(flags))
	rootCmd.AddCommand(renderCmd(flags))
	rootCmd.AddCommand(generateCmd())

	// Bare invocation serves, like the service always has.
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())

	return rootCmd
}

// loadConfig layers the command line over config.Load and initializes
// logging in the configured format.
func loadConfig(cmd *cobra.Command, flags *sourceFlags) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.generic != "" {
		cfg.GenericPath = flags.generic
	}
	if cmd.Flags().Changed("detailed") {
		cfg.DetailedPath = flags.detailed
	}
	if flags.strict {
		cfg.Strict = true
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.Configure(metricsOptions(cfg)...)
	return cfg, nil
}

func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(time.Duration(cfg.MetricsRefreshSeconds) * time.Second),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	}
}

// selectionFlags binds --region and --state to a selection.
func selectionFlags(cmd *cobra.Command) func() types.Selection {
	var region string
	var states []string
	cmd.Flags().StringVar(&region, "region", types.AllRegions, "region to include")
	cmd.Flags().StringSliceVar(&states, "state", nil, "state to include; repeat or comma separate")
	return func() types.Selection {
		return types.Selection{Region: region, Jurisdictions: states}.Normalize()
	}
}
