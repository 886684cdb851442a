// Package service wires the record sources, the dataset and the
// dashboard projector behind the API used by the HTTP handlers and CLI.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cobiadigital/school-pay-visualization/internal/adapters/source"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dataset"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
	"github.com/cobiadigital/school-pay-visualization/pkg/logger"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// ErrNotStarted is returned by queries issued before Start.
var ErrNotStarted = errors.New("service not started")

// Service holds the merged dataset and answers dashboard queries.
type Service struct {
	mu sync.RWMutex

	// Sources
	genericPath  string
	detailedPath string
	strict       bool
	preset       *dataset.Dataset

	// Projection
	progressionCap int
	tableRowLimit  int
	cacheTTL       time.Duration

	// State
	ds        *dataset.Dataset
	views     *cache.Cache
	anomalies int
	skipped   int
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the generic and detailed CSV paths.
func WithSources(genericPath, detailedPath string) Option {
	return func(s *Service) {
		s.genericPath = genericPath
		s.detailedPath = detailedPath
	}
}

// WithStrict fails Start when any record has anomalies.
func WithStrict(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithDataset serves ds instead of loading files.
func WithDataset(ds *dataset.Dataset) Option {
	return func(s *Service) {
		s.preset = ds
	}
}

// WithProgressionCap sets how many jurisdictions get a progression line.
func WithProgressionCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.progressionCap = n
		}
	}
}

// WithTableRowLimit sets how many rows the detail table shows.
func WithTableRowLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tableRowLimit = n
		}
	}
}

// WithCacheTTL sets how long views are memoized. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		progressionCap: 10,
		tableRowLimit:  dashboard.DefaultTableRowLimit,
		cacheTTL:       5 * time.Minute,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads and merges the sources. A missing generic source is
// returned as an error wrapping source.ErrGenericMissing.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting salary service...")

	ds := s.preset
	if ds == nil {
		src, err := source.Load(ctx, s.genericPath, s.detailedPath,
			source.WithLogger(s.logger.Named("source")),
			source.WithStrict(s.strict),
		)
		if err != nil {
			metrics.RecordErrorByComponent("service", "load")
			s.logger.Error(ctx, "failed to load salary sources", logger.Error(err))
			return err
		}
		ds = src.Dataset()
		s.anomalies = len(src.Anomalies)
		for _, r := range src.Reports {
			s.skipped += r.SkippedCount()
		}
	}
	s.ds = ds

	if s.cacheTTL > 0 {
		s.views = cache.New(s.cacheTTL, 2*s.cacheTTL)
	}

	metrics.UpdateJurisdictionCount(ds.JurisdictionCount())
	metrics.UpdateDetailedAvailable(ds.DetailedAvailable())

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "salary service started",
		logger.Int("records", ds.Len()),
		logger.Int("jurisdictions", ds.JurisdictionCount()),
		logger.Bool("detailedAvailable", ds.DetailedAvailable()),
		logger.Int("anomalies", s.anomalies),
	)

	return nil
}

// Stop drops the dataset and cached views.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping salary service...")

	if s.views != nil {
		s.views.Flush()
	}
	s.views = nil
	s.ds = nil
	s.started = false

	s.logger.Info(context.Background(), "salary service stopped")
}

func (s *Service) snapshot() (*dataset.Dataset, *cache.Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.ds, s.views, nil
}

// Dashboard returns the view for sel, memoized per normalized selection.
// The returned Selection is always the caller's own, in the caller's order.
func (s *Service) Dashboard(ctx context.Context, sel types.Selection) (dashboard.View, error) {
	ds, views, err := s.snapshot()
	if err != nil {
		return dashboard.View{}, err
	}

	start := time.Now()
	metrics.RecordDashboardQuery()

	key := sel.Key()
	if views != nil {
		if v, ok := views.Get(key); ok {
			if view, ok := v.(dashboard.View); ok {
				metrics.RecordViewCacheHit()
				view.Selection = sel.Normalize()
				return view, nil
			}
		}
		metrics.RecordViewCacheMiss()
	}

	view := dashboard.Build(ds, sel,
		dashboard.WithProgressionCap(s.progressionCap),
		dashboard.WithTableRowLimit(s.tableRowLimit),
	)
	if views != nil {
		views.SetDefault(key, view)
	}

	metrics.RecordFilteredRecords(view.Records)
	if view.Empty {
		metrics.RecordEmptySelection()
	}
	metrics.RecordDashboardLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.logger.Debug(ctx, "dashboard built",
		logger.String("selection", key),
		logger.Int("records", view.Records),
	)
	return view, nil
}

// Records returns every record matching sel, with no row limit.
func (s *Service) Records(_ context.Context, sel types.Selection) ([]model.DistrictRecord, error) {
	ds, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ds.Filter(sel), nil
}

// Regions lists the region options.
func (s *Service) Regions(_ context.Context) ([]string, error) {
	ds, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ds.Regions(), nil
}

// Jurisdictions lists the jurisdiction options under region.
func (s *Service) Jurisdictions(_ context.Context, region string) ([]string, error) {
	ds, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ds.Jurisdictions(region), nil
}

// Health reports liveness and dataset size.
type Health struct {
	Status            string `json:"status"`
	Records           int    `json:"records"`
	Jurisdictions     int    `json:"jurisdictions"`
	DetailedAvailable bool   `json:"detailedAvailable"`
}

// Health returns the current health snapshot.
func (s *Service) Health() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return Health{Status: "starting"}
	}
	return Health{
		Status:            "ok",
		Records:           s.ds.Len(),
		Jurisdictions:     s.ds.JurisdictionCount(),
		DetailedAvailable: s.ds.DetailedAvailable(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"progressionCap": s.progressionCap,
		"tableRowLimit":  s.tableRowLimit,
		"cacheTTL":       s.cacheTTL.String(),
	}

	if s.started {
		stats["records"] = s.ds.Len()
		stats["jurisdictions"] = s.ds.JurisdictionCount()
		stats["detailedAvailable"] = s.ds.DetailedAvailable()
		stats["anomalies"] = s.anomalies
		stats["skippedRows"] = s.skipped
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
		if s.views != nil {
			stats["cachedViews"] = s.views.ItemCount()
		}
	}

	return stats
}
