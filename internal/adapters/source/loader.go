// Package source loads teacher salary records from the generic and
// detailed CSV files.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/dataset"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/pkg/logger"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// RecordAnomaly ties a validation anomaly to the record it was found in.
type RecordAnomaly struct {
	Layer        string         `json:"layer"`
	Jurisdiction string         `json:"state"`
	District     string         `json:"district"`
	Anomaly      derive.Anomaly `json:"anomaly"`
}

// Sources is the result of Load.
type Sources struct {
	Generic           []model.DistrictRecord
	Detailed          []model.DistrictRecord
	DetailedAvailable bool
	Reports           []ParseReport
	Anomalies         []RecordAnomaly
}

// Merged applies the detailed layer over the generic records.
func (s Sources) Merged() []model.DistrictRecord {
	return dataset.Merge(s.Generic, dataset.Layer{Name: model.SourceDetailed, Records: s.Detailed})
}

// Dataset builds the immutable dataset for the merged records.
func (s Sources) Dataset() *dataset.Dataset {
	return dataset.New(s.Merged(), dataset.WithDetailedAvailable(s.DetailedAvailable))
}

type loader struct {
	log    logger.Logger
	strict bool
}

// Load reads both sources. A missing generic source is an error wrapping
// ErrGenericMissing; a missing or unreadable detailed source only clears
// DetailedAvailable.
func Load(ctx context.Context, genericPath, detailedPath string, opts ...Option) (Sources, error) {
	const op = "source.Load"

	ld := &loader{log: logger.Named("source")}
	for _, opt := range opts {
		opt(ld)
	}

	var out Sources

	if genericPath == "" {
		return out, wrap(op, fmt.Errorf("%w: no path configured", ErrGenericMissing))
	}
	if err := ctx.Err(); err != nil {
		return out, wrap(op, err)
	}
	generic, report, err := ld.readFile(genericPath, model.SourceGeneric)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return out, wrap(op, fmt.Errorf("%w: %s: %w", ErrGenericMissing, genericPath, err))
		}
		return out, wrap(op, err)
	}
	out.Generic = generic
	out.Reports = append(out.Reports, report)
	ld.logReport(ctx, genericPath, report)

	if err := ctx.Err(); err != nil {
		return out, wrap(op, err)
	}
	switch {
	case detailedPath == "":
		ld.log.Info(ctx, "detailed source not configured")
	default:
		detailed, report, err := ld.readFile(detailedPath, model.SourceDetailed)
		if err != nil {
			ld.log.Warn(ctx, "detailed source unavailable, using generic data only",
				logger.String("path", detailedPath), logger.Error(err))
			break
		}
		out.Detailed = detailed
		out.DetailedAvailable = true
		out.Reports = append(out.Reports, report)
		ld.logReport(ctx, detailedPath, report)
	}
	metrics.UpdateDetailedAvailable(out.DetailedAvailable)

	out.Anomalies = append(ld.validate(ctx, model.SourceGeneric, out.Generic),
		ld.validate(ctx, model.SourceDetailed, out.Detailed)...)
	if ld.strict && len(out.Anomalies) > 0 {
		return out, wrap(op, fmt.Errorf("%w: %d anomalies", ErrAnomalies, len(out.Anomalies)))
	}
	return out, nil
}

func (ld *loader) readFile(path, layer string) ([]model.DistrictRecord, ParseReport, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, ParseReport{Layer: layer}, err
	}
	defer func() { _ = f.Close() }()

	records, report, err := ParseCSV(f, layer)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}
	return records, report, nil
}

func (ld *loader) logReport(ctx context.Context, path string, report ParseReport) {
	metrics.UpdateRecordsLoaded(report.Layer, report.Loaded)
	metrics.RecordRowsSkipped(report.Layer, report.SkippedCount())

	ld.log.Info(ctx, "salary source loaded",
		logger.String("layer", report.Layer),
		logger.String("path", path),
		logger.Int("records", report.Loaded),
		logger.Int("skipped", report.SkippedCount()))
	for _, s := range report.Skipped {
		ld.log.Warn(ctx, "row skipped",
			logger.String("layer", report.Layer),
			logger.Int("line", s.Line),
			logger.String("reason", s.Reason))
	}
}

func (ld *loader) validate(ctx context.Context, layer string, records []model.DistrictRecord) []RecordAnomaly {
	var out []RecordAnomaly
	for _, r := range records {
		for _, a := range derive.Validate(r) {
			metrics.RecordAnomaly(a.Kind)
			ld.log.Debug(ctx, "record anomaly",
				logger.String("layer", layer),
				logger.String("state", r.Jurisdiction),
				logger.String("district", r.District),
				logger.String("kind", a.Kind),
				logger.String("detail", a.Detail))
			out = append(out, RecordAnomaly{
				Layer:        layer,
				Jurisdiction: r.Jurisdiction,
				District:     r.District,
				Anomaly:      a,
			})
		}
	}
	if len(out) > 0 {
		ld.log.Warn(ctx, "records with anomalies",
			logger.String("layer", layer), logger.Int("count", len(out)))
	}
	return out
}
