// Package dataset holds the merged salary records and the pure
// operations over them: merging sources, filtering by selection and
// aggregating districts into jurisdiction summaries.
package dataset

import (
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
)

// Dataset is the immutable merged record set shared by every query.
type Dataset struct {
	records           []model.DistrictRecord
	detailedAvailable bool
	jurisdictions     int
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithDetailedAvailable marks whether the detailed source was loaded.
func WithDetailedAvailable(ok bool) Option {
	return func(d *Dataset) {
		d.detailedAvailable = ok
	}
}

// New copies records into a Dataset. Input order is kept and defines
// "first appearance" for aggregation.
func New(records []model.DistrictRecord, opts ...Option) *Dataset {
	d := &Dataset{records: append([]model.DistrictRecord(nil), records...)}
	for _, opt := range opts {
		opt(d)
	}

	seen := make(map[string]struct{}, len(d.records))
	for _, r := range d.records {
		seen[r.Jurisdiction] = struct{}{}
	}
	d.jurisdictions = len(seen)
	return d
}

// Records returns a copy of the merged records in order.
func (d *Dataset) Records() []model.DistrictRecord {
	if d == nil {
		return nil
	}
	return append([]model.DistrictRecord(nil), d.records...)
}

// Len is the number of merged records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// JurisdictionCount is the number of distinct jurisdictions.
func (d *Dataset) JurisdictionCount() int {
	if d == nil {
		return 0
	}
	return d.jurisdictions
}

// DetailedAvailable reports whether detailed records were merged in.
func (d *Dataset) DetailedAvailable() bool {
	return d != nil && d.detailedAvailable
}

// Filter applies sel to the dataset's records.
func (d *Dataset) Filter(sel types.Selection) []model.DistrictRecord {
	if d == nil {
		return []model.DistrictRecord{}
	}
	return Filter(d.records, sel)
}

// Regions lists the region options.
func (d *Dataset) Regions() []string {
	if d == nil {
		return RegionOptions(nil)
	}
	return RegionOptions(d.records)
}

// Jurisdictions lists the jurisdiction options under region.
func (d *Dataset) Jurisdictions(region string) []string {
	if d == nil {
		return JurisdictionOptions(nil, region)
	}
	return JurisdictionOptions(d.records, region)
}
