package dataset

import "github.com/cobiadigital/school-pay-visualization/internal/domain/model"

// Layer is one record source in a precedence list. A layer covers every
// jurisdiction that appears in its records.
type Layer struct {
	Name    string
	Records []model.DistrictRecord
}

// Jurisdictions returns the distinct jurisdictions the layer covers.
func (l Layer) Jurisdictions() map[string]struct{} {
	covered := make(map[string]struct{}, len(l.Records))
	for _, r := range l.Records {
		covered[r.Jurisdiction] = struct{}{}
	}
	return covered
}

// Merge applies layers over base, lowest precedence first. Each layer
// replaces all previously merged records of the jurisdictions it covers
// and appends its own records after the survivors. Neither base nor
// the layers are modified.
func Merge(base []model.DistrictRecord, layers ...Layer) []model.DistrictRecord {
	merged := append(make([]model.DistrictRecord, 0, len(base)), base...)

	for _, layer := range layers {
		if len(layer.Records) == 0 {
			continue
		}
		covered := layer.Jurisdictions()

		kept := make([]model.DistrictRecord, 0, len(merged)+len(layer.Records))
		for _, r := range merged {
			if _, ok := covered[r.Jurisdiction]; ok {
				continue
			}
			kept = append(kept, r)
		}
		merged = append(kept, layer.Records...)
	}
	return merged
}
