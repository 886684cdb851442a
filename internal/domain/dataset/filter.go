package dataset

import (
	"sort"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
)

// Filter keeps the records matching sel: region first, then the
// jurisdiction set. Matching is exact. The input is not modified and the
// result is always a new slice.
func Filter(records []model.DistrictRecord, sel types.Selection) []model.DistrictRecord {
	sel = sel.Normalize()

	var wanted map[string]struct{}
	if len(sel.Jurisdictions) > 0 {
		wanted = make(map[string]struct{}, len(sel.Jurisdictions))
		for _, j := range sel.Jurisdictions {
			wanted[j] = struct{}{}
		}
	}

	out := make([]model.DistrictRecord, 0, len(records))
	for _, r := range records {
		if !sel.AllRegionsSelected() && r.Region != sel.Region {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[r.Jurisdiction]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// JurisdictionOptions lists the sentinel followed by the sorted distinct
// jurisdictions present under region.
func JurisdictionOptions(records []model.DistrictRecord, region string) []string {
	scoped := Filter(records, types.Selection{Region: region})
	names := make([]string, 0, len(scoped))
	for _, r := range scoped {
		names = append(names, r.Jurisdiction)
	}
	return withSentinel(types.AllJurisdictions, names)
}

// RegionOptions lists the sentinel followed by the sorted distinct regions.
func RegionOptions(records []model.DistrictRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Region)
	}
	return withSentinel(types.AllRegions, names)
}

func withSentinel(sentinel string, names []string) []string {
	seen := make(map[string]struct{}, len(names))
	distinct := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || n == sentinel {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}
	sort.Strings(distinct)
	return append([]string{sentinel}, distinct...)
}
