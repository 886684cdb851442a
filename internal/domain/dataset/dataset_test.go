package dataset_test

import (
	"fmt"
	"testing"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/dataset"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func districts(jurisdiction, region, source string, n int, start float64) []model.DistrictRecord {
	out := make([]model.DistrictRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.DistrictRecord{
			Jurisdiction:   jurisdiction,
			Region:         region,
			District:       fmt.Sprintf("%s District %d", jurisdiction, i+1),
			StartingSalary: start + float64(i)*1000,
			MedianSalary:   start + 10000,
			TopSalary:      start + 25000,
			YearsToTop:     20,
			Source:         source,
		})
	}
	return out
}

func jurisdictionsOf(records []model.DistrictRecord) map[string]int {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Jurisdiction]++
	}
	return counts
}

func TestMerge(t *testing.T) {
	Convey("Given a generic source with 5 Alabama and 5 Texas rows", t, func() {
		generic := append(
			districts("Alabama", "South", model.SourceGeneric, 5, 40000),
			districts("Texas", "South", model.SourceGeneric, 5, 50000)...,
		)

		Convey("When merging 9 detailed Alabama rows", func() {
			detailed := districts("Alabama", "South", model.SourceDetailed, 9, 42000)
			merged := dataset.Merge(generic, dataset.Layer{Name: model.SourceDetailed, Records: detailed})

			Convey("Then the result should hold 5 Texas and 9 Alabama rows", func() {
				So(len(merged), ShouldEqual, 14)
				So(jurisdictionsOf(merged), ShouldResemble, map[string]int{"Texas": 5, "Alabama": 9})
			})

			Convey("And every Alabama row should come from the detailed layer", func() {
				for _, r := range merged {
					if r.Jurisdiction == "Alabama" {
						So(r.Source, ShouldEqual, model.SourceDetailed)
					} else {
						So(r.Source, ShouldEqual, model.SourceGeneric)
					}
				}
			})

			Convey("And detailed rows should follow the surviving generic rows in order", func() {
				So(merged[0].Jurisdiction, ShouldEqual, "Texas")
				So(merged[5].District, ShouldEqual, "Alabama District 1")
				So(merged[13].District, ShouldEqual, "Alabama District 9")
			})

			Convey("And the inputs should be untouched", func() {
				So(len(generic), ShouldEqual, 10)
				So(generic[0].Source, ShouldEqual, model.SourceGeneric)
			})
		})

		Convey("When merging an empty detailed layer", func() {
			merged := dataset.Merge(generic, dataset.Layer{Name: model.SourceDetailed})

			Convey("Then the generic rows are returned as-is", func() {
				So(merged, ShouldResemble, generic)
			})
		})

		Convey("When merging with no layers", func() {
			So(dataset.Merge(generic), ShouldResemble, generic)
		})
	})

	Convey("Given three layers of increasing precedence", t, func() {
		base := append(
			districts("Ohio", "Midwest", "base", 2, 40000),
			districts("Iowa", "Midwest", "base", 2, 41000)...,
		)
		mid := dataset.Layer{Name: "mid", Records: append(
			districts("Ohio", "Midwest", "mid", 3, 42000),
			districts("Iowa", "Midwest", "mid", 1, 43000)...,
		)}
		top := dataset.Layer{Name: "top", Records: districts("Ohio", "Midwest", "top", 1, 44000)}

		merged := dataset.Merge(base, mid, top)

		Convey("Then each jurisdiction comes from exactly one layer, the highest covering it", func() {
			So(jurisdictionsOf(merged), ShouldResemble, map[string]int{"Ohio": 1, "Iowa": 1})
			for _, r := range merged {
				switch r.Jurisdiction {
				case "Ohio":
					So(r.Source, ShouldEqual, "top")
				case "Iowa":
					So(r.Source, ShouldEqual, "mid")
				}
			}
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given records across two regions", t, func() {
		records := append(append(
			districts("Texas", "South", model.SourceGeneric, 2, 50000),
			districts("Oregon", "West", model.SourceGeneric, 2, 48000)...),
			districts("Alabama", "South", model.SourceGeneric, 1, 40000)...,
		)

		Convey("When no selection is made", func() {
			out := dataset.Filter(records, types.Selection{})

			Convey("Then every record is kept in order", func() {
				So(out, ShouldResemble, records)
			})
		})

		Convey("When filtering by region", func() {
			out := dataset.Filter(records, types.Selection{Region: "South"})

			Convey("Then only that region remains", func() {
				So(jurisdictionsOf(out), ShouldResemble, map[string]int{"Texas": 2, "Alabama": 1})
			})

			Convey("And filtering again is a no-op", func() {
				again := dataset.Filter(out, types.Selection{Region: "South"})
				So(again, ShouldResemble, out)
			})
		})

		Convey("When filtering by region and jurisdictions", func() {
			sel := types.Selection{Region: "South", Jurisdictions: []string{"Texas", "Oregon"}}
			out := dataset.Filter(records, sel)

			Convey("Then both selectors apply", func() {
				So(jurisdictionsOf(out), ShouldResemble, map[string]int{"Texas": 2})
				So(dataset.Filter(out, sel), ShouldResemble, out)
			})
		})

		Convey("When the jurisdiction list contains the sentinel", func() {
			out := dataset.Filter(records, types.Selection{Jurisdictions: []string{"Texas", types.AllJurisdictions}})

			Convey("Then no jurisdiction filter applies", func() {
				So(len(out), ShouldEqual, len(records))
			})
		})

		Convey("When the jurisdiction list is empty", func() {
			out := dataset.Filter(records, types.Selection{Region: "West", Jurisdictions: []string{}})

			Convey("Then only the region applies", func() {
				So(jurisdictionsOf(out), ShouldResemble, map[string]int{"Oregon": 2})
			})
		})

		Convey("When selecting an unknown label", func() {
			Convey("Then nothing matches and the result is empty but non-nil", func() {
				out := dataset.Filter(records, types.Selection{Region: "Atlantis"})
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)

				out = dataset.Filter(records, types.Selection{Jurisdictions: []string{"texas"}})
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Given records across regions", t, func() {
		records := append(append(
			districts("Texas", "South", model.SourceGeneric, 2, 50000),
			districts("Oregon", "West", model.SourceGeneric, 1, 48000)...),
			districts("Alabama", "South", model.SourceGeneric, 1, 40000)...,
		)

		Convey("Then jurisdiction options are the sentinel then sorted names", func() {
			So(dataset.JurisdictionOptions(records, types.AllRegions), ShouldResemble,
				[]string{types.AllJurisdictions, "Alabama", "Oregon", "Texas"})
			So(dataset.JurisdictionOptions(records, "South"), ShouldResemble,
				[]string{types.AllJurisdictions, "Alabama", "Texas"})
			So(dataset.JurisdictionOptions(records, ""), ShouldResemble,
				[]string{types.AllJurisdictions, "Alabama", "Oregon", "Texas"})
		})

		Convey("And an unknown region offers only the sentinel", func() {
			So(dataset.JurisdictionOptions(records, "Nowhere"), ShouldResemble, []string{types.AllJurisdictions})
		})

		Convey("And region options are the sentinel then sorted regions", func() {
			So(dataset.RegionOptions(records), ShouldResemble, []string{types.AllRegions, "South", "West"})
			So(dataset.RegionOptions(nil), ShouldResemble, []string{types.AllRegions})
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given 3 jurisdictions with 2 districts each", t, func() {
		records := []model.DistrictRecord{
			{Jurisdiction: "Texas", Region: "South", StartingSalary: 50000, MedianSalary: 60000, TopSalary: 70000, YearsToTop: 20, BudgetSharePct: 50, StudentTeacherRatio: 15, AvgRaisePct: 1.5},
			{Jurisdiction: "Oregon", Region: "West", StartingSalary: 45000, MedianSalary: 55000, TopSalary: 75000, YearsToTop: 15, BudgetSharePct: 40, StudentTeacherRatio: 20, AvgRaisePct: 2},
			{Jurisdiction: "Texas", Region: "Southwest", StartingSalary: 54000, MedianSalary: 62000, TopSalary: 80000, YearsToTop: 25, BudgetSharePct: 60, StudentTeacherRatio: 17, AvgRaisePct: 2.5},
			{Jurisdiction: "Iowa", Region: "Midwest", StartingSalary: 40000, MedianSalary: 50000, TopSalary: 60000, YearsToTop: 18, BudgetSharePct: 45, StudentTeacherRatio: 14, AvgRaisePct: 2},
			{Jurisdiction: "Oregon", Region: "West", StartingSalary: 47000, MedianSalary: 57000, TopSalary: 77000, YearsToTop: 16, BudgetSharePct: 42, StudentTeacherRatio: 22, AvgRaisePct: 3},
			{Jurisdiction: "Iowa", Region: "Midwest", StartingSalary: 42000, MedianSalary: 52000, TopSalary: 64000, YearsToTop: 19, BudgetSharePct: 55, StudentTeacherRatio: 16, AvgRaisePct: 1},
		}

		summaries := dataset.Aggregate(records)

		Convey("Then there is one summary per jurisdiction in first-appearance order", func() {
			So(len(summaries), ShouldEqual, 3)
			So(summaries[0].Jurisdiction, ShouldEqual, "Texas")
			So(summaries[1].Jurisdiction, ShouldEqual, "Oregon")
			So(summaries[2].Jurisdiction, ShouldEqual, "Iowa")
		})

		Convey("And each field is the mean of its districts", func() {
			tx := summaries[0]
			So(tx.Records, ShouldEqual, 2)
			So(tx.StartingSalary, ShouldEqual, 52000)
			So(tx.MedianSalary, ShouldEqual, 61000)
			So(tx.TopSalary, ShouldEqual, 75000)
			So(tx.YearsToTop, ShouldEqual, 22.5)
			So(tx.BudgetSharePct, ShouldEqual, 55)
			So(tx.StudentTeacherRatio, ShouldEqual, 16)
			So(tx.AvgRaisePct, ShouldEqual, 2)
			So(tx.SalaryRange, ShouldEqual, 23000)

			or := summaries[1]
			So(or.StartingSalary, ShouldEqual, 46000)
			So(or.YearsToTop, ShouldEqual, 15.5)
			So(or.SalaryRange, ShouldEqual, 30000)

			ia := summaries[2]
			So(ia.TopSalary, ShouldEqual, 62000)
			So(ia.BudgetSharePct, ShouldEqual, 50)
		})

		Convey("And the region is taken from the first record", func() {
			So(summaries[0].Region, ShouldEqual, "South")
		})
	})

	Convey("Given no records", t, func() {
		summaries := dataset.Aggregate(nil)

		Convey("Then the result is empty but non-nil", func() {
			So(summaries, ShouldNotBeNil)
			So(summaries, ShouldBeEmpty)
		})
	})
}

func TestDataset(t *testing.T) {
	Convey("Given a dataset built from records", t, func() {
		records := districts("Texas", "South", model.SourceGeneric, 3, 50000)
		ds := dataset.New(records, dataset.WithDetailedAvailable(true))

		Convey("Then it reports its size and flags", func() {
			So(ds.Len(), ShouldEqual, 3)
			So(ds.JurisdictionCount(), ShouldEqual, 1)
			So(ds.DetailedAvailable(), ShouldBeTrue)
		})

		Convey("And mutating the caller's slice or a returned copy does not leak in", func() {
			records[0].StartingSalary = 1
			got := ds.Records()
			got[1].StartingSalary = 2
			So(ds.Records()[0].StartingSalary, ShouldEqual, 50000)
			So(ds.Records()[1].StartingSalary, ShouldEqual, 51000)
		})

		Convey("And option helpers delegate to the package functions", func() {
			So(ds.Regions(), ShouldResemble, []string{types.AllRegions, "South"})
			So(ds.Jurisdictions("South"), ShouldResemble, []string{types.AllJurisdictions, "Texas"})
			So(len(ds.Filter(types.Selection{Region: "West"})), ShouldEqual, 0)
		})
	})

	Convey("Given a nil dataset", t, func() {
		var ds *dataset.Dataset

		Convey("Then accessors are safe", func() {
			So(ds.Len(), ShouldEqual, 0)
			So(ds.DetailedAvailable(), ShouldBeFalse)
			So(ds.Records(), ShouldBeNil)
			So(ds.Filter(types.Selection{}), ShouldBeEmpty)
		})
	})
}
