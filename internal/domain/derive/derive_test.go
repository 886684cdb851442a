package derive_test

import (
	"fmt"
	"testing"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRaiseRate(t *testing.T) {
	Convey("Given a starting salary of 50000 and a top salary of 100000", t, func() {
		Convey("When reaching top after 20 years", func() {
			rate := derive.RaiseRate(50000, 100000, 20)

			Convey("Then the compound raise should be about 3.53%", func() {
				So(rate, ShouldAlmostEqual, 3.53, 0.01)
				So(derive.RoundTo2(rate), ShouldEqual, 3.53)
			})
		})

		Convey("When years to top is zero", func() {
			Convey("Then the raise rate should fall back to zero", func() {
				So(derive.RaiseRate(50000, 100000, 0), ShouldEqual, 0)
				So(derive.RaiseRate(50000, 100000, -3), ShouldEqual, 0)
			})
		})
	})

	Convey("Given degenerate salaries", t, func() {
		Convey("Then a non-positive starting salary yields zero", func() {
			So(derive.RaiseRate(0, 100000, 20), ShouldEqual, 0)
			So(derive.RaiseRate(-1, 100000, 20), ShouldEqual, 0)
		})

		Convey("And a top salary below the start yields a negative rate", func() {
			So(derive.RaiseRate(60000, 50000, 10), ShouldBeLessThan, 0)
		})

		Convey("And a flat schedule yields zero growth", func() {
			So(derive.RaiseRate(50000, 50000, 10), ShouldEqual, 0)
		})
	})
}

func TestSalaryRange(t *testing.T) {
	Convey("Given starting and top salaries", t, func() {
		So(derive.SalaryRange(47000, 72000), ShouldEqual, 25000)
		So(derive.SalaryRange(60000, 50000), ShouldEqual, -10000)
	})
}

func TestProgression(t *testing.T) {
	Convey("Given a 4-year schedule from 40000 to 60000", t, func() {
		points := derive.Progression(40000, 60000, 4)

		Convey("Then it should have one point per year including year 0", func() {
			So(points, ShouldResemble, []model.ProgressionPoint{
				{Year: 0, Salary: 40000},
				{Year: 1, Salary: 45000},
				{Year: 2, Salary: 50000},
				{Year: 3, Salary: 55000},
				{Year: 4, Salary: 60000},
			})
		})
	})

	Convey("Given years to top of zero", t, func() {
		points := derive.Progression(50000, 80000, 0)

		Convey("Then the progression should be the single starting point", func() {
			So(points, ShouldResemble, []model.ProgressionPoint{{Year: 0, Salary: 50000}})
		})
	})

	Convey("Given a fractional mean years to top", t, func() {
		points := derive.Progression(40000, 50000, 2.5)

		Convey("Then years run to the floor and interpolate against the mean", func() {
			So(len(points), ShouldEqual, 3)
			So(points[2].Year, ShouldEqual, 2)
			So(points[2].Salary, ShouldAlmostEqual, 48000, 1e-9)
		})
	})

	Convey("Given a mean years below one", t, func() {
		points := derive.Progression(40000, 50000, 0.5)

		Convey("Then only the starting point remains", func() {
			So(points, ShouldResemble, []model.ProgressionPoint{{Year: 0, Salary: 40000}})
		})
	})
}

func TestProgressionSet(t *testing.T) {
	Convey("Given 15 jurisdiction summaries", t, func() {
		starts := []float64{
			52000, 41000, 47000, 41000, 60000,
			39000, 45000, 58000, 41000, 44000,
			50000, 43000, 55000, 38000, 46000,
		}
		summaries := make([]model.JurisdictionSummary, 0, len(starts))
		for i, s := range starts {
			summaries = append(summaries, model.JurisdictionSummary{
				Jurisdiction:   fmt.Sprintf("J%02d", i),
				StartingSalary: s,
				TopSalary:      s + 20000,
				YearsToTop:     20,
			})
		}

		series := derive.ProgressionSet(summaries, 10)

		Convey("Then exactly the 10 lowest starting salaries should be included", func() {
			So(len(series), ShouldEqual, 10)
			names := make([]string, 0, len(series))
			for _, s := range series {
				names = append(names, s.Jurisdiction)
			}
			// 38000, 39000, 41000 x3 in input order, 43000, 44000, 45000, 46000, 47000
			So(names, ShouldResemble, []string{
				"J13", "J05", "J01", "J03", "J08", "J11", "J09", "J06", "J14", "J02",
			})
		})

		Convey("And each series should run from the starting salary to the top", func() {
			first := series[0]
			So(first.Points[0].Salary, ShouldEqual, 38000)
			So(first.Points[len(first.Points)-1].Salary, ShouldEqual, 58000)
			So(len(first.Points), ShouldEqual, 21)
		})

		Convey("And the input should not be reordered", func() {
			So(summaries[0].Jurisdiction, ShouldEqual, "J00")
		})
	})

	Convey("Given fewer summaries than the cap", t, func() {
		series := derive.ProgressionSet([]model.JurisdictionSummary{
			{Jurisdiction: "Iowa", StartingSalary: 45000, TopSalary: 66000, YearsToTop: 0},
		}, 0)

		Convey("Then every summary is included and zero years collapse to one point", func() {
			So(len(series), ShouldEqual, 1)
			So(series[0].Points, ShouldResemble, []model.ProgressionPoint{{Year: 0, Salary: 45000}})
		})
	})

	Convey("Given no summaries", t, func() {
		So(derive.ProgressionSet(nil, 10), ShouldBeEmpty)
	})
}

func TestSchedule(t *testing.T) {
	Convey("Given Baldwin County's schedule of 47000 to 72000 over 25 years", t, func() {
		points := derive.Schedule(47000, 72000, 25, nil)

		Convey("Then milestones should interpolate and cap at top", func() {
			So(len(points), ShouldEqual, len(derive.DefaultMilestones))
			So(points[0], ShouldResemble, model.ProgressionPoint{Year: 0, Salary: 47000})
			So(points[2], ShouldResemble, model.ProgressionPoint{Year: 10, Salary: 57000})
			So(points[5], ShouldResemble, model.ProgressionPoint{Year: 25, Salary: 72000})
			So(points[6], ShouldResemble, model.ProgressionPoint{Year: 30, Salary: 72000})
		})
	})

	Convey("Given a schedule that does not divide evenly", t, func() {
		points := derive.Schedule(45000, 65000, 24, []int{5})

		Convey("Then salaries should be truncated to whole units", func() {
			So(points[0].Salary, ShouldEqual, 49166)
		})
	})

	Convey("Given zero years to top", t, func() {
		points := derive.Schedule(45000, 65000, 0, []int{0, 5})

		Convey("Then year 0 pays the start and later years the top", func() {
			So(points[0].Salary, ShouldEqual, 45000)
			So(points[1].Salary, ShouldEqual, 65000)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a well-formed record", t, func() {
		rec := model.DistrictRecord{StartingSalary: 45000, MedianSalary: 52000, TopSalary: 70000, YearsToTop: 22}

		Convey("Then no anomalies are reported", func() {
			So(derive.Validate(rec), ShouldBeEmpty)
		})
	})

	Convey("Given a record whose top salary is below its start", t, func() {
		rec := model.DistrictRecord{StartingSalary: 60000, MedianSalary: 55000, TopSalary: 50000, YearsToTop: 10}
		anomalies := derive.Validate(rec)

		Convey("Then it is flagged as non-monotonic", func() {
			So(len(anomalies), ShouldEqual, 1)
			So(anomalies[0].Kind, ShouldEqual, derive.AnomalyNonMonotonic)
		})
	})

	Convey("Given a record with zero years and zero salary", t, func() {
		rec := model.DistrictRecord{}
		anomalies := derive.Validate(rec)

		Convey("Then both problems are reported", func() {
			kinds := make([]string, 0, len(anomalies))
			for _, a := range anomalies {
				kinds = append(kinds, a.Kind)
			}
			So(kinds, ShouldContain, derive.AnomalyZeroYears)
			So(kinds, ShouldContain, derive.AnomalyNonPositiveSalary)
			So(kinds, ShouldNotContain, derive.AnomalyNonMonotonic)
		})
	})
}
