// Package sampledata produces the synthetic generic salary table and the
// detailed district table used for demos and tests.
package sampledata

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

// Defaults used by Generic.
const (
	DefaultSeed              uint64 = 2024
	DefaultDistrictsPerState        = 5
)

// Generation ranges.
const (
	yearsMin         = 15
	yearsMax         = 26
	medianShareMin   = 0.6
	medianShareRange = 0.1
	budgetMin        = 40.0
	budgetRange      = 20.0
	teachersMin      = 50
	teachersMax      = 1000
	ratioMin         = 12.0
	ratioRange       = 10.0
)

// Option configures Generic.
type Option func(*generator)

type generator struct {
	seed      uint64
	districts int
	profiles  []Profile
}

// WithSeed changes the random stream. The same seed always yields the
// same table.
func WithSeed(seed uint64) Option {
	return func(g *generator) {
		g.seed = seed
	}
}

// WithDistrictsPerState sets how many districts each state gets.
func WithDistrictsPerState(n int) Option {
	return func(g *generator) {
		if n > 0 {
			g.districts = n
		}
	}
}

// WithProfiles replaces the state table.
func WithProfiles(profiles []Profile) Option {
	return func(g *generator) {
		g.profiles = profiles
	}
}

// Generic synthesizes districts for every profile, in profile order.
// Each state draws from its own stream so adding a state does not change
// the others.
func Generic(opts ...Option) []model.DistrictRecord {
	g := &generator{seed: DefaultSeed, districts: DefaultDistrictsPerState, profiles: Profiles}
	for _, opt := range opts {
		opt(g)
	}

	out := make([]model.DistrictRecord, 0, len(g.profiles)*g.districts)
	for _, p := range g.profiles {
		rng := rand.New(rand.NewPCG(g.seed, stateSeed(p.State))) //nolint:gosec // sample data, not security sensitive
		for i := 0; i < g.districts; i++ {
			out = append(out, district(rng, p, i+1))
		}
	}
	return out
}

func district(rng *rand.Rand, p Profile, n int) model.DistrictRecord {
	starting := between(rng, p.BaseMin, p.BaseMax)
	top := between(rng, p.TopMin, p.TopMax)
	years := between(rng, yearsMin, yearsMax)
	median := math.Trunc(float64(starting) + float64(top-starting)*(medianShareMin+rng.Float64()*medianShareRange))

	return model.DistrictRecord{
		Jurisdiction:        p.State,
		Region:              p.Region,
		District:            fmt.Sprintf("%s District %d", p.State, n),
		StartingSalary:      float64(starting),
		MedianSalary:        median,
		TopSalary:           float64(top),
		YearsToTop:          years,
		BudgetSharePct:      round1(budgetMin + rng.Float64()*budgetRange),
		NumTeachers:         between(rng, teachersMin, teachersMax),
		StudentTeacherRatio: round1(ratioMin + rng.Float64()*ratioRange),
		AvgRaisePct:         derive.RoundTo2(derive.RaiseRate(float64(starting), float64(top), years)),
		Source:              model.SourceGeneric,
	}
}

// Detailed returns the DetailedDistricts as records of DetailedState.
func Detailed() []model.DistrictRecord {
	out := make([]model.DistrictRecord, 0, len(DetailedDistricts))
	for _, d := range DetailedDistricts {
		out = append(out, model.DistrictRecord{
			Jurisdiction:        DetailedState,
			Region:              d.Region,
			District:            d.Name,
			StartingSalary:      float64(d.StartingSalary),
			MedianSalary:        float64(d.MedianSalary),
			TopSalary:           float64(d.TopSalary),
			YearsToTop:          d.YearsToTop,
			BudgetSharePct:      d.BudgetSharePct,
			NumTeachers:         d.NumTeachers,
			StudentTeacherRatio: d.StudentTeacherRatio,
			AvgRaisePct:         derive.RoundTo2(derive.RaiseRate(float64(d.StartingSalary), float64(d.TopSalary), d.YearsToTop)),
			DataSource:          d.DataSource,
			Source:              model.SourceDetailed,
		})
	}
	return out
}

// between returns an int in [lo, hi).
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func stateSeed(state string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(state))
	return h.Sum64()
}
