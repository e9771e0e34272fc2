// Package audit runs WCAG contrast checks over a registry of color pairs
// and aggregates the outcomes into an immutable report.
package audit

import (
	"sort"
	"sync"
	"time"

	"github.com/evplan/contrast-audit/internal/utils"
	"github.com/evplan/contrast-audit/pkg/registry"
	"github.com/evplan/contrast-audit/pkg/wcag"
)

// Result is the audited outcome for a single test case. Derived once,
// never mutated.
type Result struct {
	Case  registry.TestCase
	Ratio float64
	Level wcag.Level
}

// Totals are the lossless pass/fail counters for a run.
type Totals struct {
	Count         int
	PassAA        int
	PassAAA       int
	LargeTextOnly int
	Fail          int
}

// Report is the aggregated outcome of one audit run.
type Report struct {
	GeneratedAt time.Time
	Results     []Result
	Totals      Totals
	Categories  []string
	ByCategory  map[string][]Result
}

// Run audits every test case sequentially, preserving input order.
func Run(cases []registry.TestCase) *Report {
	results := make([]Result, len(cases))
	for i, tc := range cases {
		results[i] = check(tc)
	}
	return Aggregate(results)
}

// RunConcurrent audits the cases across at most workers goroutines.
// Each case is independent, so the only synchronization is writing into
// the per-index slot; results come out in input order either way, which
// keeps reports byte-identical to a sequential Run.
func RunConcurrent(cases []registry.TestCase, workers int) *Report {
	if workers <= 1 || len(cases) <= 1 {
		return Run(cases)
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	results := make([]Result, len(cases))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = check(cases[i])
			}
		}()
	}
	for i := range cases {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return Aggregate(results)
}

func check(tc registry.TestCase) Result {
	ratio := wcag.ContrastRatio(tc.Foreground, tc.Background)
	level := wcag.Classify(ratio)
	utils.Log.WithField("case", tc.Name).WithField("category", tc.Category).
		Debugf("contrast ratio %.2f (%s)", ratio, level.Label())
	return Result{Case: tc, Ratio: ratio, Level: level}
}

// Aggregate reduces an ordered result list into a report. Category order
// is first appearance in the input; within a category the input order is
// kept, so the same results always aggregate to the same report.
func Aggregate(results []Result) *Report {
	r := &Report{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		ByCategory:  make(map[string][]Result),
	}
	for _, res := range results {
		r.Totals.Count++
		if res.Level.MeetsAA {
			r.Totals.PassAA++
		}
		if res.Level.MeetsAAA {
			r.Totals.PassAAA++
		}
		if res.Level.MeetsLargeTextAA && !res.Level.MeetsAA {
			r.Totals.LargeTextOnly++
		}
		if !res.Level.MeetsLargeTextAA {
			r.Totals.Fail++
		}
		if _, seen := r.ByCategory[res.Case.Category]; !seen {
			r.Categories = append(r.Categories, res.Case.Category)
		}
		r.ByCategory[res.Case.Category] = append(r.ByCategory[res.Case.Category], res)
	}
	return r
}

// Percent returns part as a percentage of the run total, 0 when the run
// was empty.
func (t Totals) Percent(part int) float64 {
	if t.Count == 0 {
		return 0
	}
	return float64(part) / float64(t.Count) * 100.0
}

// Verdict summarizes the run: "fully compliant" when nothing fails AA,
// "mostly compliant" at >=95% AA pass, otherwise "non-compliant".
func (r *Report) Verdict() string {
	switch {
	case r.Totals.PassAA == r.Totals.Count:
		return "fully compliant"
	case r.Totals.Percent(r.Totals.PassAA) >= 95.0:
		return "mostly compliant"
	default:
		return "non-compliant"
	}
}

// FailingAA returns every result below the AA normal-text threshold, in
// report order.
func (r *Report) FailingAA() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Level.MeetsAA {
			out = append(out, res)
		}
	}
	return out
}

// NeededIncreasePercent is the relative ratio increase required for a
// failing result to reach the AA normal-text threshold.
func NeededIncreasePercent(ratio float64) float64 {
	return (wcag.AANormal/ratio - 1) * 100.0
}

// SortedByRatio returns a copy of the results ordered worst-first, for
// remediation-oriented views. The report itself stays in input order.
func (r *Report) SortedByRatio() []Result {
	out := make([]Result, len(r.Results))
	copy(out, r.Results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio < out[j].Ratio
	})
	return out
}
