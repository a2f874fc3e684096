// Package filter isolates anomalous rings from a scored metrics table.
//
// A run applies an ordered list of policies to the record set and keeps the
// first non-empty survivor set, sorted by correlation strength descending.
// The input is never mutated; running twice yields identical output.
package filter

import (
	"sort"

	"github.com/AstraForge/skyhound-cli/internal/ring"
)

// Summary are the counts reported for the applied policy. Conditions are
// accounted in order (mask, then hurst, then corr), so the exclusion counts
// and the survivor count partition the total.
type Summary struct {
	Total           int    `json:"total"`
	ExcludedByMask  int    `json:"excluded_by_mask"`
	ExcludedByHurst int    `json:"excluded_by_hurst"`
	ExcludedByCorr  int    `json:"excluded_by_corr"`
	Policy          string `json:"policy"`
	FallbackApplied bool   `json:"fallback_applied"`
	Survivors       int    `json:"survivors"`
}

// Result is the outcome of one filter run.
type Result struct {
	Survivors []ring.Record
	Summary   Summary
}

// Run tries each policy in order and returns the result of the first one
// with survivors. If every policy comes up empty, the result reflects the
// last policy tried: an empty survivor set is a valid terminal outcome, not
// an error.
func Run(records []ring.Record, policies []Policy) Result {
	var res Result
	for i, p := range policies {
		res = apply(records, p)
		res.Summary.FallbackApplied = i > 0
		if len(res.Survivors) > 0 {
			break
		}
	}
	sort.SliceStable(res.Survivors, func(i, j int) bool {
		return res.Survivors[i].CorrIP > res.Survivors[j].CorrIP
	})
	return res
}

func apply(records []ring.Record, p Policy) Result {
	sum := Summary{Total: len(records), Policy: p.Name}
	survivors := make([]ring.Record, 0, len(records))
	for _, r := range records {
		if p.UseMask && !(abs(r.Lat) > p.GalacticCut) {
			sum.ExcludedByMask++
			continue
		}
		// NaN scores fail every cut.
		if p.UseHurst && !(r.HurstI > p.HurstMin) {
			sum.ExcludedByHurst++
			continue
		}
		if !(r.CorrIP > p.CorrMin) {
			sum.ExcludedByCorr++
			continue
		}
		survivors = append(survivors, r)
	}
	sum.Survivors = len(survivors)
	return Result{Survivors: survivors, Summary: sum}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
