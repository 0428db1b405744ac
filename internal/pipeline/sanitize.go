package pipeline

import (
	"math"

	"github.com/theirongolddev/goalpace/internal/model"
)

// SkipReason names why an entry was excluded from aggregation.
type SkipReason string

const (
	SkipNoDate      SkipReason = "missing_date"
	SkipBadAmount   SkipReason = "invalid_amount"
	SkipBadProgress SkipReason = "invalid_progress"
)

// SkipReport counts the entries Sanitize dropped.
type SkipReport struct {
	Total    int
	ByReason map[SkipReason]int
}

func (r *SkipReport) add(reason SkipReason) {
	if r.ByReason == nil {
		r.ByReason = make(map[SkipReason]int)
	}
	r.Total++
	r.ByReason[reason]++
}

// Sanitize drops entries whose numeric fields cannot be used: a zero date,
// or an amount or progress that is negative, NaN or infinite.
// Order of the kept entries is preserved.
func Sanitize(entries []model.Entry) ([]model.Entry, SkipReport) {
	var report SkipReport
	kept := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Date.IsZero():
			report.add(SkipNoDate)
		case !usable(e.Amount):
			report.add(SkipBadAmount)
		case !usable(e.Progress):
			report.add(SkipBadProgress)
		default:
			kept = append(kept, e)
		}
	}
	return kept, report
}

func usable(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
