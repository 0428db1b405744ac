// Package tracker runs the analytics engine over a consistent snapshot of
// stored entries and goals.
package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/goalpace/internal/model"
	"github.com/theirongolddev/goalpace/internal/pipeline"
)

// Reader supplies entries, goals and goal history read at one point in time.
type Reader interface {
	Snapshot(ctx context.Context) (model.Dataset, error)
}

// Settings are the goal settings the engine needs from configuration.
type Settings struct {
	MonthlyTarget   float64 // single-goal target, entries per month
	BehindThreshold float64 // completion percent below which a goal is behind
	MultiGoal       bool    // count every entry toward the single-goal schedule
}

// Tracker produces reports from a Reader.
type Tracker struct {
	reader   Reader
	settings Settings
	log      *zap.Logger
}

// New returns a Tracker. A nil logger discards log output.
func New(r Reader, s Settings, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{reader: r, settings: s, log: log}
}

// Report reads a snapshot and computes every view for now. Entries the
// engine cannot use are skipped and logged at warn level.
func (t *Tracker) Report(ctx context.Context, now time.Time) (model.Report, error) {
	ds, err := t.reader.Snapshot(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("reading snapshot: %w", err)
	}

	report, skipped := pipeline.BuildReport(pipeline.ReportInput{
		Entries:       ds.Entries,
		Goals:         ds.Goals,
		History:       ds.History,
		MonthlyTarget: t.settings.MonthlyTarget,
		MultiGoal:     t.settings.MultiGoal,
		Priority:      pipeline.PriorityOptions{BehindThreshold: t.settings.BehindThreshold},
	}, now)

	if skipped.Total > 0 {
		t.log.Warn("skipped unusable entries",
			zap.Int("total", skipped.Total),
			zap.Any("by_reason", reasonCounts(skipped)),
		)
	}
	t.log.Debug("report built",
		zap.Time("now", now),
		zap.Int("entries", report.TotalEntries),
		zap.Int("goals", len(report.Goals)),
	)
	return report, nil
}

func reasonCounts(r pipeline.SkipReport) map[string]int {
	out := make(map[string]int, len(r.ByReason))
	for reason, n := range r.ByReason {
		out[string(reason)] = n
	}
	return out
}
