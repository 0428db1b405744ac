package daemon

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// startDigest schedules the daily digest. It returns nil when no schedule
// is configured.
func (s *Service) startDigest(ctx context.Context) (*cron.Cron, error) {
	if s.cfg.DigestSchedule == "" {
		return nil, nil
	}
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(s.cfg.DigestSchedule, func() { s.digest(ctx) }); err != nil {
		return nil, fmt.Errorf("digest schedule %q: %w", s.cfg.DigestSchedule, err)
	}
	c.Start()
	s.log.Info("digest scheduled", zap.String("spec", s.cfg.DigestSchedule))
	return c, nil
}

// digest re-polls and publishes a summary event. A day with no entry is
// logged as a warning.
func (s *Service) digest(ctx context.Context) {
	s.pollOnce(ctx)

	s.mu.RLock()
	snap := s.snapshot
	ok := s.hasSnapshot
	s.mu.RUnlock()
	if !ok {
		return
	}

	msg := digestMessage(snap)
	if !snap.LoggedToday {
		s.log.Warn("nothing logged today",
			zap.String("status", string(snap.Status)),
			zap.Int("days_behind", snap.DaysBehind))
	} else {
		s.log.Info("daily digest", zap.String("summary", msg))
	}
	s.publishEvent(Event{Type: EventDigest, Timestamp: snap.At, Snapshot: snap, Message: msg})
}

func digestMessage(snap Snapshot) string {
	msg := fmt.Sprintf("%s: %d of %.0f entries (expected %.1f)",
		snap.Status, snap.Entries, snap.MonthlyTarget, snap.ExpectedByToday)
	if snap.Goals > 0 {
		msg += fmt.Sprintf("; goals %.1f%% overall, %d of %d behind", snap.OverallPct, snap.BehindGoals, snap.Goals)
	}
	if !snap.LoggedToday {
		msg += "; nothing logged today"
	}
	return msg
}
