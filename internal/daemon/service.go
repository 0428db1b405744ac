// Package daemon provides the long-running background progress monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/goalpace/internal/model"
)

// ReportFunc produces a fresh report as of now.
type ReportFunc func(ctx context.Context, now time.Time) (model.Report, error)

// Config controls the daemon runtime behavior.
type Config struct {
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	// DigestSchedule is a six-field cron spec (with seconds) for the daily
	// digest. Empty disables the digest.
	DigestSchedule string
	// Clock returns the evaluation instant; defaults to time.Now.
	Clock func() time.Time
}

// Snapshot is a compact progress state for status and event payloads.
type Snapshot struct {
	At                 time.Time            `json:"at"`
	Status             model.ScheduleStatus `json:"status"`
	Entries            int                  `json:"entries"`
	MonthlyTarget      float64              `json:"monthly_target"`
	ExpectedByToday    float64              `json:"expected_by_today"`
	DaysBehind         int                  `json:"days_behind"`
	DaysAhead          int                  `json:"days_ahead"`
	LoggedToday        bool                 `json:"logged_today"`
	Goals              int                  `json:"goals"`
	BehindGoals        int                  `json:"behind_goals"`
	Earned             float64              `json:"earned"`
	Target             float64              `json:"target"`
	OverallPct         float64              `json:"overall_pct"`
	TotalRequiredDaily float64              `json:"total_required_daily"`
	Skipped            int                  `json:"skipped"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Entries       int     `json:"entries"`
	Earned        float64 `json:"earned"`
	OverallPct    float64 `json:"overall_pct"`
	BehindGoals   int     `json:"behind_goals"`
	StatusChanged bool    `json:"status_changed"`
}

func (d Delta) isZero() bool {
	return d.Entries == 0 &&
		d.Earned == 0 &&
		d.OverallPct == 0 &&
		d.BehindGoals == 0 &&
		!d.StatusChanged
}

// Event types.
const (
	EventSnapshot      = "snapshot"
	EventProgressDelta = "progress_delta"
	EventDigest        = "digest"
)

// Event is emitted whenever the progress snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
	Message   string    `json:"message,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DigestSchedule  string    `json:"digest_schedule,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	report  ReportFunc
	log     *zap.Logger
	metrics *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	lastReport  model.Report
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service. A nil log discards output.
func New(cfg Config, report ReportFunc, log *zap.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		report:    report,
		log:       log,
		metrics:   newMetrics(),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.Handle("/metrics", s.metrics.handler())
	return mux
}

// Run starts HTTP endpoints, polling and the digest schedule until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	digest, err := s.startDigest(ctx)
	if err != nil {
		_ = server.Close()
		return err
	}
	if digest != nil {
		defer digest.Stop()
	}

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	start := time.Now()
	now := s.cfg.Clock()
	report, err := s.report(ctx, now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.metrics.polls.WithLabelValues("error").Inc()
		s.log.Error("poll failed", zap.Error(err))
		return
	}

	snap := snapshotFromReport(report, now)
	s.metrics.observe(report)
	s.metrics.polls.WithLabelValues("ok").Inc()

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastReport = report
	s.lastPollAt = time.Now()
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		ev = Event{Type: EventSnapshot, Timestamp: now, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		ev = Event{Type: EventProgressDelta, Timestamp: now, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
	s.log.Debug("poll complete",
		zap.String("status", string(snap.Status)),
		zap.Int("entries", snap.Entries),
		zap.Int("behind_goals", snap.BehindGoals),
		zap.Duration("elapsed", time.Since(start)))
}

func snapshotFromReport(r model.Report, at time.Time) Snapshot {
	return Snapshot{
		At:                 at,
		Status:             r.Schedule.Status,
		Entries:            r.Schedule.ActualEntries,
		MonthlyTarget:      r.Schedule.Target,
		ExpectedByToday:    r.Schedule.ExpectedByToday,
		DaysBehind:         r.Schedule.DaysBehind,
		DaysAhead:          r.Schedule.DaysAhead,
		LoggedToday:        r.MonthlyProgress.LoggedToday,
		Goals:              r.Summary.GoalCount,
		BehindGoals:        r.Summary.BehindCount,
		Earned:             r.Summary.TotalEarned,
		Target:             r.Summary.TotalTarget,
		OverallPct:         r.Summary.OverallPct,
		TotalRequiredDaily: r.Summary.TotalRequiredDaily,
		Skipped:            r.SkippedEntries,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Entries:       curr.Entries - prev.Entries,
		Earned:        curr.Earned - prev.Earned,
		OverallPct:    curr.OverallPct - prev.OverallPct,
		BehindGoals:   curr.BehindGoals - prev.BehindGoals,
		StatusChanged: curr.Status != prev.Status,
	}
}

// publishEvent assigns the next ID, stores ev in the ring buffer and fans it
// out to stream subscribers without blocking.
func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.nextEventID++
	ev.ID = s.nextEventID
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DigestSchedule:  s.cfg.DigestSchedule,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ready := s.hasSnapshot
	report := s.lastReport
	s.mu.RUnlock()

	if !ready {
		http.Error(w, "no report yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, report)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, events)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
