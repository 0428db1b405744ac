package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/goalpace/internal/model"
)

// metrics holds the daemon's Prometheus collectors on a private registry so
// several services (and tests) can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	polls          *prometheus.CounterVec
	goalProgress   *prometheus.GaugeVec
	goalAlert      *prometheus.GaugeVec
	goalsBehind    prometheus.Gauge
	overallPct     prometheus.Gauge
	entries        prometheus.Gauge
	daysBehind     prometheus.Gauge
	skippedEntries prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goalpace_polls_total",
				Help: "Report polls by result",
			},
			[]string{"result"},
		),
		goalProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goalpace_goal_progress_percent",
				Help: "Month-to-date progress toward each goal's target",
			},
			[]string{"goal"},
		),
		goalAlert: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goalpace_goal_alert_level",
				Help: "Alert severity per goal (0 none, 1 low, 2 medium, 3 high)",
			},
			[]string{"goal"},
		),
		goalsBehind: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goalpace_goals_behind",
			Help: "Goals whose progress trails the pro-rated expected percent",
		}),
		overallPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goalpace_overall_progress_percent",
			Help: "Total earned over total target",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goalpace_month_entries",
			Help: "Entries logged this month through today",
		}),
		daysBehind: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goalpace_schedule_days_behind",
			Help: "Whole days of entries the schedule is behind",
		}),
		skippedEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goalpace_skipped_entries",
			Help: "Stored entries skipped as unusable in the last report",
		}),
	}
	m.registry.MustRegister(
		m.polls, m.goalProgress, m.goalAlert, m.goalsBehind,
		m.overallPct, m.entries, m.daysBehind, m.skippedEntries,
	)
	return m
}

// observe sets every gauge from r. Per-goal series are reset so deleted
// goals disappear.
func (m *metrics) observe(r model.Report) {
	m.goalProgress.Reset()
	m.goalAlert.Reset()
	for _, gp := range r.Goals {
		m.goalProgress.WithLabelValues(gp.Name).Set(gp.ProgressPct)
		m.goalAlert.WithLabelValues(gp.Name).Set(float64(gp.Alert.Severity()))
	}
	m.goalsBehind.Set(float64(r.Summary.BehindCount))
	m.overallPct.Set(r.Summary.OverallPct)
	m.entries.Set(float64(r.Schedule.ActualEntries))
	m.daysBehind.Set(float64(r.Schedule.DaysBehind))
	m.skippedEntries.Set(float64(r.SkippedEntries))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
