package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the voting and realtime paths. A nil *Metrics records nothing.
type Metrics struct {
	VotesTotal        *prometheus.CounterVec
	VoteConflicts     prometheus.Counter
	EventsPublished   *prometheus.CounterVec
	EventsFailed      *prometheus.CounterVec
	RealtimeClients   prometheus.Gauge
	AnalyticsDuration prometheus.Histogram
	IssuesRateLimited prometheus.Counter
	PushNotifications *prometheus.CounterVec
}

// New registers every metric with reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityfix_votes_total",
			Help: "Vote toggles by outcome (voted, unvoted)",
		}, []string{"action"}),
		VoteConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "cityfix_vote_conflicts_total",
			Help: "Vote toggles rejected because a concurrent toggle on the same pair won",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityfix_realtime_events_published_total",
			Help: "Realtime events handed to the transport",
		}, []string{"event"}),
		EventsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityfix_realtime_events_failed_total",
			Help: "Realtime events the transport refused",
		}, []string{"event"}),
		RealtimeClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cityfix_realtime_clients",
			Help: "Currently connected websocket clients",
		}),
		AnalyticsDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cityfix_analytics_duration_seconds",
			Help:    "Duration of dashboard analytics computations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		IssuesRateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "cityfix_issues_rate_limited_total",
			Help: "Issue submissions rejected by the daily limit",
		}),
		PushNotifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityfix_push_notifications_total",
			Help: "Push notifications by result (sent, failed, skipped)",
		}, []string{"result"}),
	}
}

func (m *Metrics) Vote(action string) {
	if m == nil {
		return
	}
	m.VotesTotal.WithLabelValues(action).Inc()
}

func (m *Metrics) VoteConflict() {
	if m == nil {
		return
	}
	m.VoteConflicts.Inc()
}

func (m *Metrics) EventPublished(event string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(event).Inc()
}

func (m *Metrics) EventFailed(event string) {
	if m == nil {
		return
	}
	m.EventsFailed.WithLabelValues(event).Inc()
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.RealtimeClients.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.RealtimeClients.Dec()
}

// ObserveAnalytics records the duration of an analytics call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAnalytics(start time.Time) {
	if m == nil {
		return
	}
	m.AnalyticsDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IssueRateLimited() {
	if m == nil {
		return
	}
	m.IssuesRateLimited.Inc()
}

func (m *Metrics) Push(result string) {
	if m == nil {
		return
	}
	m.PushNotifications.WithLabelValues(result).Inc()
}
