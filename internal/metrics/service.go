package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		OutcomesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_outcomes_recorded_total",
			Help: "The total number of at-bat outcomes recorded.",
		}),
		MatchSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_match_saves_total",
			Help: "The total number of background match write-throughs attempted.",
		}),
		MatchSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_match_save_failures_total",
			Help: "The total number of background match write-throughs that failed.",
		}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorebook_ranking_duration_seconds",
			Help:    "The duration of ranking computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorebook_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scorebook_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.OutcomesRecorded,
		s.MatchSaves,
		s.MatchSaveFailures,
		s.RankingDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncOutcomesRecorded() {
	s.OutcomesRecorded.Inc()
}

func (s *Service) IncMatchSaves() {
	s.MatchSaves.Inc()
}

func (s *Service) IncMatchSaveFailures() {
	s.MatchSaveFailures.Inc()
}

func (s *Service) ObserveRankingDuration(duration float64) {
	s.RankingDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
