package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	OutcomesRecorded   prometheus.Counter
	MatchSaves         prometheus.Counter
	MatchSaveFailures  prometheus.Counter
	RankingDuration    prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
