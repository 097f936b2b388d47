package http

import (
	"net/http"

	"github.com/sandlotstats/scorebook/internal/config"
	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorekeeper"
)

type Server struct {
	Store          league.Store
	Keeper         scorekeeper.Scorekeeper
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux

	pubsub pubsub.PubSubClient
}
