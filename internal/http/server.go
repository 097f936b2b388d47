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

func NewServer(store league.Store, keeper scorekeeper.Scorekeeper, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Keeper:         keeper,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/upsert", Chain(s.UpsertPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/delete", Chain(s.DeletePlayerHandler(), paramsMiddleware))

	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/create", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/delete", Chain(s.DeleteMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/refresh", Chain(s.RefreshMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/finalize", Chain(s.FinalizeMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match/record-outcome", Chain(s.RecordOutcomeHandler(), paramsMiddleware))
	s.Router.Handle("/match/add-at-bat", Chain(s.AddAtBatHandler(), paramsMiddleware))
	s.Router.Handle("/match/remove-at-bat", Chain(s.RemoveAtBatHandler(), paramsMiddleware))
	s.Router.Handle("/match/substitutes/add", Chain(s.AddSubstituteHandler(), paramsMiddleware))
	s.Router.Handle("/match/substitutes/remove", Chain(s.RemoveSubstituteHandler(), paramsMiddleware))
	s.Router.Handle("/match/stolen-bases", Chain(s.AdjustStolenBasesHandler(), paramsMiddleware))
	s.Router.Handle("/match/bases", Chain(s.BasesHandler(), paramsMiddleware))
	s.Router.Handle("/match/outs", Chain(s.OutsHandler(), paramsMiddleware))

	s.Router.Handle("/totals", Chain(s.TotalsHandler(), paramsMiddleware))
	s.Router.Handle("/rankings", Chain(s.RankingsHandler(), paramsMiddleware))
	s.Router.Handle("/notify-ranking", Chain(s.NotifyRankingHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/ranking", Chain(s.RankingCommandHandler(), paramsMiddleware))

	s.Router.Handle("/match-events", Chain(s.MatchEventsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
