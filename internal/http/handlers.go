package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/scorekeeper"
	"github.com/sandlotstats/scorebook/internal/stats"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			if err := s.Keeper.DeleteMatch(matchID); err != nil {
				writeKeeperError(w, err, "Failed to clear match")
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeKeeperError maps scoring errors onto HTTP status codes.
func writeKeeperError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, league.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, scorebook.ErrInvalidAtBat),
		errors.Is(err, scorebook.ErrAtBatUnavailable),
		errors.Is(err, scorebook.ErrLastAtBat),
		errors.Is(err, scorebook.ErrUnknownOutcome),
		errors.Is(err, scorebook.ErrNotBenchPlayer):
		status = http.StatusBadRequest
	}
	log.Error(msg, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}

// decodeBody unmarshals a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) UpsertPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var players []scorebook.Player
		if !decodeBody(w, r, &players) {
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have upserted players", "count", len(players))
			w.Write([]byte("OK"))
			return
		}
		if err := s.Store.UpsertPlayers(players); err != nil {
			http.Error(w, "Failed to upsert players", http.StatusInternalServerError)
			log.Error("Failed to upsert players", "error", err)
			return
		}
		roster, err := s.Store.GetAllPlayers()
		if err == nil {
			if err := s.pubsub.SendMessage(scorekeeper.TopicMatchEvents, rosterEvent(roster)); err != nil {
				log.Error("Failed to publish roster event", "error", err)
			}
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.DeletePlayer(playerID); err != nil {
			http.Error(w, "Failed to delete player", http.StatusInternalServerError)
			log.Error("Failed to delete player", "error", err, "playerID", playerID)
			return
		}
		roster, err := s.Store.GetAllPlayers()
		if err == nil {
			if err := s.pubsub.SendMessage(scorekeeper.TopicMatchEvents, rosterEvent(roster)); err != nil {
				log.Error("Failed to publish roster event", "error", err)
			}
		}
		w.Write([]byte("OK"))
	}
}

// rosterEvent wraps the full roster in the event envelope live clients consume.
func rosterEvent(roster []scorebook.Player) map[string]any {
	return map[string]any{
		"type":   pubsub.EventRosterUpdated,
		"roster": roster,
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Keeper.Matches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches", "error", err)
			return
		}
		writeJSON(w, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		match, err := s.Keeper.Match(matchID)
		if err != nil {
			writeKeeperError(w, err, "Failed to get match")
			return
		}
		writeJSON(w, match)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Date     string             `json:"date"`
			Opponent string             `json:"opponent"`
			Players  []scorebook.Player `json:"players"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		match, err := s.Keeper.CreateMatch(req.Date, req.Opponent, req.Players)
		if err != nil {
			writeKeeperError(w, err, "Failed to create match")
			return
		}
		writeJSON(w, match)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if err := s.Keeper.DeleteMatch(matchID); err != nil {
			writeKeeperError(w, err, "Failed to delete match")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) RefreshMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		match, err := s.Keeper.Refresh(matchID)
		if err != nil {
			writeKeeperError(w, err, "Failed to refresh match")
			return
		}
		writeJSON(w, match)
	}
}

func (s *Server) FinalizeMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if err := s.Keeper.Finalize(matchID, isDryRunFromContext(r)); err != nil {
			writeKeeperError(w, err, "Failed to finalize match")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) RecordOutcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
			Inning   int    `json:"inning"`
			Seq      int    `json:"seq"`
			Outcome  string `json:"outcome"`
			RBI      int    `json:"rbi"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Seq == 0 {
			req.Seq = 1
		}
		match, err := s.Keeper.RecordOutcome(req.MatchID, req.PlayerID, req.Inning, req.Seq, scorebook.Outcome(req.Outcome), req.RBI)
		if err != nil {
			writeKeeperError(w, err, "Failed to record outcome")
			return
		}
		writeJSON(w, match)
	}
}

func (s *Server) AddAtBatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
			Inning   int    `json:"inning"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		rec, err := s.Keeper.AddAtBat(req.MatchID, req.PlayerID, req.Inning)
		if err != nil {
			writeKeeperError(w, err, "Failed to add at-bat")
			return
		}
		writeJSON(w, rec)
	}
}

func (s *Server) RemoveAtBatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
			Inning   int    `json:"inning"`
			Seq      int    `json:"seq"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Keeper.RemoveAtBat(req.MatchID, req.PlayerID, req.Inning, req.Seq); err != nil {
			writeKeeperError(w, err, "Failed to remove at-bat")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) AddSubstituteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Keeper.AddSubstitute(req.MatchID, req.PlayerID); err != nil {
			writeKeeperError(w, err, "Failed to add substitute")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) RemoveSubstituteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Keeper.RemoveSubstitute(req.MatchID, req.PlayerID); err != nil {
			writeKeeperError(w, err, "Failed to remove substitute")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) AdjustStolenBasesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID  string `json:"match_id"`
			PlayerID string `json:"player_id"`
			Inning   int    `json:"inning"`
			Delta    int    `json:"delta"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Keeper.AdjustStolenBases(req.MatchID, req.PlayerID, req.Inning, req.Delta); err != nil {
			writeKeeperError(w, err, "Failed to adjust stolen bases")
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) BasesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		inning, err := strconv.Atoi(r.URL.Query().Get("inning"))
		if err != nil || inning < 1 {
			http.Error(w, "inning must be a positive integer", http.StatusBadRequest)
			return
		}
		bases, err := s.Keeper.Bases(matchID, inning)
		if err != nil {
			writeKeeperError(w, err, "Failed to get bases")
			return
		}
		writeJSON(w, bases)
	}
}

func (s *Server) OutsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		inning, err := strconv.Atoi(r.URL.Query().Get("inning"))
		if err != nil || inning < 1 {
			http.Error(w, "inning must be a positive integer", http.StatusBadRequest)
			return
		}
		outs, err := s.Keeper.OutsInInning(matchID, inning)
		if err != nil {
			writeKeeperError(w, err, "Failed to get outs")
			return
		}
		writeJSON(w, map[string]int{"inning": inning, "outs": outs})
	}
}

// windowedMatches loads all matches and narrows them to the requested window.
// The 'window' parameter defaults to all; 'ref' (YYYY-MM-DD) defaults to today.
func (s *Server) windowedMatches(r *http.Request) ([]*scorebook.Match, stats.Window, error) {
	window := stats.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = stats.WindowAll
	}
	if !window.Valid() {
		return nil, window, fmt.Errorf("unknown window %q", window)
	}
	ref := time.Now()
	if refStr := r.URL.Query().Get("ref"); refStr != "" {
		parsed, err := time.Parse("2006-01-02", refStr)
		if err != nil {
			return nil, window, fmt.Errorf("ref must be YYYY-MM-DD")
		}
		ref = parsed
	}
	matches, err := s.Keeper.Matches()
	if err != nil {
		return nil, window, err
	}
	return stats.FilterWindow(matches, window, ref), window, nil
}

func (s *Server) TotalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, _, err := s.windowedMatches(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to aggregate totals", "error", err)
			return
		}
		writeJSON(w, stats.Aggregate(matches))
	}
}

func (s *Server) rankingFromRequest(r *http.Request) (stats.Ranking, error) {
	category := stats.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = stats.CategoryBattingAverage
	}
	if !category.Valid() {
		return stats.Ranking{}, fmt.Errorf("unknown category %q", category)
	}
	matches, _, err := s.windowedMatches(r)
	if err != nil {
		return stats.Ranking{}, err
	}
	start := time.Now()
	ranking := stats.Rank(stats.Aggregate(matches), category, len(matches))
	s.Metrics.ObserveRankingDuration(time.Since(start).Seconds())
	return ranking, nil
}

func (s *Server) RankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := s.rankingFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to compute ranking", "error", err)
			return
		}
		writeJSON(w, ranking)
	}
}

func (s *Server) NotifyRankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := s.rankingFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to compute ranking", "error", err)
			return
		}
		if err := s.Notifier.SendRanking(ranking, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send ranking", http.StatusInternalServerError)
			log.Error("Failed to send ranking", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// RankingCommandHandler returns a handler for the /ranking Slack command.
func (s *Server) RankingCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := s.rankingFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to compute ranking", "error", err)
			return
		}

		msg, err := s.Notifier.FormatRankingResponse(ranking)
		if err != nil {
			http.Error(w, "Failed to format ranking", http.StatusInternalServerError)
			log.Error("Failed to format ranking", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// MatchEventsHandler receives Pub/Sub push deliveries of match events and
// reloads the affected session so every device converges on the stored state.
func (s *Server) MatchEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match event message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		event := scorekeeper.MatchEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		switch event.Type {
		case pubsub.EventMatchUpdated:
			if _, err := s.Keeper.Refresh(event.MatchID); err != nil && !errors.Is(err, league.ErrMatchNotFound) {
				log.Error("Failed to refresh match from event", "error", err, "matchID", event.MatchID)
			}
		case pubsub.EventMatchDeleted:
			// Nothing to reload; the watcher already dropped the session.
		}
		w.Write([]byte("OK"))
	}
}
