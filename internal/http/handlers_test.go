package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandlotstats/scorebook/internal/config"
	"github.com/sandlotstats/scorebook/internal/database"
	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/scorekeeper"
	"github.com/sandlotstats/scorebook/internal/stats"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifierMock notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	leagueStore := league.New(db)
	cfg := config.Config{Port: "8080"}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubMock := pubsub.NewMock()
	keeper := scorekeeper.New(leagueStore, notifierMock, metricsSvc, pubsubMock)

	server := NewServer(leagueStore, keeper, metricsSvc, metricsHandler, cfg, notifierMock, pubsubMock)

	teardown := func() {
		keeper.Close()
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func createTestMatch(t *testing.T, server *Server) scorebook.Match {
	t.Helper()
	rr := postJSON(t, server, "/match/create", map[string]any{
		"date":     "2025-06-14",
		"opponent": "River Hawks",
		"players": []scorebook.Player{
			{ID: "p1", Name: "Ava", BattingOrder: 1},
			{ID: "p2", Name: "Ben", BattingOrder: 2},
			{ID: "b1", Name: "Bench One"},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var match scorebook.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &match))
	require.NotEmpty(t, match.ID)
	return match
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := get(t, server, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestCreateMatchValidatesDate(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/match/create", map[string]any{
		"date":     "June 14th",
		"opponent": "River Hawks",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordOutcomeFlow(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	match := createTestMatch(t, server)

	rr := postJSON(t, server, "/match/record-outcome", map[string]any{
		"match_id":  match.ID,
		"player_id": "p1",
		"inning":    1,
		"outcome":   "single",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated scorebook.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	require.Len(t, updated.Records["p1"], 1)
	assert.Equal(t, scorebook.OutcomeSingle, updated.Records["p1"][0].Outcome)

	rr = get(t, server, "/match/bases?matchID="+match.ID+"&inning=1")
	require.Equal(t, http.StatusOK, rr.Code)
	var bases map[int][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bases))
	assert.Equal(t, []string{"p1"}, bases[1])
}

func TestRecordOutcomeRejectsUnknownOutcome(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	match := createTestMatch(t, server)

	rr := postJSON(t, server, "/match/record-outcome", map[string]any{
		"match_id":  match.ID,
		"player_id": "p1",
		"inning":    1,
		"outcome":   "grand-slam",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMatchNotFound(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := get(t, server, "/match?matchID=missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	createTestMatch(t, server)

	// The save happens in the background; wait for it to land.
	require.Eventually(t, func() bool {
		rr := get(t, server, "/matches")
		if rr.Code != http.StatusOK {
			return false
		}
		var matches []scorebook.Match
		if err := json.Unmarshal(rr.Body.Bytes(), &matches); err != nil {
			return false
		}
		return len(matches) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlayersUpsertAndList(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/players/upsert", []scorebook.Player{
		{ID: "p1", Name: "Ava", BattingOrder: 1},
		{ID: "p2", Name: "Ben", BattingOrder: 2},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, "/players")
	require.Equal(t, http.StatusOK, rr.Code)
	var players []scorebook.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 2)
}

func TestDeletePlayerRequiresID(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/players/delete", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTotalsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	match := createTestMatch(t, server)
	rr := postJSON(t, server, "/match/record-outcome", map[string]any{
		"match_id":  match.ID,
		"player_id": "p1",
		"inning":    1,
		"outcome":   "homerun",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool {
		rr := get(t, server, "/totals")
		if rr.Code != http.StatusOK {
			return false
		}
		var aggs []stats.PlayerAggregate
		if err := json.Unmarshal(rr.Body.Bytes(), &aggs); err != nil {
			return false
		}
		return len(aggs) == 1 && aggs[0].HomeRuns == 1
	}, time.Second, 10*time.Millisecond)
}

func TestTotalsHandlerRejectsUnknownWindow(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := get(t, server, "/totals?window=season")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRankingsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	match := createTestMatch(t, server)
	rr := postJSON(t, server, "/match/record-outcome", map[string]any{
		"match_id":  match.ID,
		"player_id": "p1",
		"inning":    1,
		"outcome":   "single",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool {
		rr := get(t, server, "/rankings?category=hits")
		if rr.Code != http.StatusOK {
			return false
		}
		var ranking stats.Ranking
		if err := json.Unmarshal(rr.Body.Bytes(), &ranking); err != nil {
			return false
		}
		return len(ranking.Entries) == 1 && ranking.Entries[0].Rank == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRankingsHandlerRejectsUnknownCategory(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := get(t, server, "/rankings?category=dingers")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotifyRankingHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	server, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	rr := get(t, server, "/notify-ranking?category=hits")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, notifierMock.SendRankingCalls, 1)
}

func TestRankingCommandHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	notifierMock.FormatRankingResponseFunc = func(ranking stats.Ranking) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	server, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	rr := get(t, server, "/slack/command/ranking?category=hits")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestFinalizeMatchHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	server, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	match := createTestMatch(t, server)

	rr := get(t, server, "/match/finalize?matchID="+match.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notifierMock.SendMatchSummaryCalls, 1)
	assert.Equal(t, match.ID, notifierMock.SendMatchSummaryCalls[0].ID)
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	match := createTestMatch(t, server)

	// Let the background save land before deleting, so it cannot resurrect
	// the row afterwards.
	require.Eventually(t, func() bool {
		rr := get(t, server, "/matches")
		var matches []scorebook.Match
		return json.Unmarshal(rr.Body.Bytes(), &matches) == nil && len(matches) == 1
	}, time.Second, 10*time.Millisecond)

	rr := get(t, server, fmt.Sprintf("/clear?matchID=%s", match.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, "/match?matchID="+match.ID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := get(t, server, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}
