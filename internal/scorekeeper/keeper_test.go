package scorekeeper_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/scorekeeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []scorebook.Player {
	return []scorebook.Player{
		{ID: "p1", Name: "Ava", BattingOrder: 1},
		{ID: "p2", Name: "Ben", BattingOrder: 2},
		{ID: "b1", Name: "Bench One"},
	}
}

func setupKeeper(t *testing.T) (*scorekeeper.Keeper, *league.Mock, *metrics.Mock, *notifier.Mock, *pubsub.Mock) {
	t.Helper()
	store := league.NewMock()
	metricsMock := metrics.NewMock()
	notifierMock := notifier.NewMock()
	pubsubMock := pubsub.NewMock()
	keeper := scorekeeper.New(store, notifierMock, metricsMock, pubsubMock)
	t.Cleanup(keeper.Close)
	return keeper, store, metricsMock, notifierMock, pubsubMock
}

func waitForSaves(t *testing.T, store *league.Mock, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return store.MatchSaves() >= want
	}, time.Second, 5*time.Millisecond)
}

func TestCreateMatchPersistsAndPublishes(t *testing.T) {
	keeper, store, _, _, pubsubMock := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	require.NotEmpty(t, match.ID)

	waitForSaves(t, store, 1)

	stored, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, "River Hawks", stored.Opponent)

	require.Eventually(t, func() bool {
		return len(pubsubMock.Published(scorekeeper.TopicMatchEvents)) >= 1
	}, time.Second, 5*time.Millisecond)

	var event scorekeeper.MatchEvent
	payloads := pubsubMock.Published(scorekeeper.TopicMatchEvents)
	require.NoError(t, pubsubMock.ProcessMessage(payloads[0], &event))
	assert.Equal(t, pubsub.EventMatchUpdated, event.Type)
	assert.Equal(t, match.ID, event.MatchID)
	require.NotNil(t, event.Match)
	assert.Equal(t, "River Hawks", event.Match.Opponent)
}

func TestRecordOutcomeUpdatesAndCounts(t *testing.T) {
	keeper, store, metricsMock, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	updated, err := keeper.RecordOutcome(match.ID, "p1", 1, 1, scorebook.OutcomeSingle, 0)
	require.NoError(t, err)
	require.Len(t, updated.Records["p1"], 1)
	assert.Equal(t, scorebook.OutcomeSingle, updated.Records["p1"][0].Outcome)
	assert.Equal(t, 1, metricsMock.OutcomesRecorded())

	waitForSaves(t, store, 2)
	stored, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PlayerTotals("p1").Hits)
}

func TestRecordOutcomeInvalidDoesNotPersist(t *testing.T) {
	keeper, store, metricsMock, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	_, err = keeper.RecordOutcome(match.ID, "p1", 1, 2, scorebook.OutcomeSingle, 0)
	assert.ErrorIs(t, err, scorebook.ErrInvalidAtBat)
	assert.Zero(t, metricsMock.OutcomesRecorded())
	assert.Equal(t, 1, store.MatchSaves())
}

func TestFailedSaveKeepsInMemoryState(t *testing.T) {
	keeper, store, metricsMock, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	store.FailSaves(errors.New("disk on fire"))

	_, err = keeper.RecordOutcome(match.ID, "p1", 1, 1, scorebook.OutcomeDouble, 0)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return metricsMock.MatchSaveFailures() == 1
	}, time.Second, 5*time.Millisecond)

	// The optimistic in-memory state survives the failed save.
	got, err := keeper.Match(match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PlayerTotals("p1").Doubles)
}

func TestMatchReturnsIsolatedSnapshot(t *testing.T) {
	keeper, store, _, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	snapshot, err := keeper.Match(match.ID)
	require.NoError(t, err)
	snapshot.Opponent = "scribbled over"

	again, err := keeper.Match(match.ID)
	require.NoError(t, err)
	assert.Equal(t, "River Hawks", again.Opponent)
}

func TestMatchNotFound(t *testing.T) {
	keeper, _, _, _, _ := setupKeeper(t)

	_, err := keeper.Match("missing")
	assert.ErrorIs(t, err, league.ErrMatchNotFound)
	assert.True(t, scorekeeper.NotFound(err))
}

func TestDeleteMatchPublishesDeletion(t *testing.T) {
	keeper, store, _, _, pubsubMock := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	require.NoError(t, keeper.DeleteMatch(match.ID))

	_, err = store.GetMatch(match.ID)
	assert.ErrorIs(t, err, league.ErrMatchNotFound)

	payloads := pubsubMock.Published(scorekeeper.TopicMatchEvents)
	require.NotEmpty(t, payloads)
	var event scorekeeper.MatchEvent
	require.NoError(t, pubsubMock.ProcessMessage(payloads[len(payloads)-1], &event))
	assert.Equal(t, pubsub.EventMatchDeleted, event.Type)
	assert.Equal(t, match.ID, event.MatchID)
	assert.Nil(t, event.Match)
}

func TestStoreChangeReplacesSession(t *testing.T) {
	keeper, store, _, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	// An edit arriving through the store (another device) wins wholesale.
	edited := scorebook.NewMatch(match.ID, "2025-06-14", "North End Brewers", testRoster())
	require.NoError(t, store.SaveMatch(edited))

	got, err := keeper.Match(match.ID)
	require.NoError(t, err)
	assert.Equal(t, "North End Brewers", got.Opponent)
}

func TestRefreshReloadsFromStore(t *testing.T) {
	keeper, store, _, _, _ := setupKeeper(t)

	stored := scorebook.NewMatch("m1", "2025-06-14", "River Hawks", testRoster())
	require.NoError(t, store.SaveMatch(stored))

	got, err := keeper.Refresh("m1")
	require.NoError(t, err)
	assert.Equal(t, "River Hawks", got.Opponent)
}

func TestFinalizeSendsSummary(t *testing.T) {
	keeper, store, _, notifierMock, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	require.NoError(t, keeper.Finalize(match.ID, false))
	require.Len(t, notifierMock.SendMatchSummaryCalls, 1)
	assert.Equal(t, match.ID, notifierMock.SendMatchSummaryCalls[0].ID)
}

func TestSubstituteLifecycle(t *testing.T) {
	keeper, store, _, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	assert.ErrorIs(t, keeper.AddSubstitute(match.ID, "p1"), scorebook.ErrNotBenchPlayer)
	require.NoError(t, keeper.AddSubstitute(match.ID, "b1"))

	_, err = keeper.RecordOutcome(match.ID, "b1", 1, 1, scorebook.OutcomeSingle, 0)
	require.NoError(t, err)

	require.NoError(t, keeper.RemoveSubstitute(match.ID, "b1"))
	got, err := keeper.Match(match.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Substitutes)
	assert.NotContains(t, got.Records, "b1")
}

func TestBasesAndOuts(t *testing.T) {
	keeper, store, _, _, _ := setupKeeper(t)

	match, err := keeper.CreateMatch("2025-06-14", "River Hawks", testRoster())
	require.NoError(t, err)
	waitForSaves(t, store, 1)

	_, err = keeper.RecordOutcome(match.ID, "p1", 1, 1, scorebook.OutcomeSingle, 0)
	require.NoError(t, err)
	_, err = keeper.RecordOutcome(match.ID, "p2", 1, 1, scorebook.OutcomeOut, 0)
	require.NoError(t, err)

	bases, err := keeper.Bases(match.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, bases[1])

	outs, err := keeper.OutsInInning(match.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, outs)
}
