package scorekeeper

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorebook"
)

var _ Scorekeeper = (*Keeper)(nil)

// New creates a Keeper and subscribes it to store changes so that edits made
// elsewhere (another device, the seeder) replace the in-memory sessions
// wholesale.
func New(store league.Store, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Keeper {
	k := &Keeper{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		sessions: make(map[string]*scorebook.Session),
	}
	k.unsubscribe = store.WatchMatches(k.applySnapshot)
	return k
}

// Close detaches the Keeper from store notifications.
func (k *Keeper) Close() {
	if k.unsubscribe != nil {
		k.unsubscribe()
	}
}

// applySnapshot replaces cached sessions with the store's view. Sessions for
// matches no longer in the store are dropped.
func (k *Keeper) applySnapshot(matches []*scorebook.Match) {
	k.mu.Lock()
	defer k.mu.Unlock()

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m.ID] = struct{}{}
		if sess, ok := k.sessions[m.ID]; ok {
			sess.Replace(m)
		}
	}
	for id := range k.sessions {
		if _, ok := seen[id]; !ok {
			delete(k.sessions, id)
		}
	}
}

// session returns the cached session for a match, loading it from the store
// on first use. The caller must hold k.mu.
func (k *Keeper) session(matchID string) (*scorebook.Session, error) {
	if sess, ok := k.sessions[matchID]; ok {
		return sess, nil
	}
	m, err := k.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	sess := scorebook.NewSession(m)
	k.sessions[matchID] = sess
	return sess, nil
}

// persist snapshots the match and saves it in the background, publishing the
// change event on success. The in-memory session is already updated; a failed
// save is surfaced through logs and metrics only.
func (k *Keeper) persist(m *scorebook.Match, event pubsub.EventType) {
	snapshot, err := cloneMatch(m)
	if err != nil {
		log.Error("Failed to snapshot match for saving", "error", err, "matchID", m.ID)
		return
	}
	go func() {
		if err := k.store.SaveMatch(snapshot); err != nil {
			k.metrics.IncMatchSaveFailures()
			log.Error("Failed to save match", "error", err, "matchID", snapshot.ID)
			return
		}
		k.metrics.IncMatchSaves()
		msg := MatchEvent{Type: event, MatchID: snapshot.ID, Match: snapshot}
		if err := k.pubsub.SendMessage(TopicMatchEvents, msg); err != nil {
			log.Error("Failed to publish match event", "error", err, "matchID", snapshot.ID)
		}
	}()
}

// CreateMatch starts a new scoring session with the given lineup and persists it.
func (k *Keeper) CreateMatch(date, opponent string, players []scorebook.Player) (*scorebook.Match, error) {
	m := scorebook.NewMatch(uuid.NewString(), date, opponent, players)

	k.mu.Lock()
	k.sessions[m.ID] = scorebook.NewSession(m)
	k.persist(m, pubsub.EventMatchUpdated)
	k.mu.Unlock()

	log.Info("Created match", "matchID", m.ID, "opponent", opponent, "date", date)
	return cloneMatch(m)
}

// Match returns a snapshot of one match.
func (k *Keeper) Match(matchID string) (*scorebook.Match, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return nil, err
	}
	return cloneMatch(sess.Match)
}

// Matches returns every stored match. Cached sessions are preferred over the
// stored rows so in-flight edits are visible immediately.
func (k *Keeper) Matches() ([]*scorebook.Match, error) {
	stored, err := k.store.GetAllMatches()
	if err != nil {
		return nil, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]*scorebook.Match, 0, len(stored))
	for _, m := range stored {
		if sess, ok := k.sessions[m.ID]; ok {
			m = sess.Match
		}
		clone, err := cloneMatch(m)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}

// DeleteMatch removes the match from the store and drops its session.
func (k *Keeper) DeleteMatch(matchID string) error {
	k.mu.Lock()
	delete(k.sessions, matchID)
	k.mu.Unlock()

	if err := k.store.DeleteMatch(matchID); err != nil {
		return err
	}
	msg := MatchEvent{Type: pubsub.EventMatchDeleted, MatchID: matchID}
	if err := k.pubsub.SendMessage(TopicMatchEvents, msg); err != nil {
		log.Error("Failed to publish match event", "error", err, "matchID", matchID)
	}
	return nil
}

// Refresh discards the cached session state and reloads the match from the
// store. Base occupancy derived from the stored records is rebuilt lazily.
func (k *Keeper) Refresh(matchID string) (*scorebook.Match, error) {
	m, err := k.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if sess, ok := k.sessions[matchID]; ok {
		sess.Replace(m)
	} else {
		k.sessions[matchID] = scorebook.NewSession(m)
	}
	return cloneMatch(m)
}

// Finalize announces the finished match summary.
func (k *Keeper) Finalize(matchID string, dryRun bool) error {
	m, err := k.Match(matchID)
	if err != nil {
		return err
	}
	return k.notifier.SendMatchSummary(m, dryRun)
}

// RecordOutcome applies one at-bat outcome and persists the result. It
// returns the updated match snapshot.
func (k *Keeper) RecordOutcome(matchID, playerID string, inning, seq int, outcome scorebook.Outcome, rbi int) (*scorebook.Match, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return nil, err
	}
	if err := sess.RecordOutcome(playerID, inning, seq, outcome, rbi); err != nil {
		return nil, err
	}
	k.metrics.IncOutcomesRecorded()
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return cloneMatch(sess.Match)
}

// AddAtBat opens the next at-bat slot for a player in an inning.
func (k *Keeper) AddAtBat(matchID, playerID string, inning int) (scorebook.AtBatRecord, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return scorebook.AtBatRecord{}, err
	}
	rec, err := sess.AddAtBat(playerID, inning)
	if err != nil {
		return scorebook.AtBatRecord{}, err
	}
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return *rec, nil
}

// RemoveAtBat deletes one at-bat slot.
func (k *Keeper) RemoveAtBat(matchID, playerID string, inning, seq int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return err
	}
	if err := sess.RemoveAtBat(playerID, inning, seq); err != nil {
		return err
	}
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return nil
}

// AddSubstitute brings a bench player into the match.
func (k *Keeper) AddSubstitute(matchID, playerID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return err
	}
	if err := sess.AddSubstitute(playerID); err != nil {
		return err
	}
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return nil
}

// RemoveSubstitute takes a substitute out and cascades away their records.
func (k *Keeper) RemoveSubstitute(matchID, playerID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return err
	}
	sess.RemoveSubstitute(playerID)
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return nil
}

// AdjustStolenBases nudges the stolen-base count on the first at-bat of an inning.
func (k *Keeper) AdjustStolenBases(matchID, playerID string, inning, delta int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return err
	}
	sess.AdjustStolenBases(playerID, inning, delta)
	k.persist(sess.Match, pubsub.EventMatchUpdated)
	return nil
}

// Bases returns the current occupants of each base in an inning.
func (k *Keeper) Bases(matchID string, inning int) (map[int][]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return nil, err
	}
	state := sess.Bases(inning)
	out := make(map[int][]string, 3)
	for base := 1; base <= 3; base++ {
		out[base] = state.Occupants(base)
	}
	return out, nil
}

// OutsInInning reports the outs recorded so far in an inning.
func (k *Keeper) OutsInInning(matchID string, inning int) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	sess, err := k.session(matchID)
	if err != nil {
		return 0, err
	}
	return sess.OutsInInning(inning), nil
}

// cloneMatch deep-copies a match through its JSON form so background saves
// and callers never share mutable state with the live session.
func cloneMatch(m *scorebook.Match) (*scorebook.Match, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out scorebook.Match
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NotFound reports whether the error means the match does not exist.
func NotFound(err error) bool {
	return errors.Is(err, league.ErrMatchNotFound)
}
