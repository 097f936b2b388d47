package scorebook

import (
	"github.com/charmbracelet/log"
)

const maxAtBatsPerInning = 3

// Session wraps a match with the transient per-inning runner state used
// while a game is being scored. Runner occupancy is deliberately not
// persisted; a freshly loaded session starts with empty bases.
//
// A session is not safe for concurrent use. Scoring is a strictly
// sequential, user-driven activity; callers serialize access.
type Session struct {
	Match   *Match
	runners map[int]*BaseState
}

// NewSession starts a scoring session for the match.
func NewSession(m *Match) *Session {
	return &Session{
		Match:   m,
		runners: make(map[int]*BaseState),
	}
}

// Replace swaps in a new match snapshot, e.g. one received from another
// live editor. The snapshot wins wholesale; runner occupancy is kept since
// it is local scoring state the snapshot does not carry.
func (s *Session) Replace(m *Match) {
	s.Match = m
}

// Bases exposes the runner occupancy for an inning, creating it on first
// use.
func (s *Session) Bases(inning int) *BaseState {
	bs, ok := s.runners[inning]
	if !ok {
		bs = newBaseState()
		s.runners[inning] = bs
	}
	return bs
}

// RecordOutcome records (or clears, for OutcomeNone) the outcome of the
// at-bat slot (inning, seq) for the player, advances runners and credits
// runs to everyone who scored on the play.
//
// Sequence 1 is created on demand; higher sequences must have been opened
// with AddAtBat first, otherwise ErrInvalidAtBat is returned.
func (s *Session) RecordOutcome(playerID string, inning, seq int, outcome Outcome, rbi int) error {
	if inning < 1 || seq < 1 {
		return ErrInvalidAtBat
	}

	rec := s.Match.record(playerID, inning, seq)

	if outcome == OutcomeNone {
		if rec == nil {
			return nil
		}
		s.clearOutcome(playerID, inning, seq, rec)
		return nil
	}

	if !outcome.Valid() {
		return ErrUnknownOutcome
	}
	if rec == nil {
		if seq != 1 {
			return ErrInvalidAtBat
		}
		rec = s.Match.appendRecord(playerID, inning, 1)
	}

	rec.apply(outcome, rbi)

	bases := s.Bases(inning)
	switch {
	case outcome.IsHit():
		// Existing runners advance before the batter takes first base, so
		// the batter is never swept along by their own hit.
		for _, runnerID := range bases.Advance(outcome.BasesGained()) {
			s.creditRun(runnerID, inning)
		}
		bases.PlaceBatter(playerID, outcome)
		if outcome == OutcomeTriple {
			// The only extra-base hit where the batter scores on the same
			// play without a separate event.
			rec.Runs = 1
		}
	case outcome == OutcomeError:
		// Third-base runners come home on the error; read them before the
		// placement shuffles everyone up a base.
		for _, runnerID := range bases.Occupants(3) {
			s.creditRun(runnerID, inning)
			bases.RemoveRunner(runnerID)
		}
		bases.PlaceBatter(playerID, outcome)
	default:
		bases.PlaceBatter(playerID, outcome)
	}

	return nil
}

// clearOutcome zeroes the slot and deletes the record when it is the only
// at-bat of the inning. With later at-bats present the slot stays as an
// empty placeholder; RemoveAtBat is the way to drop extra slots.
func (s *Session) clearOutcome(playerID string, inning, seq int, rec *AtBatRecord) {
	if len(s.Match.InningRecords(playerID, inning)) <= 1 {
		s.Match.deleteRecord(playerID, inning, seq)
	} else {
		rec.reset()
		rec.Outcome = OutcomeNone
	}
	s.Bases(inning).RemoveRunner(playerID)
}

// creditRun adds one run to the scorer's record in the inning. A scorer
// without a record cannot be attributed; the run is dropped but flagged.
func (s *Session) creditRun(runnerID string, inning int) {
	recs := s.Match.InningRecords(runnerID, inning)
	if len(recs) == 0 {
		log.Warn("run scored by player with no at-bat record in inning, dropping",
			"matchID", s.Match.ID, "playerID", runnerID, "inning", inning)
		return
	}
	recs[0].Runs++
}

// OutsInInning counts the outs recorded so far in an inning: official
// at-bats without a hit, plus sacrifice bunts and flies.
func (s *Session) OutsInInning(inning int) int {
	outs := 0
	for _, recs := range s.Match.Records {
		for _, rec := range recs {
			if rec.InningNumber != inning {
				continue
			}
			if rec.AtBats > 0 && rec.Hits == 0 {
				outs += rec.AtBats
			}
			outs += rec.SacrificeBunts
			outs += rec.SacrificeFlies
		}
	}
	return outs
}

// CanAddAtBat reports whether another at-bat slot may be opened for the
// player in the inning: fewer than three slots, the latest slot resolved,
// and fewer than three outs.
func (s *Session) CanAddAtBat(inning int, playerID string) bool {
	recs := s.Match.InningRecords(playerID, inning)
	if len(recs) >= maxAtBatsPerInning {
		return false
	}
	if len(recs) > 0 && recs[len(recs)-1].Outcome == OutcomeNone {
		return false
	}
	return s.OutsInInning(inning) < 3
}

// IsBattingSlotClosed reports whether a lineup slot should be treated as
// unreachable in the inning: three outs are in and no player in that slot
// has batted. Bench and substitute slots are exempt from closure.
func (s *Session) IsBattingSlotClosed(inning, battingOrder int) bool {
	if battingOrder < 1 || battingOrder > 9 {
		return false
	}
	if s.OutsInInning(inning) < 3 {
		return false
	}
	for _, recs := range s.Match.Records {
		for _, rec := range recs {
			if rec.InningNumber == inning && rec.BattingOrder == battingOrder {
				return false
			}
		}
	}
	return true
}

// AddAtBat opens the lowest free at-bat slot for the player in the inning.
// A sequence number freed by RemoveAtBat is reused, so numbers stay within
// the 1-3 range.
func (s *Session) AddAtBat(playerID string, inning int) (*AtBatRecord, error) {
	if inning < 1 {
		return nil, ErrInvalidAtBat
	}
	if !s.CanAddAtBat(inning, playerID) {
		return nil, ErrAtBatUnavailable
	}
	next := 1
	for _, rec := range s.Match.InningRecords(playerID, inning) {
		if rec.AtBatNumber == next {
			next++
		}
	}
	return s.Match.appendRecord(playerID, inning, next), nil
}

// RemoveAtBat deletes the at-bat slot (inning, seq). The surviving slots
// keep their original sequence numbers. The only at-bat of an inning cannot
// be removed.
func (s *Session) RemoveAtBat(playerID string, inning, seq int) error {
	recs := s.Match.InningRecords(playerID, inning)
	if len(recs) <= 1 {
		return ErrLastAtBat
	}
	if s.Match.record(playerID, inning, seq) == nil {
		return ErrInvalidAtBat
	}
	s.Match.deleteRecord(playerID, inning, seq)
	return nil
}

// AddSubstitute flags a bench player as an active pinch hitter. Flagging
// creates no records.
func (s *Session) AddSubstitute(playerID string) error {
	if p, ok := s.Match.Player(playerID); ok && p.Starter() {
		return ErrNotBenchPlayer
	}
	if s.Match.IsSubstitute(playerID) {
		return nil
	}
	s.Match.Substitutes = append(s.Match.Substitutes, playerID)
	return nil
}

// RemoveSubstitute drops the pinch-hitter flag and cascades: every at-bat
// the player has recorded in this match is deleted.
func (s *Session) RemoveSubstitute(playerID string) {
	subs := s.Match.Substitutes[:0]
	for _, id := range s.Match.Substitutes {
		if id != playerID {
			subs = append(subs, id)
		}
	}
	s.Match.Substitutes = subs
	delete(s.Match.Records, playerID)
	for _, bases := range s.runners {
		bases.RemoveRunner(playerID)
	}
}

// AdjustStolenBases nudges the stolen-base count on the player's first
// at-bat of the inning by delta, clamped to the 0-3 range. A player with no
// record in the inning is left untouched.
func (s *Session) AdjustStolenBases(playerID string, inning, delta int) {
	recs := s.Match.InningRecords(playerID, inning)
	if len(recs) == 0 {
		return
	}
	sb := recs[0].StolenBases + delta
	if sb < 0 {
		sb = 0
	}
	if sb > 3 {
		sb = 3
	}
	recs[0].StolenBases = sb
}
