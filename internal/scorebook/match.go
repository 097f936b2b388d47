package scorebook

import "sort"

// Match is one game: the participating players, every recorded at-bat keyed
// by player id, and the players flagged as substitutes for the game. The
// substitute flags live on the match itself so cascade rules survive a
// reload.
type Match struct {
	ID          string                    `json:"id" msgpack:"id"`
	Date        string                    `json:"date" msgpack:"date"` // YYYY-MM-DD
	Opponent    string                    `json:"opponent" msgpack:"opponent"`
	Players     []Player                  `json:"players" msgpack:"players"`
	Records     map[string][]*AtBatRecord `json:"records" msgpack:"records"`
	Substitutes []string                  `json:"substitutes,omitempty" msgpack:"substitutes,omitempty"`
}

// NewMatch creates an empty match for the given roster.
func NewMatch(id, date, opponent string, players []Player) *Match {
	return &Match{
		ID:       id,
		Date:     date,
		Opponent: opponent,
		Players:  players,
		Records:  make(map[string][]*AtBatRecord),
	}
}

// StartingLineup returns the players occupying slots 1-9 in batting order.
func (m *Match) StartingLineup() []Player {
	var lineup []Player
	for _, p := range m.Players {
		if p.Starter() {
			lineup = append(lineup, p)
		}
	}
	sort.Slice(lineup, func(i, j int) bool {
		return lineup[i].BattingOrder < lineup[j].BattingOrder
	})
	return lineup
}

// IsSubstitute reports whether the player is flagged as a pinch hitter.
func (m *Match) IsSubstitute(playerID string) bool {
	for _, id := range m.Substitutes {
		if id == playerID {
			return true
		}
	}
	return false
}

// Player looks up a participant by id.
func (m *Match) Player(playerID string) (Player, bool) {
	for _, p := range m.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

// InningRecords returns the player's at-bats for one inning in sequence
// order.
func (m *Match) InningRecords(playerID string, inning int) []*AtBatRecord {
	var recs []*AtBatRecord
	for _, rec := range m.Records[playerID] {
		if rec.InningNumber == inning {
			recs = append(recs, rec)
		}
	}
	return recs
}

func (m *Match) record(playerID string, inning, seq int) *AtBatRecord {
	for _, rec := range m.Records[playerID] {
		if rec.InningNumber == inning && rec.AtBatNumber == seq {
			return rec
		}
	}
	return nil
}

// appendRecord inserts a zeroed record for (player, inning, seq) keeping the
// player's history ordered by inning then at-bat sequence.
func (m *Match) appendRecord(playerID string, inning, seq int) *AtBatRecord {
	order := 0
	if p, ok := m.Player(playerID); ok {
		order = p.BattingOrder
	}
	rec := &AtBatRecord{
		InningNumber: inning,
		BattingOrder: order,
		AtBatNumber:  seq,
	}
	recs := append(m.Records[playerID], rec)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].InningNumber != recs[j].InningNumber {
			return recs[i].InningNumber < recs[j].InningNumber
		}
		return recs[i].AtBatNumber < recs[j].AtBatNumber
	})
	m.Records[playerID] = recs
	return rec
}

func (m *Match) deleteRecord(playerID string, inning, seq int) {
	recs := m.Records[playerID][:0]
	for _, rec := range m.Records[playerID] {
		if rec.InningNumber == inning && rec.AtBatNumber == seq {
			continue
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		delete(m.Records, playerID)
		return
	}
	m.Records[playerID] = recs
}

// PlayerTotals sums every counter across all of a player's records.
func (m *Match) PlayerTotals(playerID string) Totals {
	var t Totals
	for _, rec := range m.Records[playerID] {
		t.Add(rec)
	}
	return t
}

// MaxInning returns the highest inning number with a recorded at-bat, or 0
// for an empty match.
func (m *Match) MaxInning() int {
	max := 0
	for _, recs := range m.Records {
		for _, rec := range recs {
			if rec.InningNumber > max {
				max = rec.InningNumber
			}
		}
	}
	return max
}
