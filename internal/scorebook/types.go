package scorebook

import "errors"

// Outcome is the result a scorer selects for one plate appearance. It is
// stored on the record directly so it never has to be re-derived from the
// counter fields.
type Outcome string

const (
	OutcomeNone          Outcome = ""
	OutcomeOut           Outcome = "out"
	OutcomeOutRBI        Outcome = "out-rbi"
	OutcomeSingle        Outcome = "single"
	OutcomeDouble        Outcome = "double"
	OutcomeTriple        Outcome = "triple"
	OutcomeHomeRun       Outcome = "homerun"
	OutcomeWalk          Outcome = "walk"
	OutcomeDeadBall      Outcome = "dead-ball"
	OutcomeStolenBase    Outcome = "stolen-base"
	OutcomeSacrificeBunt Outcome = "sacrifice-bunt"
	OutcomeSacrificeFly  Outcome = "sacrifice-fly"
	OutcomeError         Outcome = "error"
)

var (
	// ErrInvalidAtBat is returned when an outcome targets an at-bat slot that
	// was never created, or an inning/sequence outside the valid range.
	ErrInvalidAtBat = errors.New("scorebook: no such at-bat slot")
	// ErrAtBatUnavailable is returned when a new at-bat may not be added for
	// the player in that inning (slot limit, unresolved slot, or three outs).
	ErrAtBatUnavailable = errors.New("scorebook: at-bat not available")
	// ErrLastAtBat is returned when removing the only at-bat of an inning.
	ErrLastAtBat = errors.New("scorebook: cannot remove the only at-bat of an inning")
	// ErrUnknownOutcome is returned for an outcome outside the enumeration.
	ErrUnknownOutcome = errors.New("scorebook: unknown outcome")
	// ErrNotBenchPlayer is returned when flagging a starter as a substitute.
	ErrNotBenchPlayer = errors.New("scorebook: player is in the starting lineup")
)

// Valid reports whether o is a member of the outcome enumeration. The empty
// outcome is not valid here; it means "clear" and is handled separately.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeOut, OutcomeOutRBI, OutcomeSingle, OutcomeDouble, OutcomeTriple,
		OutcomeHomeRun, OutcomeWalk, OutcomeDeadBall, OutcomeStolenBase,
		OutcomeSacrificeBunt, OutcomeSacrificeFly, OutcomeError:
		return true
	}
	return false
}

// BasesGained returns the number of bases a hit advances runners by, and 0
// for every non-hit outcome.
func (o Outcome) BasesGained() int {
	switch o {
	case OutcomeSingle:
		return 1
	case OutcomeDouble:
		return 2
	case OutcomeTriple:
		return 3
	case OutcomeHomeRun:
		return 4
	}
	return 0
}

// IsHit reports whether o is one of the four hit outcomes.
func (o Outcome) IsHit() bool {
	return o.BasesGained() > 0
}

// Player is roster reference data. The scorebook never mutates it.
type Player struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
	// BattingOrder 1-9 is a starting lineup slot; 0 or >= 10 means bench.
	BattingOrder int `json:"batting_order,omitempty" msgpack:"batting_order,omitempty"`
}

// Starter reports whether the player occupies a 1-9 lineup slot.
func (p Player) Starter() bool {
	return p.BattingOrder >= 1 && p.BattingOrder <= 9
}

// AtBatRecord is one recorded plate appearance for a player in an inning.
// AtBatNumber distinguishes multiple at-bats within the same inning.
type AtBatRecord struct {
	InningNumber   int     `json:"inning_number" msgpack:"inning_number"`
	BattingOrder   int     `json:"batting_order,omitempty" msgpack:"batting_order,omitempty"`
	AtBatNumber    int     `json:"at_bat_number" msgpack:"at_bat_number"`
	Outcome        Outcome `json:"outcome" msgpack:"outcome"`
	AtBats         int     `json:"at_bats" msgpack:"at_bats"`
	Hits           int     `json:"hits" msgpack:"hits"`
	Doubles        int     `json:"doubles" msgpack:"doubles"`
	Triples        int     `json:"triples" msgpack:"triples"`
	HomeRuns       int     `json:"home_runs" msgpack:"home_runs"`
	Walks          int     `json:"walks" msgpack:"walks"`
	DeadBalls      int     `json:"dead_balls" msgpack:"dead_balls"`
	StolenBases    int     `json:"stolen_bases" msgpack:"stolen_bases"`
	SacrificeBunts int     `json:"sacrifice_bunts" msgpack:"sacrifice_bunts"`
	SacrificeFlies int     `json:"sacrifice_flies" msgpack:"sacrifice_flies"`
	ErrorsReached  int     `json:"errors_reached" msgpack:"errors_reached"`
	Runs           int     `json:"runs" msgpack:"runs"`
	RBIs           int     `json:"rbis" msgpack:"rbis"`
}

// Totals is the sum of a set of at-bat records.
type Totals struct {
	AtBats         int `json:"at_bats"`
	Hits           int `json:"hits"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HomeRuns       int `json:"home_runs"`
	Walks          int `json:"walks"`
	DeadBalls      int `json:"dead_balls"`
	StolenBases    int `json:"stolen_bases"`
	SacrificeBunts int `json:"sacrifice_bunts"`
	SacrificeFlies int `json:"sacrifice_flies"`
	ErrorsReached  int `json:"errors_reached"`
	Runs           int `json:"runs"`
	RBIs           int `json:"rbis"`
}

// Add accumulates one record into the totals.
func (t *Totals) Add(rec *AtBatRecord) {
	t.AtBats += rec.AtBats
	t.Hits += rec.Hits
	t.Doubles += rec.Doubles
	t.Triples += rec.Triples
	t.HomeRuns += rec.HomeRuns
	t.Walks += rec.Walks
	t.DeadBalls += rec.DeadBalls
	t.StolenBases += rec.StolenBases
	t.SacrificeBunts += rec.SacrificeBunts
	t.SacrificeFlies += rec.SacrificeFlies
	t.ErrorsReached += rec.ErrorsReached
	t.Runs += rec.Runs
	t.RBIs += rec.RBIs
}

// PlateAppearances is the ranking-eligibility denominator: at-bats plus
// walks plus both sacrifice kinds.
func (t Totals) PlateAppearances() int {
	return t.AtBats + t.Walks + t.SacrificeFlies + t.SacrificeBunts
}
