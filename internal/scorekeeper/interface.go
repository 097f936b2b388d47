package scorekeeper

import "github.com/sandlotstats/scorebook/internal/scorebook"

// Scorekeeper defines the live match editing operations offered to transports.
type Scorekeeper interface {
	CreateMatch(date, opponent string, players []scorebook.Player) (*scorebook.Match, error)
	Match(matchID string) (*scorebook.Match, error)
	Matches() ([]*scorebook.Match, error)
	DeleteMatch(matchID string) error
	Refresh(matchID string) (*scorebook.Match, error)
	Finalize(matchID string, dryRun bool) error

	RecordOutcome(matchID, playerID string, inning, seq int, outcome scorebook.Outcome, rbi int) (*scorebook.Match, error)
	AddAtBat(matchID, playerID string, inning int) (scorebook.AtBatRecord, error)
	RemoveAtBat(matchID, playerID string, inning, seq int) error
	AddSubstitute(matchID, playerID string) error
	RemoveSubstitute(matchID, playerID string) error
	AdjustStolenBases(matchID, playerID string, inning, delta int) error

	Bases(matchID string, inning int) (map[int][]string, error)
	OutsInInning(matchID string, inning int) (int, error)
}
