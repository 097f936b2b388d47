package league

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// ErrMatchNotFound is returned when loading a match that does not exist.
var ErrMatchNotFound = errors.New("league: match not found")

// MatchesCallback receives the full match list whenever it changes.
type MatchesCallback func(matches []*scorebook.Match)

// PlayersCallback receives the full roster whenever it changes.
type PlayersCallback func(players []scorebook.Player)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex

	watchMu        sync.Mutex
	nextWatchID    int
	matchWatchers  map[int]MatchesCallback
	playerWatchers map[int]PlayersCallback
}
