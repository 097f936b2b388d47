package league

import (
	"sync"

	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// Mock is an in-memory Store for tests.
type Mock struct {
	mu          sync.Mutex
	matches     map[string]*scorebook.Match
	players     map[string]scorebook.Player
	saveErr     error
	matchSaves  int
	nextWatchID int
	matchCBs    map[int]MatchesCallback
	playerCBs   map[int]PlayersCallback
}

var _ Store = (*Mock)(nil)

// NewMock creates an empty in-memory store.
func NewMock() *Mock {
	return &Mock{
		matches:   make(map[string]*scorebook.Match),
		players:   make(map[string]scorebook.Player),
		matchCBs:  make(map[int]MatchesCallback),
		playerCBs: make(map[int]PlayersCallback),
	}
}

// FailSaves makes every subsequent SaveMatch return err.
func (m *Mock) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// MatchSaves returns how many times SaveMatch was called.
func (m *Mock) MatchSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchSaves
}

func (m *Mock) SaveMatch(match *scorebook.Match) error {
	m.mu.Lock()
	m.matchSaves++
	if m.saveErr != nil {
		err := m.saveErr
		m.mu.Unlock()
		return err
	}
	m.matches[match.ID] = match
	cbs := m.matchCallbacksLocked()
	matches := m.allMatchesLocked()
	m.mu.Unlock()
	for _, cb := range cbs {
		cb(matches)
	}
	return nil
}

func (m *Mock) GetMatch(matchID string) (*scorebook.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

func (m *Mock) GetAllMatches() ([]*scorebook.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allMatchesLocked(), nil
}

func (m *Mock) allMatchesLocked() []*scorebook.Match {
	out := make([]*scorebook.Match, 0, len(m.matches))
	for _, match := range m.matches {
		out = append(out, match)
	}
	return out
}

func (m *Mock) matchCallbacksLocked() []MatchesCallback {
	cbs := make([]MatchesCallback, 0, len(m.matchCBs))
	for _, cb := range m.matchCBs {
		cbs = append(cbs, cb)
	}
	return cbs
}

func (m *Mock) DeleteMatch(matchID string) error {
	m.mu.Lock()
	delete(m.matches, matchID)
	cbs := m.matchCallbacksLocked()
	matches := m.allMatchesLocked()
	m.mu.Unlock()
	for _, cb := range cbs {
		cb(matches)
	}
	return nil
}

func (m *Mock) WatchMatches(cb MatchesCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextWatchID
	m.nextWatchID++
	m.matchCBs[id] = cb
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.matchCBs, id)
	}
}

func (m *Mock) UpsertPlayer(p scorebook.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	return nil
}

func (m *Mock) UpsertPlayers(players []scorebook.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range players {
		m.players[p.ID] = p
	}
	return nil
}

func (m *Mock) GetAllPlayers() ([]scorebook.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]scorebook.Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p)
	}
	return out, nil
}

func (m *Mock) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	return nil
}

func (m *Mock) WatchPlayers(cb PlayersCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextWatchID
	m.nextWatchID++
	m.playerCBs[id] = cb
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.playerCBs, id)
	}
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = make(map[string]*scorebook.Match)
	m.players = make(map[string]scorebook.Player)
}
