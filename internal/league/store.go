package league

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// New creates a new Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db:             db,
		matchWatchers:  make(map[int]MatchesCallback),
		playerWatchers: make(map[int]PlayersCallback),
	}
}

// SaveMatch inserts or replaces a match. The per-player record map is
// serialized as a plain key to record-list JSON document; subscribers are
// notified with a fresh full snapshot afterwards.
func (s *store) SaveMatch(m *scorebook.Match) error {
	s.mu.Lock()
	playersJSON, err := json.Marshal(m.Players)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to marshal players: %w", err)
	}
	recordsJSON, err := json.Marshal(m.Records)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	subsJSON, err := json.Marshal(m.Substitutes)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to marshal substitutes: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, match_date, opponent, players_json, records_json, substitutes_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			match_date = excluded.match_date,
			opponent = excluded.opponent,
			players_json = excluded.players_json,
			records_json = excluded.records_json,
			substitutes_json = excluded.substitutes_json;
	`, m.ID, m.Date, m.Opponent, playersJSON, recordsJSON, subsJSON, time.Now().Unix())
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notifyMatchWatchers()
	return nil
}

// GetMatch loads one match by id.
func (s *store) GetMatch(matchID string) (*scorebook.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, match_date, opponent, players_json, records_json, substitutes_json
		FROM matches WHERE id = ?
	`, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// GetAllMatches loads every match, most recent date first.
func (s *store) GetAllMatches() ([]*scorebook.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAllMatchesLocked()
}

func (s *store) getAllMatchesLocked() ([]*scorebook.Match, error) {
	rows, err := s.db.Query(`
		SELECT id, match_date, opponent, players_json, records_json, substitutes_json
		FROM matches ORDER BY match_date DESC
	`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*scorebook.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*scorebook.Match, error) {
	var m scorebook.Match
	var playersJSON, recordsJSON, subsJSON sql.NullString

	if err := scanner.Scan(&m.ID, &m.Date, &m.Opponent, &playersJSON, &recordsJSON, &subsJSON); err != nil {
		return nil, err
	}

	if playersJSON.Valid && playersJSON.String != "" {
		if err := json.Unmarshal([]byte(playersJSON.String), &m.Players); err != nil {
			log.Error("Failed to unmarshal players_json", "error", err, "matchID", m.ID)
		}
	}
	m.Records = make(map[string][]*scorebook.AtBatRecord)
	if recordsJSON.Valid && recordsJSON.String != "" {
		if err := json.Unmarshal([]byte(recordsJSON.String), &m.Records); err != nil {
			log.Error("Failed to unmarshal records_json", "error", err, "matchID", m.ID)
		}
	}
	if subsJSON.Valid && subsJSON.String != "" {
		if err := json.Unmarshal([]byte(subsJSON.String), &m.Substitutes); err != nil {
			log.Error("Failed to unmarshal substitutes_json", "error", err, "matchID", m.ID)
		}
	}
	return &m, nil
}

// DeleteMatch removes a match and notifies subscribers.
func (s *store) DeleteMatch(matchID string) error {
	s.mu.Lock()
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notifyMatchWatchers()
	return nil
}

// WatchMatches registers a callback invoked with the full match list on
// every change. The returned function unsubscribes.
func (s *store) WatchMatches(cb MatchesCallback) func() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	id := s.nextWatchID
	s.nextWatchID++
	s.matchWatchers[id] = cb
	return func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.matchWatchers, id)
	}
}

func (s *store) notifyMatchWatchers() {
	s.watchMu.Lock()
	watchers := make([]MatchesCallback, 0, len(s.matchWatchers))
	for _, cb := range s.matchWatchers {
		watchers = append(watchers, cb)
	}
	s.watchMu.Unlock()
	if len(watchers) == 0 {
		return
	}

	s.mu.RLock()
	matches, err := s.getAllMatchesLocked()
	s.mu.RUnlock()
	if err != nil {
		log.Error("Failed to load matches for watchers", "error", err)
		return
	}
	for _, cb := range watchers {
		cb(matches)
	}
}

// UpsertPlayer inserts or updates one roster entry.
func (s *store) UpsertPlayer(p scorebook.Player) error {
	s.mu.Lock()
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, batting_order)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			batting_order = excluded.batting_order;
	`, p.ID, p.Name, p.BattingOrder)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notifyPlayerWatchers()
	return nil
}

// UpsertPlayers inserts or updates the given roster entries in one
// transaction.
func (s *store) UpsertPlayers(players []scorebook.Player) error {
	s.mu.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	for _, p := range players {
		if _, err := tx.Exec(`
			INSERT INTO players (id, name, batting_order)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				batting_order = excluded.batting_order;
		`, p.ID, p.Name, p.BattingOrder); err != nil {
			tx.Rollback()
			s.mu.Unlock()
			return err
		}
	}
	err = tx.Commit()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notifyPlayerWatchers()
	return nil
}

// GetAllPlayers returns the roster ordered by batting order, then name.
func (s *store) GetAllPlayers() ([]scorebook.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAllPlayersLocked()
}

func (s *store) getAllPlayersLocked() ([]scorebook.Player, error) {
	rows, err := s.db.Query("SELECT id, name, batting_order FROM players ORDER BY batting_order, name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []scorebook.Player
	for rows.Next() {
		var p scorebook.Player
		var name sql.NullString
		if err := rows.Scan(&p.ID, &name, &p.BattingOrder); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		players = append(players, p)
	}
	return players, rows.Err()
}

// DeletePlayer removes a roster entry and notifies subscribers.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notifyPlayerWatchers()
	return nil
}

// WatchPlayers registers a callback invoked with the full roster on every
// change. The returned function unsubscribes.
func (s *store) WatchPlayers(cb PlayersCallback) func() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	id := s.nextWatchID
	s.nextWatchID++
	s.playerWatchers[id] = cb
	return func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.playerWatchers, id)
	}
}

func (s *store) notifyPlayerWatchers() {
	s.watchMu.Lock()
	watchers := make([]PlayersCallback, 0, len(s.playerWatchers))
	for _, cb := range s.playerWatchers {
		watchers = append(watchers, cb)
	}
	s.watchMu.Unlock()
	if len(watchers) == 0 {
		return
	}

	s.mu.RLock()
	players, err := s.getAllPlayersLocked()
	s.mu.RUnlock()
	if err != nil {
		log.Error("Failed to load players for watchers", "error", err)
		return
	}
	for _, cb := range watchers {
		cb(players)
	}
}

// Clear wipes both tables.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		log.Error("Failed to clear matches table", "error", err)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players table", "error", err)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
