package league

import "github.com/sandlotstats/scorebook/internal/scorebook"

// Store defines the storage collaborator the scorebook core consumes:
// load/save/delete plus change subscriptions for matches and the player
// roster. Subscribers always receive whole snapshots; there is no
// field-level merge.
type Store interface {
	SaveMatch(m *scorebook.Match) error
	GetMatch(matchID string) (*scorebook.Match, error)
	GetAllMatches() ([]*scorebook.Match, error)
	DeleteMatch(matchID string) error
	WatchMatches(cb MatchesCallback) (unsubscribe func())

	UpsertPlayer(p scorebook.Player) error
	UpsertPlayers(players []scorebook.Player) error
	GetAllPlayers() ([]scorebook.Player, error)
	DeletePlayer(playerID string) error
	WatchPlayers(cb PlayersCallback) (unsubscribe func())

	Clear()
}
