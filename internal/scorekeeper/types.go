package scorekeeper

import (
	"sync"

	"github.com/sandlotstats/scorebook/internal/league"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/pubsub"
	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// TopicMatchEvents is the Pub/Sub topic match change events are published to.
const TopicMatchEvents = "match-events"

// MatchEvent is the payload published after a persisted change. Updates carry
// the whole match snapshot; deletes carry only the id.
type MatchEvent struct {
	Type    pubsub.EventType `msgpack:"type" json:"type"`
	MatchID string           `msgpack:"match_id" json:"match_id"`
	Match   *scorebook.Match `msgpack:"match,omitempty" json:"match,omitempty"`
}

// Keeper coordinates live scoring sessions on top of the store. Mutations are
// applied in memory first and persisted in the background; a failed save is
// logged and counted but never rolled back.
type Keeper struct {
	store    league.Store
	pubsub   pubsub.PubSubClient
	notifier notifier.Notifier
	metrics  metrics.Metrics

	mu       sync.Mutex
	sessions map[string]*scorebook.Session

	unsubscribe func()
}
