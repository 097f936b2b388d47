package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventMatchUpdated carries a whole-match snapshot after a save. Other
	// live editors replace their local state with it wholesale.
	EventMatchUpdated EventType = "match-updated"
	// EventMatchDeleted carries the id of a removed match.
	EventMatchDeleted EventType = "match-deleted"
	// EventRosterUpdated carries the full player roster after a change.
	EventRosterUpdated EventType = "roster-updated"
)
