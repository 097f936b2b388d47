package pubsub

// PubSubClient publishes and decodes scorebook events.
type PubSubClient interface {
	SendMessage(topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
