package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Mock records published messages for tests.
type Mock struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

var _ PubSubClient = (*Mock)(nil)

// NewMock creates an empty mock client.
func NewMock() *Mock {
	return &Mock{messages: make(map[string][][]byte)}
}

func (m *Mock) SendMessage(topic string, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[topic] = append(m.messages[topic], payload)
	return nil
}

func (m *Mock) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

// Published returns the payloads sent to a topic.
func (m *Mock) Published(topic string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages[topic]
}
