package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	outcomesRecorded  int
	matchSaves        int
	matchSaveFailures int
	rankingDurations  []float64
	notifSent         int
	notifFailed       int
	startupTime       float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rankingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncOutcomesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomesRecorded++
}

func (m *Mock) IncMatchSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchSaves++
}

func (m *Mock) IncMatchSaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchSaveFailures++
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// OutcomesRecorded returns the number of times IncOutcomesRecorded was called.
func (m *Mock) OutcomesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomesRecorded
}

// MatchSaves returns the number of times IncMatchSaves was called.
func (m *Mock) MatchSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchSaves
}

// MatchSaveFailures returns the number of times IncMatchSaveFailures was called.
func (m *Mock) MatchSaveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchSaveFailures
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
