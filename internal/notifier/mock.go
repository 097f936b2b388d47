package notifier

import (
	"sync"

	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchSummaryCalls []*scorebook.Match
	SendRankingCalls      []stats.Ranking

	// Spies for format functions
	FormatMatchSummaryResponseFunc func(match *scorebook.Match) (any, error)
	FormatRankingResponseFunc      func(ranking stats.Ranking) (any, error)

	// Errors to return from the send functions
	SendErr error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchSummaryCalls = nil
	m.SendRankingCalls = nil
	m.SendErr = nil
}

func (m *Mock) SendMatchSummary(match *scorebook.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchSummaryCalls = append(m.SendMatchSummaryCalls, match)
	return m.SendErr
}

func (m *Mock) SendRanking(ranking stats.Ranking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingCalls = append(m.SendRankingCalls, ranking)
	return m.SendErr
}

func (m *Mock) FormatMatchSummaryResponse(match *scorebook.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatMatchSummaryResponseFunc != nil {
		return m.FormatMatchSummaryResponseFunc(match)
	}
	return "formatted_match_summary", nil
}

func (m *Mock) FormatRankingResponse(ranking stats.Ranking) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingResponseFunc != nil {
		return m.FormatRankingResponseFunc(ranking)
	}
	return "formatted_ranking", nil
}
