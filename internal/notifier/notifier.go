package notifier

import (
	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finalized matches
	SendMatchSummary(match *scorebook.Match, dryRun bool) error
	// For leaderboard announcements
	SendRanking(ranking stats.Ranking, dryRun bool) error

	// For formatting responses served back over HTTP without posting
	FormatMatchSummaryResponse(match *scorebook.Match) (any, error)
	FormatRankingResponse(ranking stats.Ranking) (any, error)
}
