package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandlotstats/scorebook/internal/metrics"
	"github.com/sandlotstats/scorebook/internal/notifier"
	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchSummary(match *scorebook.Match, dryRun bool) error {
	msg := s.formatMatchSummary(match)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRanking(ranking stats.Ranking, dryRun bool) error {
	msg := s.formatRanking(ranking)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatMatchSummaryResponse formats a match summary without posting it.
func (s *Notifier) FormatMatchSummaryResponse(match *scorebook.Match) (any, error) {
	return s.formatMatchSummary(match), nil
}

// FormatRankingResponse formats a ranking without posting it.
func (s *Notifier) FormatRankingResponse(ranking stats.Ranking) (any, error) {
	return s.formatRanking(ranking), nil
}

// formatMatchSummary creates the Slack message for a scored match using Block Kit.
func (s *Notifier) formatMatchSummary(match *scorebook.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🥎 Game scored! 🥎", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	detailsText := fmt.Sprintf("vs %s on %s", match.Opponent, match.Date)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	// Batting lines, lineup order first then substitutes
	var lines []string
	for _, p := range match.StartingLineup() {
		if line := battingLine(match, p); line != "" {
			lines = append(lines, line)
		}
	}
	for _, id := range match.Substitutes {
		if p, ok := match.Player(id); ok {
			if line := battingLine(match, p); line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) > 0 {
		battingText := "Batting:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", battingText, true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No at-bats recorded.", true, false), nil, nil))
	}

	// Context (team totals)
	var team scorebook.Totals
	for playerID := range match.Records {
		t := match.PlayerTotals(playerID)
		team.Hits += t.Hits
		team.Runs += t.Runs
		team.RBIs += t.RBIs
	}
	teamText := fmt.Sprintf("Team: %d runs on %d hits, %d RBIs", team.Runs, team.Hits, team.RBIs)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", teamText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func battingLine(match *scorebook.Match, p scorebook.Player) string {
	t := match.PlayerTotals(p.ID)
	if t.PlateAppearances() == 0 {
		return ""
	}
	line := fmt.Sprintf("• %s: %d-for-%d", p.Name, t.Hits, t.AtBats)
	var extras []string
	if t.RBIs > 0 {
		extras = append(extras, fmt.Sprintf("%d RBI", t.RBIs))
	}
	if t.Runs > 0 {
		extras = append(extras, fmt.Sprintf("%d R", t.Runs))
	}
	if t.HomeRuns > 0 {
		extras = append(extras, fmt.Sprintf("%d HR", t.HomeRuns))
	}
	if t.StolenBases > 0 {
		extras = append(extras, fmt.Sprintf("%d SB", t.StolenBases))
	}
	if len(extras) > 0 {
		line += ", " + strings.Join(extras, ", ")
	}
	return line
}

// formatRanking creates a Slack message to display a leaderboard for one category.
func (s *Notifier) formatRanking(ranking stats.Ranking) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s Leaders 🏆", categoryTitle(ranking.Category)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(ranking.Entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No qualified players yet. Go play some games!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, entry := range ranking.Entries {
		var medal string
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s: %s (%d games)",
			entry.Rank,
			medal,
			entry.Name,
			formatValue(ranking.Category, entry.Value),
			entry.Matches,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	if ranking.Required > 1 {
		thresholdText := fmt.Sprintf("Minimum %d plate appearances to qualify for rate stats.", ranking.Required)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", thresholdText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func categoryTitle(c stats.Category) string {
	switch c {
	case stats.CategoryBattingAverage:
		return "Batting Average"
	case stats.CategoryOPS:
		return "OPS"
	case stats.CategoryHits:
		return "Hits"
	case stats.CategoryRBIs:
		return "RBI"
	case stats.CategoryStolenBases:
		return "Stolen Bases"
	}
	return string(c)
}

func formatValue(c stats.Category, v float64) string {
	switch c {
	case stats.CategoryBattingAverage, stats.CategoryOPS:
		return stats.FormatRate(v)
	}
	return fmt.Sprintf("%d", int(v))
}
