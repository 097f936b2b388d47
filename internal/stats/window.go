package stats

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// Window selects which matches feed an aggregation.
type Window string

const (
	WindowMonth      Window = "month"
	WindowFiscalYear Window = "fiscal-year"
	WindowAll        Window = "all"
)

// Valid reports whether w names a known window.
func (w Window) Valid() bool {
	return w == WindowMonth || w == WindowFiscalYear || w == WindowAll
}

// FiscalYear returns the season year a date belongs to. Seasons run April
// through March, so January-March count toward the previous year.
func FiscalYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// FilterWindow returns the matches that fall in the window containing ref.
// Matches whose date does not parse are skipped.
func FilterWindow(matches []*scorebook.Match, window Window, ref time.Time) []*scorebook.Match {
	if window == WindowAll {
		return matches
	}
	var out []*scorebook.Match
	for _, m := range matches {
		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			log.Warn("skipping match with malformed date", "matchID", m.ID, "date", m.Date)
			continue
		}
		switch window {
		case WindowMonth:
			if date.Year() == ref.Year() && date.Month() == ref.Month() {
				out = append(out, m)
			}
		case WindowFiscalYear:
			if FiscalYear(date) == FiscalYear(ref) {
				out = append(out, m)
			}
		}
	}
	return out
}
