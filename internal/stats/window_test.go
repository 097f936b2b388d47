package stats_test

import (
	"testing"
	"time"

	"github.com/sandlotstats/scorebook/internal/scorebook"
	"github.com/sandlotstats/scorebook/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedMatch(id, date string) *scorebook.Match {
	return scorebook.NewMatch(id, date, "River Hawks", nil)
}

func TestFiscalYear(t *testing.T) {
	assert.Equal(t, 2025, stats.FiscalYear(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, stats.FiscalYear(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	// January through March belong to the previous season.
	assert.Equal(t, 2025, stats.FiscalYear(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, stats.FiscalYear(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFilterWindowMonth(t *testing.T) {
	matches := []*scorebook.Match{
		datedMatch("m1", "2025-06-14"),
		datedMatch("m2", "2025-06-28"),
		datedMatch("m3", "2025-07-05"),
	}
	ref := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	got := stats.FilterWindow(matches, stats.WindowMonth, ref)

	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}

func TestFilterWindowFiscalYear(t *testing.T) {
	matches := []*scorebook.Match{
		datedMatch("m1", "2025-04-05"),
		datedMatch("m2", "2026-03-20"),
		datedMatch("m3", "2026-04-02"),
	}
	ref := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	got := stats.FilterWindow(matches, stats.WindowFiscalYear, ref)

	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}

func TestFilterWindowAllPassesEverything(t *testing.T) {
	matches := []*scorebook.Match{
		datedMatch("m1", "2025-06-14"),
		datedMatch("m2", "not-a-date"),
	}

	got := stats.FilterWindow(matches, stats.WindowAll, time.Now())
	assert.Len(t, got, 2)
}

func TestFilterWindowSkipsMalformedDates(t *testing.T) {
	matches := []*scorebook.Match{
		datedMatch("m1", "2025-06-14"),
		datedMatch("m2", "June 14th"),
	}
	ref := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	got := stats.FilterWindow(matches, stats.WindowMonth, ref)

	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}

func TestWindowValidation(t *testing.T) {
	assert.True(t, stats.WindowMonth.Valid())
	assert.True(t, stats.WindowAll.Valid())
	assert.False(t, stats.Window("season").Valid())
}
