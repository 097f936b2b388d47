package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sandlotstats/scorebook/internal/scorebook"
)

// PlayerAggregate is the sum of a player's records across one or more
// matches plus the derived rate statistics. It is recomputed on demand and
// never stored.
type PlayerAggregate struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Matches  int    `json:"matches"`
	scorebook.Totals
	TotalBases         int     `json:"total_bases"`
	BattingAverage     float64 `json:"batting_average"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	OPS                float64 `json:"ops"`
}

func (a *PlayerAggregate) derive() {
	a.TotalBases = a.Hits + a.Doubles + 2*a.Triples + 3*a.HomeRuns
	if a.AtBats > 0 {
		a.BattingAverage = float64(a.Hits) / float64(a.AtBats)
		a.SluggingPercentage = float64(a.TotalBases) / float64(a.AtBats)
	}
	if denom := a.AtBats + a.Walks + a.SacrificeFlies; denom > 0 {
		a.OnBasePercentage = float64(a.Hits+a.Walks) / float64(denom)
	}
	a.OPS = a.SluggingPercentage + a.OnBasePercentage
}

// Aggregate rolls the per-match records of every participating player into
// cross-match totals with derived rates. Matches without usable records are
// skipped rather than raised. The result is ordered by matches played, most
// first.
func Aggregate(matches []*scorebook.Match) []PlayerAggregate {
	byPlayer := make(map[string]*PlayerAggregate)
	var order []string

	for _, match := range matches {
		if match == nil || match.Records == nil {
			continue
		}
		for playerID, recs := range match.Records {
			agg, ok := byPlayer[playerID]
			if !ok {
				agg = &PlayerAggregate{PlayerID: playerID}
				if p, found := match.Player(playerID); found {
					agg.Name = p.Name
				}
				byPlayer[playerID] = agg
				order = append(order, playerID)
			}
			if agg.Name == "" {
				if p, found := match.Player(playerID); found {
					agg.Name = p.Name
				}
			}
			agg.Matches++
			for _, rec := range recs {
				agg.Add(rec)
			}
		}
	}

	out := make([]PlayerAggregate, 0, len(byPlayer))
	for _, playerID := range order {
		agg := byPlayer[playerID]
		agg.derive()
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Matches > out[j].Matches
	})
	return out
}

// Round3 rounds a rate statistic to the 3 decimal places used for display.
// Aggregation itself keeps full precision.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatRate renders a rate stat in scorebook style: .000, .333, 1.125.
func FormatRate(v float64) string {
	s := fmt.Sprintf("%.3f", Round3(v))
	return strings.TrimPrefix(s, "0")
}
