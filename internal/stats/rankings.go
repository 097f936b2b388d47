package stats

import (
	"math"
	"sort"
)

// Category is a statistical category a ranking can be produced for.
type Category string

const (
	CategoryBattingAverage Category = "batting-average"
	CategoryOPS            Category = "ops"
	CategoryHits           Category = "hits"
	CategoryRBIs           Category = "rbis"
	CategoryStolenBases    Category = "stolen-bases"
)

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBattingAverage, CategoryOPS, CategoryHits, CategoryRBIs, CategoryStolenBases:
		return true
	}
	return false
}

// rateStat reports whether the category is a rate statistic subject to the
// plate-appearance eligibility threshold. Counting stats are never gated.
func (c Category) rateStat() bool {
	return c == CategoryBattingAverage || c == CategoryOPS
}

func (c Category) value(a PlayerAggregate) float64 {
	switch c {
	case CategoryBattingAverage:
		return a.BattingAverage
	case CategoryOPS:
		return a.OPS
	case CategoryHits:
		return float64(a.Hits)
	case CategoryRBIs:
		return float64(a.RBIs)
	case CategoryStolenBases:
		return float64(a.StolenBases)
	}
	return 0
}

// RankingEntry is one row of a ranking. Tied values share a rank number and
// the next distinct value continues at previousRank + tieGroupSize.
type RankingEntry struct {
	Rank int `json:"rank"`
	PlayerAggregate
	Value float64 `json:"value"`
}

// Ranking is the ranked leaderboard for one category over a match window.
type Ranking struct {
	Category Category       `json:"category"`
	Required int            `json:"required_plate_appearances"`
	Entries  []RankingEntry `json:"entries"`
}

// RequiredPlateAppearances computes the eligibility threshold for rate-stat
// rankings: 70% of the mean plate appearances of everyone who batted,
// capped at 70% of 2.5 plate appearances per match, and never below one.
func RequiredPlateAppearances(aggs []PlayerAggregate, matchCount int) int {
	total, batters := 0, 0
	for _, a := range aggs {
		if pa := a.PlateAppearances(); pa >= 1 {
			total += pa
			batters++
		}
	}
	mean := 0.0
	if batters > 0 {
		mean = float64(total) / float64(batters)
	}
	required := int(math.Ceil(0.7 * mean))
	if limit := int(math.Ceil(0.7 * float64(matchCount) * 2.5)); limit < required {
		required = limit
	}
	if required < 1 {
		required = 1
	}
	return required
}

// Rank produces the leaderboard for one category across the given
// aggregates. Zero-value entries are excluded; the list extends past five
// entries when the fifth-place value is tied.
func Rank(aggs []PlayerAggregate, category Category, matchCount int) Ranking {
	required := RequiredPlateAppearances(aggs, matchCount)

	pool := aggs
	if category.rateStat() {
		pool = nil
		for _, a := range aggs {
			if a.PlateAppearances() >= required {
				pool = append(pool, a)
			}
		}
	}

	var entries []RankingEntry
	for _, a := range pool {
		if v := category.value(a); v > 0 {
			entries = append(entries, RankingEntry{PlayerAggregate: a, Value: v})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > 5 {
		fifth := entries[4].Value
		cut := len(entries)
		for i := 5; i < len(entries); i++ {
			if entries[i].Value < fifth {
				cut = i
				break
			}
		}
		entries = entries[:cut]
	}

	for i := range entries {
		if i > 0 && entries[i].Value == entries[i-1].Value {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return Ranking{Category: category, Required: required, Entries: entries}
}
