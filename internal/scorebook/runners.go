package scorebook

import "sort"

// BaseState tracks which players occupy first, second and third base within
// a single inning. It is owned by the match session and mutated only by the
// event resolution methods on Session; occupancy never crosses an inning
// boundary.
type BaseState struct {
	bases map[int]map[string]struct{}
}

func newBaseState() *BaseState {
	return &BaseState{
		bases: map[int]map[string]struct{}{
			1: {},
			2: {},
			3: {},
		},
	}
}

// Occupants returns the players on the given base in a deterministic order.
func (b *BaseState) Occupants(base int) []string {
	ids := make([]string, 0, len(b.bases[base]))
	for id := range b.bases[base] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RemoveRunner takes a player off every base, used when their outcome is
// cleared back to no-result.
func (b *BaseState) RemoveRunner(playerID string) {
	for _, occupants := range b.bases {
		delete(occupants, playerID)
	}
}

// PlaceBatter puts the batter on base according to the outcome just
// recorded. Hits and walks occupy first base; an error additionally shifts
// the existing runners up one base. Home runs, outs, stolen bases and
// sacrifices leave occupancy unchanged here.
func (b *BaseState) PlaceBatter(playerID string, outcome Outcome) {
	switch outcome {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeWalk, OutcomeDeadBall:
		b.bases[1][playerID] = struct{}{}
	case OutcomeError:
		first := b.bases[1]
		second := b.bases[2]
		third := b.bases[3]
		for id := range second {
			third[id] = struct{}{}
		}
		b.bases[2] = map[string]struct{}{}
		for id := range first {
			b.bases[2][id] = struct{}{}
		}
		b.bases[1] = map[string]struct{}{playerID: {}}
	}
}

// Advance moves every runner up by the bases gained from a hit and returns
// the players who crossed home, third base first. Bases are processed from
// third down to first so no runner advances twice in one call.
func (b *BaseState) Advance(basesGained int) []string {
	var scored []string

	if basesGained >= 1 {
		scored = append(scored, b.Occupants(3)...)
		b.bases[3] = map[string]struct{}{}
	}

	second := b.Occupants(2)
	b.bases[2] = map[string]struct{}{}
	for _, id := range second {
		if basesGained >= 3 {
			scored = append(scored, id)
		} else {
			b.bases[3][id] = struct{}{}
		}
	}

	first := b.Occupants(1)
	b.bases[1] = map[string]struct{}{}
	for _, id := range first {
		switch {
		case basesGained >= 3:
			scored = append(scored, id)
		case basesGained == 2:
			b.bases[3][id] = struct{}{}
		default:
			b.bases[2][id] = struct{}{}
		}
	}

	return scored
}
