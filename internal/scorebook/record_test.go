package scorebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOutcomeShapes(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		rbi     int
		want    AtBatRecord
	}{
		{"out", OutcomeOut, 0, AtBatRecord{AtBats: 1}},
		{"out with rbi defaults to one", OutcomeOutRBI, 0, AtBatRecord{AtBats: 1, RBIs: 1}},
		{"out with explicit rbis", OutcomeOutRBI, 2, AtBatRecord{AtBats: 1, RBIs: 2}},
		{"single", OutcomeSingle, 0, AtBatRecord{AtBats: 1, Hits: 1}},
		{"double", OutcomeDouble, 0, AtBatRecord{AtBats: 1, Hits: 1, Doubles: 1}},
		{"triple", OutcomeTriple, 0, AtBatRecord{AtBats: 1, Hits: 1, Triples: 1}},
		{"homerun scores the batter", OutcomeHomeRun, 0, AtBatRecord{AtBats: 1, Hits: 1, HomeRuns: 1, Runs: 1}},
		{"walk", OutcomeWalk, 0, AtBatRecord{Walks: 1}},
		{"dead ball counts as a walk too", OutcomeDeadBall, 0, AtBatRecord{Walks: 1, DeadBalls: 1}},
		{"stolen base", OutcomeStolenBase, 0, AtBatRecord{StolenBases: 1}},
		{"sacrifice bunt", OutcomeSacrificeBunt, 0, AtBatRecord{SacrificeBunts: 1}},
		{"sacrifice fly", OutcomeSacrificeFly, 0, AtBatRecord{SacrificeFlies: 1}},
		{"reached on error", OutcomeError, 0, AtBatRecord{ErrorsReached: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &AtBatRecord{InningNumber: 1, AtBatNumber: 1}
			rec.apply(tt.outcome, tt.rbi)

			tt.want.InningNumber = 1
			tt.want.AtBatNumber = 1
			tt.want.Outcome = tt.outcome
			assert.Equal(t, tt.want, *rec)
		})
	}
}

func TestApplyReplacesPreviousShape(t *testing.T) {
	rec := &AtBatRecord{InningNumber: 3, AtBatNumber: 1}
	rec.apply(OutcomeHomeRun, 0)
	rec.apply(OutcomeWalk, 0)

	assert.Equal(t, OutcomeWalk, rec.Outcome)
	assert.Equal(t, 1, rec.Walks)
	assert.Zero(t, rec.AtBats)
	assert.Zero(t, rec.Hits)
	assert.Zero(t, rec.HomeRuns)
	assert.Zero(t, rec.Runs)
}

func TestOutcomeValidation(t *testing.T) {
	assert.True(t, OutcomeSingle.Valid())
	assert.True(t, OutcomeSacrificeFly.Valid())
	assert.False(t, OutcomeNone.Valid())
	assert.False(t, Outcome("grand-slam").Valid())
}

func TestOutcomeBasesGained(t *testing.T) {
	assert.Equal(t, 1, OutcomeSingle.BasesGained())
	assert.Equal(t, 2, OutcomeDouble.BasesGained())
	assert.Equal(t, 3, OutcomeTriple.BasesGained())
	assert.Equal(t, 4, OutcomeHomeRun.BasesGained())
	assert.Equal(t, 0, OutcomeWalk.BasesGained())
	assert.False(t, OutcomeError.IsHit())
}
