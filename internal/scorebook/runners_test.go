package scorebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceOnSingle(t *testing.T) {
	bases := newBaseState()
	bases.bases[1]["a"] = struct{}{}
	bases.bases[3]["c"] = struct{}{}

	scored := bases.Advance(1)

	assert.Equal(t, []string{"c"}, scored)
	assert.Empty(t, bases.Occupants(1))
	assert.Equal(t, []string{"a"}, bases.Occupants(2))
	assert.Empty(t, bases.Occupants(3))
}

func TestAdvanceOnDouble(t *testing.T) {
	bases := newBaseState()
	bases.bases[1]["a"] = struct{}{}
	bases.bases[2]["b"] = struct{}{}

	scored := bases.Advance(2)

	assert.Empty(t, scored)
	assert.ElementsMatch(t, []string{"a", "b"}, bases.Occupants(3))
	assert.Empty(t, bases.Occupants(1))
	assert.Empty(t, bases.Occupants(2))
}

func TestAdvanceOnHomerunClearsBases(t *testing.T) {
	bases := newBaseState()
	bases.bases[1]["a"] = struct{}{}
	bases.bases[2]["b"] = struct{}{}

	scored := bases.Advance(4)

	assert.ElementsMatch(t, []string{"a", "b"}, scored)
	for base := 1; base <= 3; base++ {
		assert.Empty(t, bases.Occupants(base))
	}
}

func TestPlaceBatterOnHit(t *testing.T) {
	bases := newBaseState()
	bases.PlaceBatter("a", OutcomeSingle)
	bases.PlaceBatter("b", OutcomeWalk)

	assert.ElementsMatch(t, []string{"a", "b"}, bases.Occupants(1))
}

func TestPlaceBatterOnErrorShiftsRunners(t *testing.T) {
	bases := newBaseState()
	bases.bases[1]["a"] = struct{}{}
	bases.bases[2]["b"] = struct{}{}

	bases.PlaceBatter("c", OutcomeError)

	assert.Equal(t, []string{"c"}, bases.Occupants(1))
	assert.Equal(t, []string{"a"}, bases.Occupants(2))
	assert.Equal(t, []string{"b"}, bases.Occupants(3))
}

func TestPlaceBatterIgnoresNonReachingOutcomes(t *testing.T) {
	bases := newBaseState()
	bases.PlaceBatter("a", OutcomeOut)
	bases.PlaceBatter("b", OutcomeHomeRun)
	bases.PlaceBatter("c", OutcomeSacrificeFly)

	for base := 1; base <= 3; base++ {
		assert.Empty(t, bases.Occupants(base))
	}
}

func TestRemoveRunner(t *testing.T) {
	bases := newBaseState()
	bases.bases[2]["a"] = struct{}{}
	bases.bases[3]["a"] = struct{}{}

	bases.RemoveRunner("a")

	for base := 1; base <= 3; base++ {
		assert.Empty(t, bases.Occupants(base))
	}
}
