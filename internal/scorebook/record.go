package scorebook

// reset zeroes every counter on the record. The stored outcome tag is left
// to the caller; a fresh outcome is always applied right after.
func (r *AtBatRecord) reset() {
	r.AtBats = 0
	r.Hits = 0
	r.Doubles = 0
	r.Triples = 0
	r.HomeRuns = 0
	r.Walks = 0
	r.DeadBalls = 0
	r.StolenBases = 0
	r.SacrificeBunts = 0
	r.SacrificeFlies = 0
	r.ErrorsReached = 0
	r.Runs = 0
	r.RBIs = 0
}

// apply replaces the record's content with the effect of a single outcome.
// All counters are zeroed first so exactly one outcome shape is ever active.
func (r *AtBatRecord) apply(outcome Outcome, rbi int) {
	r.reset()
	r.Outcome = outcome
	r.RBIs = rbi

	switch outcome {
	case OutcomeOut:
		r.AtBats = 1
	case OutcomeOutRBI:
		// An out that still drove a run in, e.g. a ground-out with a runner
		// on third. Always worth at least one RBI.
		r.AtBats = 1
		if rbi < 1 {
			r.RBIs = 1
		}
	case OutcomeSingle:
		r.AtBats = 1
		r.Hits = 1
	case OutcomeDouble:
		r.AtBats = 1
		r.Hits = 1
		r.Doubles = 1
	case OutcomeTriple:
		r.AtBats = 1
		r.Hits = 1
		r.Triples = 1
	case OutcomeHomeRun:
		r.AtBats = 1
		r.Hits = 1
		r.HomeRuns = 1
		r.Runs = 1
	case OutcomeWalk:
		r.Walks = 1
	case OutcomeDeadBall:
		// Counted together with walks for on-base purposes.
		r.Walks = 1
		r.DeadBalls = 1
	case OutcomeStolenBase:
		r.StolenBases = 1
	case OutcomeSacrificeBunt:
		r.SacrificeBunts = 1
	case OutcomeSacrificeFly:
		r.SacrificeFlies = 1
	case OutcomeError:
		r.ErrorsReached = 1
	}
}
