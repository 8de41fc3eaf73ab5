// ABOUTME: Tournament selection with ancestor-based incest avoidance

package main

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Selector picks parent pairs from a population. Selection, mating, and
// mutation are single-threaded (SPEC_FULL.md §5), so one Selector with one
// rng is shared across a whole generation step.
type Selector struct {
	rng              *rand.Rand
	tournamentSize   int
	pTop             float64
	generations      int
	maxIncestRetries int
	tournament       []int // reused scratch, length tournamentSize
}

// NewSelector derives tournament size T = max(2, populationSize/500) per
// SPEC_FULL.md §4.2.
func NewSelector(rng *rand.Rand, populationSize, generations int, pTop float64) *Selector {
	t := populationSize / 500
	if t < 2 {
		t = 2
	}
	return &Selector{
		rng:              rng,
		tournamentSize:   t,
		pTop:             pTop,
		generations:      generations,
		maxIncestRetries: t * 4,
		tournament:       make([]int, t),
	}
}

// SelectParents samples a tournament of distinct genomes (repeats occur only
// once the tournament is larger than the population), picks mom/dad by
// rank-biased sampling, resolves incest by incrementing dad's rank until
// ancestor windows are disjoint (bounded retries), and builds the child's
// ancestry record.
func (sel *Selector) SelectParents(pop *Population) (momIdx, dadIdx int, childAncestry []int) {
	for i := range sel.tournament {
		idx := sel.rng.IntN(len(pop.genomes))
		for i < len(pop.genomes) && slices.Contains(sel.tournament[:i], idx) {
			idx = sel.rng.IntN(len(pop.genomes))
		}
		sel.tournament[i] = idx
	}
	slices.SortFunc(sel.tournament, func(a, b int) int {
		return cmp.Compare(pop.scores[b], pop.scores[a])
	})

	momRank := sel.pickRank()
	dadRank := sel.pickRank()
	if dadRank == momRank {
		dadRank = (dadRank + 1) % sel.tournamentSize
	}

	momIdx = sel.tournament[momRank]
	dadIdx = sel.tournament[dadRank]

	for retries := 0; !windowsDisjoint(pop.ancestry[momIdx], pop.ancestry[dadIdx], sel.generations) && retries < sel.maxIncestRetries; retries++ {
		dadRank = (dadRank + 1) % sel.tournamentSize
		if dadRank == momRank {
			dadRank = (dadRank + 1) % sel.tournamentSize
		}
		dadIdx = sel.tournament[dadRank]
	}

	childAncestry = make([]int, len(pop.ancestry[momIdx]))
	buildChildAncestry(childAncestry, pop.ancestry[momIdx], pop.ancestry[dadIdx], pop.genomeIDs[momIdx], pop.genomeIDs[dadIdx], sel.generations)

	return momIdx, dadIdx, childAncestry
}

// pickRank advances an uncapped counter with probability (1 - pTop) per
// step, stopping with probability pTop, then wraps the result into
// [0, tournamentSize) with a trailing modulo rather than capping it at
// tournamentSize-1. With pTop <= 0 the walk would never stop, so that case
// draws a uniform rank directly; pTop >= 1 always returns rank 0.
func (sel *Selector) pickRank() int {
	switch {
	case sel.pTop <= 0:
		return sel.rng.IntN(sel.tournamentSize)
	case sel.pTop >= 1:
		return 0
	}
	rank := 0
	for sel.rng.Float64() >= sel.pTop {
		rank++
	}
	return rank % sel.tournamentSize
}
