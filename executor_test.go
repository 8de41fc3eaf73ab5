// ABOUTME: Tests for the parallel worker-pool scoring executor

package main

import "testing"

func TestScoreAllOrdersByScoreDescending(t *testing.T) {
	students := []Student{
		{ID: 0, Attributes: []int{1}},
		{ID: 1, Attributes: []int{5}},
		{ID: 2, Attributes: []int{1}},
		{ID: 3, Attributes: []int{5}},
	}
	data := &DataOptions{Attributes: []AttributeOptions{{IsOrdered: true, Min: 1, Max: 5}}}
	opts := &TeamingOptions{
		AttributeWeight:   []float64{1},
		DesireHomogeneous: []bool{false},
		IncompatiblePairs: []map[pairKey]struct{}{{}},
	}
	roster := NewRoster(students)
	scorer := NewScorer(roster, data, opts, []int{2, 2})

	pop := newPopulation(3, 4, ancestryLength(1))
	copy(pop.genomes[0], []int{0, 2, 1, 3}) // worst: {1,1} and {5,5}
	copy(pop.genomes[1], []int{0, 1, 2, 3}) // best: {1,5} and {1,5}
	copy(pop.genomes[2], []int{0, 3, 2, 1}) // best: {1,5} and {1,5}

	exec := NewParallelExecutor(2, data, scorer.TeamCount())
	defer exec.Close()

	exec.ScoreAll(scorer, pop)

	if pop.scores[pop.orderedIndex[0]] < pop.scores[pop.orderedIndex[1]] {
		t.Errorf("orderedIndex not sorted descending: scores=%v orderedIndex=%v", pop.scores, pop.orderedIndex)
	}
	if pop.scores[0] >= pop.scores[1] {
		t.Errorf("expected genome 0 (worst pairing) to score below genome 1 (best pairing): %v vs %v", pop.scores[0], pop.scores[1])
	}
}
