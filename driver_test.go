// ABOUTME: Tests for the Driver termination loop and stability tracking

package main

import (
	"sort"
	"sync/atomic"
	"testing"

	"teamforge/config"
)

func TestDriverRunReturnsValidPermutation(t *testing.T) {
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

	cfg := config.GAConfig{
		PopulationSize:         20,
		NumElites:              2,
		NumAncestorGenerations: 2,
		TopGenomeLikelihood:    0.5,
		MutationLikelihood:     0.3,
		MinGenerations:         3,
		MaxGenerations:         5,
		GenerationsOfStability: 3,
		MinScoreStability:      1e12, // effectively unreachable, forces MaxGenerations termination
	}

	cancel := &atomic.Bool{}
	studentIDs := []int{0, 1, 2, 3}
	driver := NewDriver(1, studentIDs, []int{2, 2}, roster, data, opts, cfg, 2, cancel)
	defer driver.Close()

	genome, score, perTeam := driver.Run(nil)

	want := append([]int(nil), studentIDs...)
	sort.Ints(want)
	got := append([]int(nil), genome...)
	sort.Ints(got)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("best genome is not a permutation of roster ids: %v", genome)
		}
	}
	if len(perTeam) != 2 {
		t.Errorf("expected 2 per-team scores, got %d", len(perTeam))
	}
	if score < -1000 || score > 1000 {
		t.Errorf("score out of plausible range: %v", score)
	}
}

func TestDriverRunRespectsCancellation(t *testing.T) {
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

	cfg := config.GAConfig{
		PopulationSize:         10,
		NumElites:              1,
		NumAncestorGenerations: 2,
		TopGenomeLikelihood:    0.5,
		MutationLikelihood:     0.3,
		MinGenerations:         0,
		MaxGenerations:         1000,
		GenerationsOfStability: 3,
		MinScoreStability:      1e12,
	}

	cancel := &atomic.Bool{}
	cancel.Store(true) // cancel before the first generation check

	driver := NewDriver(2, []int{0, 1, 2, 3}, []int{2, 2}, roster, data, opts, cfg, 2, cancel)
	defer driver.Close()

	_, _, perTeam := driver.Run(nil)
	if len(perTeam) != 2 {
		t.Errorf("expected a valid result even when cancelled immediately, got perTeam=%v", perTeam)
	}
}
