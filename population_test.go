// ABOUTME: Tests for population initialization and per-generation stepping

package main

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func newTestPopulationManager() (*PopulationManager, []int) {
	studentIDs := []int{10, 11, 12, 13, 14, 15, 16, 17}
	teamSizes := []int{4, 4}
	rng := rand.New(rand.NewPCG(1, 1))
	pm := NewPopulationManager(rng, studentIDs, teamSizes, 20, 2, 2, 0.33, 0.5)
	return pm, studentIDs
}

func TestInitPopulationGenomesArePermutations(t *testing.T) {
	pm, studentIDs := newTestPopulationManager()
	pop := pm.InitPopulation(20)

	want := append([]int(nil), studentIDs...)
	sort.Ints(want)

	for i, genome := range pop.genomes {
		got := append([]int(nil), genome...)
		sort.Ints(got)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("genome %d is not a permutation of the roster ids: got %v", i, genome)
			}
		}
	}
}

func TestInitPopulationAssignsDistinctGenomeIDs(t *testing.T) {
	pm, _ := newTestPopulationManager()
	pop := pm.InitPopulation(20)

	seen := make(map[int]struct{})
	for _, id := range pop.genomeIDs {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate genome id %d", id)
		}
		seen[id] = struct{}{}
	}
}

func TestStepCarriesElitesForward(t *testing.T) {
	pm, studentIDs := newTestPopulationManager()
	pop := pm.InitPopulation(20)

	for i := range pop.scores {
		pop.scores[i] = float64(i)
		pop.orderedIndex[i] = i
	}
	// Descending order: best score is index 19, then 18, ...
	sort.Slice(pop.orderedIndex, func(a, b int) bool {
		return pop.scores[pop.orderedIndex[a]] > pop.scores[pop.orderedIndex[b]]
	})

	next := newPopulation(20, len(studentIDs), ancestryLength(2))
	pm.Step(pop, next)

	bestSrc := pop.orderedIndex[0]
	for i := range next.genomes[0] {
		if next.genomes[0][i] != pop.genomes[bestSrc][i] {
			t.Errorf("elite genome not carried forward verbatim at position %d", i)
		}
	}
	if next.genomeIDs[0] != pop.genomeIDs[bestSrc] {
		t.Errorf("elite genome id not carried forward: got %d, want %d", next.genomeIDs[0], pop.genomeIDs[bestSrc])
	}
}

func TestStepProducesPermutationsForNonElites(t *testing.T) {
	pm, studentIDs := newTestPopulationManager()
	pop := pm.InitPopulation(20)
	for i := range pop.scores {
		pop.scores[i] = float64(i)
	}

	next := newPopulation(20, len(studentIDs), ancestryLength(2))
	pm.Step(pop, next)

	want := append([]int(nil), studentIDs...)
	sort.Ints(want)

	for i, genome := range next.genomes {
		got := append([]int(nil), genome...)
		sort.Ints(got)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("next genome %d is not a permutation: %v", i, genome)
			}
		}
	}
}
