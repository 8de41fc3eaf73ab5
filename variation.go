// ABOUTME: Ordered crossover (mate) and swap mutation operators
// ABOUTME: Crossover respects team boundaries so offspring stay permutations

package main

import "math/rand/v2"

// mate performs ordered crossover respecting team boundaries
// (SPEC_FULL.md §4.3). dst receives the child genome; dad and mom are the
// parent genomes. teamStart/teamEnd are the team boundary offsets shared
// across all genomes. present is a reusable scratch set, cleared here.
func mate(dst, dad, mom []int, teamStart, teamEnd []int, rng *rand.Rand, present map[int]struct{}) {
	k := len(teamStart)

	t1 := rng.IntN(k)
	t2 := rng.IntN(k)
	for t2 == t1 {
		t2 = rng.IntN(k)
	}
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	start := teamStart[t1]
	end := teamEnd[t2]

	copy(dst, dad)

	clear(present)
	for _, v := range mom[start:end] {
		present[v] = struct{}{}
	}

	// Compact dst in place, dropping values that reappear in mom's segment.
	w := 0
	for r := 0; r < len(dst); r++ {
		if _, dup := present[dst[r]]; dup {
			continue
		}
		dst[w] = dst[r]
		w++
	}

	// Shift the tail right to open a hole of length (end-start) at start,
	// then drop mom's segment into the hole.
	copy(dst[end:], dst[start:w])
	copy(dst[start:end], mom[start:end])
}

// mutate performs iterated swap mutation: with probability pMut, swap two
// uniformly-chosen positions and roll again; stop on the first miss.
func mutate(genome []int, pMut float64, rng *rand.Rand) {
	n := len(genome)
	for rng.Float64() < pMut {
		a := rng.IntN(n)
		b := rng.IntN(n)
		genome[a], genome[b] = genome[b], genome[a]
	}
}
