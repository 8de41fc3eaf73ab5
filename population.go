// ABOUTME: Population manager: initialization, elitism, generational replacement
// ABOUTME: Owns the double-buffered population/ancestry arrays and genome lineage ids

package main

import "math/rand/v2"

// Population is one generation's genomes, ancestry records, scores, and the
// score-descending order index. Double-buffered by the Driver so genome
// buffers are reused across generations; each child's ancestry record is
// allocated fresh by selection.
type Population struct {
	genomes      [][]int
	ancestry     [][]int
	genomeIDs    []int
	scores       []float64
	orderedIndex []int
}

func newPopulation(size, genomeLen, ancestryLen int) *Population {
	pop := &Population{
		genomes:      make([][]int, size),
		ancestry:     make([][]int, size),
		genomeIDs:    make([]int, size),
		scores:       make([]float64, size),
		orderedIndex: make([]int, size),
	}
	for i := range pop.genomes {
		pop.genomes[i] = make([]int, genomeLen)
		pop.ancestry[i] = make([]int, ancestryLen)
		pop.orderedIndex[i] = i
	}
	return pop
}

// PopulationManager implements SPEC_FULL.md §4.4: initialization and the
// per-generation step (elitism, selection+mate, mutation).
type PopulationManager struct {
	rng        *rand.Rand
	selector   *Selector
	studentIDs []int
	teamStart  []int
	teamEnd    []int

	generations int // G, ancestor generations carried
	numElites   int
	pMut        float64

	present      map[int]struct{} // scratch for mate()
	nextGenomeID int
}

// NewPopulationManager builds a manager for the given active roster ids and
// team layout. rng is shared by initialization, selection, and mutation —
// all single-threaded per SPEC_FULL.md §5.
func NewPopulationManager(rng *rand.Rand, studentIDs []int, teamSizes []int, populationSize, generations, numElites int, pTop, pMut float64) *PopulationManager {
	start, end := teamOffsets(teamSizes)
	return &PopulationManager{
		rng:         rng,
		selector:    NewSelector(rng, populationSize, generations, pTop),
		studentIDs:  append([]int(nil), studentIDs...),
		teamStart:   start,
		teamEnd:     end,
		generations: generations,
		numElites:   numElites,
		pMut:        pMut,
		present:     make(map[int]struct{}, len(studentIDs)),
	}
}

// InitPopulation builds the initial population: each genome is a random
// shuffle of the active roster; initial ancestry is filled with uniformly
// random ids so initial matings never appear related.
func (pm *PopulationManager) InitPopulation(size int) *Population {
	n := len(pm.studentIDs)
	ancLen := ancestryLength(pm.generations)
	pop := newPopulation(size, n, ancLen)

	for i := range pop.genomes {
		copy(pop.genomes[i], pm.studentIDs)
		pm.rng.Shuffle(n, func(a, b int) {
			pop.genomes[i][a], pop.genomes[i][b] = pop.genomes[i][b], pop.genomes[i][a]
		})

		for j := range pop.ancestry[i] {
			pop.ancestry[i][j] = pm.studentIDs[pm.rng.IntN(n)]
		}

		pop.genomeIDs[i] = pm.nextGenomeID
		pm.nextGenomeID++
	}

	return pop
}

// Step builds next from pop's current generation: carries the top numElites
// genomes forward, fills the rest via selection+mate, then mutates every
// index but 0.
func (pm *PopulationManager) Step(pop, next *Population) {
	size := len(pop.genomes)

	for e := 0; e < pm.numElites; e++ {
		src := pop.orderedIndex[e]
		copy(next.genomes[e], pop.genomes[src])
		copy(next.ancestry[e], pop.ancestry[src])
		next.genomeIDs[e] = pop.genomeIDs[src]
	}

	for i := pm.numElites; i < size; i++ {
		momIdx, dadIdx, childAncestry := pm.selector.SelectParents(pop)
		mate(next.genomes[i], pop.genomes[dadIdx], pop.genomes[momIdx], pm.teamStart, pm.teamEnd, pm.rng, pm.present)
		next.ancestry[i] = childAncestry
		next.genomeIDs[i] = pm.nextGenomeID
		pm.nextGenomeID++
	}

	for i := 1; i < size; i++ {
		mutate(next.genomes[i], pm.pMut, pm.rng)
	}
}
