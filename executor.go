// ABOUTME: Parallel executor: thread-pool fan-out of per-genome scoring

package main

import (
	"sort"
	"sync"

	"teamforge/pool"
)

// ParallelExecutor scores an entire population's genomes across a worker
// pool, handing each task its own scratch buffers (SPEC_FULL.md §4.6) via a
// sync.Pool so scoring allocates nothing beyond the small per-team slice.
type ParallelExecutor struct {
	workers     *pool.WorkerPool
	scratchPool sync.Pool
	teamCount   int
}

// NewParallelExecutor creates an executor whose worker pool runs one
// goroutine per CPU with a task queue of capacity workers, and whose scratch
// buffers are sized for data's attribute/schedule dimensions.
func NewParallelExecutor(workers int, data *DataOptions, teamCount int) *ParallelExecutor {
	return &ParallelExecutor{
		workers: pool.NewWorkerPool(workers),
		scratchPool: sync.Pool{
			New: func() any { return newScoreScratch(data) },
		},
		teamCount: teamCount,
	}
}

// ScoreAll scores every genome in pop using scorer, then rebuilds
// pop.orderedIndex sorted by score descending. Score writes are to disjoint
// indices, so no locking is needed on the hot path.
func (pe *ParallelExecutor) ScoreAll(scorer *Scorer, pop *Population) {
	for i := range pop.genomes {
		i := i
		pe.workers.Submit(func() {
			scratch := pe.scratchPool.Get().(*scoreScratch)
			perTeam := make([]float64, pe.teamCount)
			pop.scores[i] = scorer.Score(pop.genomes[i], perTeam, scratch)
			pe.scratchPool.Put(scratch)
		})
	}
	pe.workers.Wait()

	for i := range pop.orderedIndex {
		pop.orderedIndex[i] = i
	}
	sort.Slice(pop.orderedIndex, func(a, b int) bool {
		return pop.scores[pop.orderedIndex[a]] > pop.scores[pop.orderedIndex[b]]
	})
}

// Close shuts down the underlying worker pool.
func (pe *ParallelExecutor) Close() { pe.workers.Close() }
