// ABOUTME: Driver: termination loop, score-stability tracking, progress
// ABOUTME: emission, and cooperative cancellation (SPEC_FULL.md §4.5)

package main

import (
	"math/rand/v2"
	"sync/atomic"

	"teamforge/config"
)

const stabilityEpsilon = 1e-9

// Driver owns one optimization run: it builds the initial population, steps
// generations until a termination condition fires or cancellation is
// requested, and returns the best genome found.
type Driver struct {
	pm     *PopulationManager
	scorer *Scorer
	exec   *ParallelExecutor
	cfg    config.GAConfig
	cancel *atomic.Bool
}

// NewDriver assembles a Driver from the resolved run inputs. studentIDs is
// the active roster id list; teamSizes the layout to partition it into.
func NewDriver(seed uint64, studentIDs []int, teamSizes []int, roster *Roster, data *DataOptions, opts *TeamingOptions, cfg config.GAConfig, workers int, cancel *atomic.Bool) *Driver {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pm := NewPopulationManager(rng, studentIDs, teamSizes, cfg.PopulationSize, cfg.NumAncestorGenerations, cfg.NumElites, cfg.TopGenomeLikelihood, cfg.MutationLikelihood)
	if t := cfg.ResolvedTournamentSize(); t != pm.selector.tournamentSize {
		pm.selector.tournamentSize = t
		pm.selector.maxIncestRetries = t * 4
		pm.selector.tournament = make([]int, t)
	}
	scorer := NewScorer(roster, data, opts, teamSizes)
	exec := NewParallelExecutor(workers, data, scorer.TeamCount())

	return &Driver{pm: pm, scorer: scorer, exec: exec, cfg: cfg, cancel: cancel}
}

// Close releases the Driver's worker pool.
func (d *Driver) Close() { d.exec.Close() }

// Run executes the termination loop (SPEC_FULL.md §4.5) and returns the
// best genome found, its aggregate score, and its per-team scores. progress
// may be nil.
func (d *Driver) Run(progress chan<- ProgressEvent) (bestGenome []int, bestScore float64, bestPerTeam []float64) {
	tracker := newProgressTracker(progress)
	defer tracker.close()

	pop := d.pm.InitPopulation(d.cfg.PopulationSize)
	next := newPopulation(d.cfg.PopulationSize, len(d.pm.studentIDs), ancestryLength(d.cfg.NumAncestorGenerations))

	d.exec.ScoreAll(d.scorer, pop)

	history := make([]float64, 0, d.cfg.GenerationsOfStability)
	generation := 0
	stability := 0.0
	prevBest := pop.scores[pop.orderedIndex[0]]

	for {
		best := pop.scores[pop.orderedIndex[0]]
		history = pushHistory(history, best, d.cfg.GenerationsOfStability)
		stability = computeStability(best, history)

		improved := generation == 0 || best > prevBest
		tracker.sendUpdate(generation, pop, stability, improved)
		prevBest = best

		terminate := d.cancel.Load() || !(generation < d.cfg.MinGenerations ||
			(generation < d.cfg.MaxGenerations && stability < d.cfg.MinScoreStability))
		if terminate {
			break
		}

		d.pm.Step(pop, next)
		pop, next = next, pop
		d.exec.ScoreAll(d.scorer, pop)
		generation++
	}

	tracker.sendUpdate(generation, pop, stability, true)

	bestIdx := pop.orderedIndex[0]
	bestGenome = append([]int(nil), pop.genomes[bestIdx]...)
	bestPerTeam = make([]float64, d.scorer.TeamCount())
	bestScore = d.scorer.Score(bestGenome, bestPerTeam, newScoreScratch(scorerDataOf(d.scorer)))

	return bestGenome, bestScore, bestPerTeam
}

// scorerDataOf exposes the DataOptions a Scorer was built with, so Run can
// build one last scratch buffer for the final re-score without the Scorer
// needing to export its scratch machinery.
func scorerDataOf(s *Scorer) *DataOptions { return s.data }

// pushHistory appends score to history, evicting the oldest entry once
// history reaches window length.
func pushHistory(history []float64, score float64, window int) []float64 {
	history = append(history, score)
	if len(history) > window {
		history = history[len(history)-window:]
	}
	return history
}

// computeStability returns best / (max-min) over history, or a large
// finite value when the window is flat (max == min), per SPEC_FULL.md §4.5.
func computeStability(best float64, history []float64) float64 {
	mn, mx := history[0], history[0]
	for _, v := range history {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	if mx == mn {
		return best / stabilityEpsilon
	}
	return best / (mx - mn)
}
