// ABOUTME: Progress event construction and throttled channel delivery
// ABOUTME: Adapts the Driver's per-generation state into a caller-facing event

package main

import (
	"sync"
	"time"
)

// ProgressEvent reports Driver state for one generation (SPEC_FULL.md §4.5,
// §6). Scores carries the full per-genome score vector only on sampled
// generations (see progressTracker.sendUpdate); it is nil otherwise so most
// events stay cheap to send.
type ProgressEvent struct {
	Generation   int
	BestScore    float64
	Stability    float64
	GenPerSec    float64
	OrderedIndex []int
	Scores       []float64
}

// progressSampleInterval is the cadence at which the full score vector rides
// along with a progress event; SPEC_FULL.md leaves this cadence as an
// implementation choice.
const progressSampleInterval = 10

// progressTracker throttles progress emission: send every generation the
// best score improves, otherwise only every progressSampleInterval
// generations, mirroring the teacher's non-blocking "skip if channel full"
// delivery.
type progressTracker struct {
	updateChan   chan<- ProgressEvent
	lastGenTime  time.Time
	lastGenCount int
	closeOnce    sync.Once
}

func newProgressTracker(ch chan<- ProgressEvent) *progressTracker {
	return &progressTracker{updateChan: ch, lastGenTime: time.Now()}
}

func (pt *progressTracker) sendUpdate(generation int, pop *Population, stability float64, improved bool) {
	if pt.updateChan == nil {
		return
	}
	if !improved && generation%progressSampleInterval != 0 {
		return
	}

	now := time.Now()
	elapsed := now.Sub(pt.lastGenTime).Seconds()
	genPerSec := 0.0
	if elapsed > 0 {
		genPerSec = float64(generation-pt.lastGenCount) / elapsed
	}

	event := ProgressEvent{
		Generation:   generation,
		BestScore:    pop.scores[pop.orderedIndex[0]],
		Stability:    stability,
		GenPerSec:    genPerSec,
		OrderedIndex: append([]int(nil), pop.orderedIndex...),
	}
	if generation%progressSampleInterval == 0 {
		event.Scores = append([]float64(nil), pop.scores...)
	}

	select {
	case pt.updateChan <- event:
	default:
		// Channel full, skip this update rather than block the Driver.
	}

	pt.lastGenTime = now
	pt.lastGenCount = generation
}

func (pt *progressTracker) close() {
	if pt.updateChan != nil {
		pt.closeOnce.Do(func() { close(pt.updateChan) })
	}
}
