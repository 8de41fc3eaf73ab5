// ABOUTME: Tests for progress event throttling and channel delivery

package main

import "testing"

func testPopulation() *Population {
	pop := newPopulation(3, 2, ancestryLength(1))
	pop.scores = []float64{10, 20, 5}
	pop.orderedIndex = []int{1, 0, 2}
	return pop
}

func TestProgressTrackerSendsOnImprovement(t *testing.T) {
	ch := make(chan ProgressEvent, 1)
	tracker := newProgressTracker(ch)

	tracker.sendUpdate(1, testPopulation(), 0.5, true)

	select {
	case event := <-ch:
		if event.Generation != 1 {
			t.Errorf("Generation = %d, want 1", event.Generation)
		}
		if event.BestScore != 20 {
			t.Errorf("BestScore = %v, want 20", event.BestScore)
		}
	default:
		t.Fatal("expected an event to be sent on improvement")
	}
}

func TestProgressTrackerSkipsNonSampledNonImprovement(t *testing.T) {
	ch := make(chan ProgressEvent, 1)
	tracker := newProgressTracker(ch)

	tracker.sendUpdate(1, testPopulation(), 0.5, false)

	select {
	case <-ch:
		t.Fatal("expected no event for a non-improving, non-sampled generation")
	default:
	}
}

func TestProgressTrackerSendsOnSampleInterval(t *testing.T) {
	ch := make(chan ProgressEvent, 1)
	tracker := newProgressTracker(ch)

	tracker.sendUpdate(progressSampleInterval, testPopulation(), 0.5, false)

	select {
	case event := <-ch:
		if event.Scores == nil {
			t.Error("expected full score vector on a sampled generation")
		}
	default:
		t.Fatal("expected an event on a sample-interval generation")
	}
}

func TestProgressTrackerNilChannelIsNoOp(t *testing.T) {
	tracker := newProgressTracker(nil)
	tracker.sendUpdate(1, testPopulation(), 0.5, true)
	tracker.close() // must not panic on nil channel
}

func TestProgressTrackerCloseIsIdempotent(t *testing.T) {
	ch := make(chan ProgressEvent, 1)
	tracker := newProgressTracker(ch)
	tracker.close()
	tracker.close() // must not panic on double close
}
