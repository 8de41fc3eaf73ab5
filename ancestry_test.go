// ABOUTME: Tests for fixed-length ancestor-array helpers

package main

import "testing"

func TestAncestryLength(t *testing.T) {
	tests := []struct {
		generations int
		want        int
	}{
		{1, 2},
		{2, 6},
		{3, 14},
		{4, 30},
	}
	for _, tt := range tests {
		if got := ancestryLength(tt.generations); got != tt.want {
			t.Errorf("ancestryLength(%d) = %d, want %d", tt.generations, got, tt.want)
		}
	}
}

func TestAncestryOffset(t *testing.T) {
	tests := []struct {
		g          int
		wantOffset int
		wantLength int
	}{
		{1, 0, 2},
		{2, 2, 4},
		{3, 6, 8},
	}
	for _, tt := range tests {
		offset, length := ancestryOffset(tt.g)
		if offset != tt.wantOffset || length != tt.wantLength {
			t.Errorf("ancestryOffset(%d) = (%d, %d), want (%d, %d)", tt.g, offset, length, tt.wantOffset, tt.wantLength)
		}
	}
}

func TestBuildChildAncestry(t *testing.T) {
	generations := 2
	momAncestry := make([]int, ancestryLength(generations))
	dadAncestry := make([]int, ancestryLength(generations))

	// Generation-1 window (mom's own parents) at offset 0, length 2.
	momAncestry[0], momAncestry[1] = 100, 101
	dadAncestry[0], dadAncestry[1] = 200, 201

	child := make([]int, ancestryLength(generations))
	buildChildAncestry(child, momAncestry, dadAncestry, 1, 2, generations)

	if child[0] != 1 || child[1] != 2 {
		t.Fatalf("generation-1 window = %v, want [1 2] (mom id, dad id)", child[0:2])
	}

	// Generation-2 window: mom's half copied from mom's generation-1 window,
	// dad's half from dad's generation-1 window.
	offG, lenG := ancestryOffset(2)
	half := lenG / 2
	got := child[offG : offG+lenG]
	want := []int{100, 101, 200, 201}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("generation-2 window[%d] = %d, want %d (half=%d)", i, got[i], want[i], half)
		}
	}
}

func TestWindowsDisjointTrueWhenNoOverlap(t *testing.T) {
	generations := 1
	mom := []int{1, 2}
	dad := []int{3, 4}
	if !windowsDisjoint(mom, dad, generations) {
		t.Errorf("expected disjoint ancestry windows to report true")
	}
}

func TestWindowsDisjointFalseOnSharedAncestor(t *testing.T) {
	generations := 1
	mom := []int{1, 2}
	dad := []int{2, 3}
	if windowsDisjoint(mom, dad, generations) {
		t.Errorf("expected shared ancestor id to report not disjoint")
	}
}

func TestWindowsDisjointChecksAllGenerations(t *testing.T) {
	generations := 2
	mom := make([]int, ancestryLength(generations))
	dad := make([]int, ancestryLength(generations))
	for i := range mom {
		mom[i] = i + 1
		dad[i] = i + 100
	}
	if !windowsDisjoint(mom, dad, generations) {
		t.Errorf("expected fully distinct ids to be disjoint")
	}

	offG, _ := ancestryOffset(2)
	dad[offG] = mom[offG] // collide only in the generation-2 window
	if windowsDisjoint(mom, dad, generations) {
		t.Errorf("expected a generation-2 collision to make windows non-disjoint")
	}
}
