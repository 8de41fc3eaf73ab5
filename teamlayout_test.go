// ABOUTME: Tests for team-boundary offset bookkeeping

package main

import (
	"reflect"
	"testing"
)

func TestTeamOffsets(t *testing.T) {
	start, end := teamOffsets([]int{4, 3, 5})

	wantStart := []int{0, 4, 7}
	wantEnd := []int{4, 7, 12}

	if !reflect.DeepEqual(start, wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !reflect.DeepEqual(end, wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestTeamOffsetsSingleTeam(t *testing.T) {
	start, end := teamOffsets([]int{6})
	if start[0] != 0 || end[0] != 6 {
		t.Errorf("got start=%v end=%v, want start=[0] end=[6]", start, end)
	}
}
