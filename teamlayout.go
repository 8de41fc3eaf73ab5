// ABOUTME: Team-boundary bookkeeping shared by the scorer and variation operators

package main

// teamOffsets returns, for a team_sizes array, each team's start offset
// (inclusive) and end offset (exclusive) into a genome.
func teamOffsets(teamSizes []int) (start, end []int) {
	start = make([]int, len(teamSizes))
	end = make([]int, len(teamSizes))
	pos := 0
	for k, sz := range teamSizes {
		start[k] = pos
		pos += sz
		end[k] = pos
	}
	return start, end
}
