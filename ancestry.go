// ABOUTME: Fixed-length ancestor-array helpers for incest-avoidance in selection
// ABOUTME: Flattens the per-generation ancestor windows into one buffer per genome

package main

// ancestryLength returns the flattened buffer length for G generations:
// 2 + 4 + ... + 2^G = 2^(G+1) - 2.
func ancestryLength(generations int) int {
	return (1 << uint(generations+1)) - 2
}

// ancestryOffset returns the start offset and length of generation g's
// window (g is 1-indexed: 1 = parents, 2 = grandparents, ...).
func ancestryOffset(g int) (offset, length int) {
	length = 1 << uint(g)
	offset = length - 2
	return offset, length
}

// buildChildAncestry fills child with the ancestry record for a genome
// produced by mating mom and dad (both length ancestryLength(generations)).
// child must have the same length.
func buildChildAncestry(child, momAncestry, dadAncestry []int, momID, dadID, generations int) {
	off1, _ := ancestryOffset(1)
	child[off1] = momID
	child[off1+1] = dadID

	for g := 2; g <= generations; g++ {
		offG, lenG := ancestryOffset(g)
		half := lenG / 2
		offPrev, _ := ancestryOffset(g - 1)

		copy(child[offG:offG+half], momAncestry[offPrev:offPrev+half])
		copy(child[offG+half:offG+lenG], dadAncestry[offPrev:offPrev+half])
	}
}

// windowsDisjoint reports whether mom and dad's ancestor arrays are
// disjoint within every corresponding generation window, for generations
// 1..G. This is the incest-avoidance check from SPEC_FULL.md §4.2.
func windowsDisjoint(momAncestry, dadAncestry []int, generations int) bool {
	for g := 1; g <= generations; g++ {
		offset, length := ancestryOffset(g)
		momWindow := momAncestry[offset : offset+length]
		dadWindow := dadAncestry[offset : offset+length]

		seen := make(map[int]struct{}, length)
		for _, id := range momWindow {
			seen[id] = struct{}{}
		}
		for _, id := range dadWindow {
			if _, ok := seen[id]; ok {
				return false
			}
		}
	}
	return true
}
