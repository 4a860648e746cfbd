package validator

import "sort"

// longestIncreasing returns the indexes into seq of one longest strictly
// increasing subsequence. Applied to the actual positions of the shared
// identifiers taken in expected order, it yields their longest common
// subsequence, since identifiers are unique on both sides.
func longestIncreasing(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}

	tails := make([]int, 0, len(seq)) // index of the smallest tail for each length
	prev := make([]int, len(seq))

	for i, v := range seq {
		n := sort.Search(len(tails), func(k int) bool { return seq[tails[k]] >= v })
		if n > 0 {
			prev[i] = tails[n-1]
		} else {
			prev[i] = -1
		}
		if n == len(tails) {
			tails = append(tails, i)
		} else {
			tails[n] = i
		}
	}

	result := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i, k = i-1, prev[k] {
		result[i] = k
	}
	return result
}
