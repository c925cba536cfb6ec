package vdom

// LIS is the exported form of longestIncreasingSubsequence, for
// consumers outside this package (the driver dispatcher's live-node
// reconciler) that need the same minimal-move computation spec.md §9
// prescribes without duplicating the patience-sort implementation.
func LIS(seq []int) []int { return longestIncreasingSubsequence(seq) }

// longestIncreasingSubsequence returns the indices (into seq) of a
// longest strictly-increasing subsequence of seq, ignoring any entry
// equal to -1 (spec.md's sentinel for "no matching old index"). This is
// the standard patience-sort variant: O(n log n) via binary search over
// tails, with parent pointers to reconstruct the subsequence. Indices
// returned are positions within seq whose old index should NOT move
// during reconciliation (spec.md §4.8/§9).
func longestIncreasingSubsequence(seq []int) []int {
	n := len(seq)
	if n == 0 {
		return nil
	}

	// tails[k] = index into seq of the smallest tail value for an
	// increasing subsequence of length k+1.
	tails := make([]int, 0, n)
	// predecessors[i] = index into seq of the element preceding seq[i]
	// in the subsequence ending at i, or -1.
	predecessors := make([]int, n)

	for i, v := range seq {
		if v < 0 {
			predecessors[i] = -1
			continue
		}
		// Binary search tails for the first tail whose seq value >= v.
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			predecessors[i] = tails[lo-1]
		} else {
			predecessors[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	if len(tails) == 0 {
		return nil
	}
	result := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(tails) - 1; i >= 0; i-- {
		result[i] = k
		k = predecessors[k]
	}
	return result
}
