package vdom

import (
	"reflect"
	"testing"
)

func TestLongestIncreasingSubsequence(t *testing.T) {
	cases := []struct {
		seq  []int
		want []int
	}{
		{nil, nil},
		{[]int{0, 1, 2}, []int{0, 1, 2}},
		{[]int{2, 1, 0}, []int{2}},
		{[]int{-1, -1, -1}, nil},
		{[]int{3, 1, 2, -1}, []int{1, 2}},
	}
	for _, c := range cases {
		got := longestIncreasingSubsequence(c.seq)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("lis(%v) = %v, want %v", c.seq, got, c.want)
		}
	}
}

// TestKeyedReorderMinimalMoves is spec.md §8 S2: items ["a","b","c","d"]
// reordered to ["d","b","a","c"] should issue exactly 2 moves (the
// matched old indices are [3,1,0,2]; the LIS keeps a and c in place, so
// d and b move), no removes, no inserts -- not "move every index that
// changed position". Moves, inserts and removes are counted the way the
// keyed reconciler derives them from the LIS.
func TestKeyedReorderMinimalMoves(t *testing.T) {
	mk := func(keys ...string) []*VNode {
		var kids []*VNode
		for _, k := range keys {
			kids = append(kids, CreateVNode("li", Props{"key": k}, []any{k}))
		}
		return kids
	}

	prev := mk("a", "b", "c", "d")
	next := mk("d", "b", "a", "c")

	oldIndex := map[string]int{}
	for i, c := range prev {
		oldIndex[c.Key] = i
	}
	newIndexToOldIndex := make([]int, len(next))
	matched := make([]bool, len(prev))
	for i, c := range next {
		newIndexToOldIndex[i] = -1
		if j, ok := oldIndex[c.Key]; ok {
			newIndexToOldIndex[i] = j
			matched[j] = true
		}
	}
	onLIS := map[int]bool{}
	for _, i := range longestIncreasingSubsequence(newIndexToOldIndex) {
		onLIS[i] = true
	}

	var moves, inserts, removes int
	for i, j := range newIndexToOldIndex {
		switch {
		case j == -1:
			inserts++
		case !onLIS[i]:
			moves++
		}
	}
	for _, m := range matched {
		if !m {
			removes++
		}
	}
	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
	if inserts != 0 {
		t.Errorf("inserts = %d, want 0", inserts)
	}
	if removes != 0 {
		t.Errorf("removes = %d, want 0", removes)
	}
}
