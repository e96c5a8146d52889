package pairing

import (
	"fmt"
	"iter"

	"github.com/ezBadminton/racquet/core"
)

// DistributeGroups splits the pairs in seed order into numGroups groups.
// The pairs are distributed among the groups in a "snaking"
// order going back and forth, so that every group gets a similar
// share of the strong seeds.
func DistributeGroups(pairs []core.Pair, numGroups int) [][]core.Pair {
	if numGroups < 1 {
		return nil
	}

	groups := make([][]core.Pair, 0, numGroups)
	maxGroupSize := len(pairs) / numGroups
	if len(pairs)%numGroups != 0 {
		maxGroupSize += 1
	}
	for range numGroups {
		groups = append(groups, make([]core.Pair, 0, maxGroupSize))
	}

	for len(pairs) > 0 {
		snakeDirection := len(groups[0])%2 == 0
		sliceSize := min(len(pairs), numGroups)
		current := pairs[:sliceSize]
		pairs = pairs[sliceSize:]

		for i, pair := range directionalSeq(current, snakeDirection) {
			// The higher index groups get the remaining pairs
			// if not divisible by numGroups
			i += numGroups - sliceSize
			groups[i] = append(groups[i], pair)
		}
	}

	return groups
}

// Returns an index-value-sequence that iterates the given slice normally
// when the direction bool is true, otherwise iterates in
// reverse order. The index is ascending in both cases.
func directionalSeq[V any](slice []V, direction bool) iter.Seq2[int, V] {
	l := len(slice)
	return func(yield func(int, V) bool) {
		for i := range l {
			v := i
			if !direction {
				v = l - i - 1
			}
			if !yield(i, slice[v]) {
				return
			}
		}
	}
}

// GenerateGroupPhase creates the group divisions of a hybrid
// tournament. Every group plays a pairs league. Groups need at least
// 2 pairs, so nil is returned when there are less than 2 per group.
func GenerateGroupPhase(pairs []core.Pair, numGroups int) []*core.Division {
	if numGroups < 1 || len(pairs) < 2*numGroups {
		return nil
	}

	divisions := make([]*core.Division, 0, numGroups)
	for i, group := range DistributeGroups(pairs, numGroups) {
		players := make([]string, 0, 2*len(group))
		for _, pair := range group {
			players = append(players, pair.Players()...)
		}

		name := fmt.Sprintf("Grupo %c", 'A'+i)
		division := core.NewDivision(i+1, name, players, GeneratePairsLeague(group))
		division.Stage = core.StageGroup
		divisions = append(divisions, division)
	}
	return divisions
}
