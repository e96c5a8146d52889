package pairing

import (
	"github.com/ezBadminton/racquet/core"
)

// GenerateClassic4 creates the 3 rounds of a group of 4 players in
// which every player partners each of the others once.
func GenerateClassic4(players []string) []*core.Match {
	if len(players) < 4 {
		return nil
	}
	a, b, c, d := players[0], players[1], players[2], players[3]
	return []*core.Match{
		match(1, a, b, c, d),
		match(2, a, c, b, d),
		match(3, a, d, b, c),
	}
}

// GeneratePairsLeague creates a round robin between fixed pairs
// using the circle method.
//
// With an odd number of pairs a bye competitor is added. The pair
// drawn against it rests that round.
func GeneratePairsLeague(pairs []core.Pair) []*core.Match {
	if len(pairs) < 2 {
		return nil
	}

	competitors := make([]core.Pair, len(pairs), len(pairs)+1)
	copy(competitors, pairs)
	if len(competitors)%2 != 0 {
		competitors = append(competitors, core.ByePair())
	}

	numRounds := len(competitors) - 1
	numMatches := len(competitors) / 2

	matches := make([]*core.Match, 0, numRounds*numMatches)
	for roundI := range numRounds {
		for matchI := range numMatches {
			pair1, pair2 := pickOpponents(competitors, roundI, matchI)
			switch {
			case pair1.IsBye():
				matches = append(matches, restingMatch(roundI+1, pair2))
			case pair2.IsBye():
				matches = append(matches, restingMatch(roundI+1, pair1))
			default:
				matches = append(matches, core.NewMatch(roundI+1, pair1, pair2))
			}
		}
	}

	return matches
}

// Returns the opponents of the specified match by the round and
// match index while alternating the first-named side of the
// fixed competitor
func pickOpponents(competitors []core.Pair, roundI, matchI int) (core.Pair, core.Pair) {
	i1 := matchI
	i2 := len(competitors) - 1 - matchI

	i1 = roundRobinCircleIndex(i1, len(competitors), roundI)
	i2 = roundRobinCircleIndex(i2, len(competitors), roundI)

	pair1 := competitors[i1]
	pair2 := competitors[i2]

	if matchI == 0 && roundI%2 != 0 {
		pair1, pair2 = pair2, pair1
	}

	return pair1, pair2
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	index += 1
	return index
}
