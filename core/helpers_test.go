package core

import "fmt"

// Returns the ids p1 to pn
func PlayerSlice(num int) []string {
	players := make([]string, 0, num)
	for i := range num {
		players = append(players, fmt.Sprintf("p%d", i+1))
	}
	return players
}

func finish(match *Match, p1, p2 int) {
	match.Finish(&Score{Sets: []Set{{P1: p1, P2: p2}}}, MatchPoints{P1: p1, P2: p2})
}

func countPair(division *Division, pair Pair) int {
	count := 0
	for _, m := range division.Matches {
		if m.ContainsPair(pair) {
			count += 1
		}
	}
	return count
}

func single(id string) Pair {
	return Pair{P1: id}
}
