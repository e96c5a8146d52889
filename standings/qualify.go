package standings

import (
	"slices"

	"github.com/ezBadminton/racquet/core"
)

type qualifier struct {
	token string
	group int
}

// Qualifiers returns the participant tokens of the best perGroup
// entries of every group in playoff seed order.
//
// The group winners are seeded first in group order, then the
// runners-up and so on with the group order reversed on every other
// rank. Entries of the same rank swap their seeds where two entries
// of one group would meet in the first round of the balanced bracket.
// That can only remain when the group has more qualifiers than
// there are groups to separate them.
func Qualifiers(groups [][]*Row, perGroup int) []string {
	total := 0
	for _, g := range groups {
		total += min(perGroup, len(g))
	}

	seeds := make([]qualifier, 0, total)
	for rank := range perGroup {
		start := len(seeds)
		for g, rows := range groups {
			if rank < len(rows) {
				seeds = append(seeds, qualifier{token: rows[rank].Token(), group: g})
			}
		}
		if rank%2 == 1 {
			slices.Reverse(seeds[start:])
		}
		separateGroups(seeds, start, total)
	}

	tokens := make([]string, 0, total)
	for _, q := range seeds {
		tokens = append(tokens, q.token)
	}
	return tokens
}

// separateGroups swaps seeds inside of the rank that starts at the
// given index until no seed of it meets an already seeded entry of
// its own group in the first round.
func separateGroups(seeds []qualifier, start, total int) {
	meetsOwnGroup := func(seed int) bool {
		opponent := core.FirstRoundOpponent(seed, total)
		return opponent >= 0 && opponent < len(seeds) && seeds[opponent].group == seeds[seed].group
	}

	for i := start; i < len(seeds); i += 1 {
		if !meetsOwnGroup(i) {
			continue
		}
		for j := start; j < len(seeds); j += 1 {
			if j == i {
				continue
			}
			seeds[i], seeds[j] = seeds[j], seeds[i]
			if !meetsOwnGroup(i) && !meetsOwnGroup(j) {
				break
			}
			seeds[i], seeds[j] = seeds[j], seeds[i]
		}
	}
}

// GroupsFinished reports whether all matches of the groups are
// decided so that the playoff can be drawn.
func GroupsFinished(groups []*core.Division) bool {
	for _, g := range groups {
		for _, m := range g.Matches {
			if m.Status == core.StatusPending && m.Pair1.IsReal() && m.Pair2.IsReal() {
				return false
			}
		}
	}
	return true
}

// BuildPlayoff draws the elimination bracket of a hybrid format
// from the standings of its group divisions.
func BuildPlayoff(groups []*core.Division, format core.HybridFormat) []*core.Division {
	rows := make([][]*Row, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, Generate(g, format))
	}

	tokens := Qualifiers(rows, format.QualifiersPerGroup)
	pairs := make([]core.Pair, 0, len(tokens))
	for _, token := range tokens {
		// Tokens of rows are always well formed
		pair, _ := core.ParseParticipant(token)
		pairs = append(pairs, pair)
	}

	divisions := core.GenerateBracketFromPairs(pairs, format.Consolation)
	if len(groups) > 0 {
		for _, d := range divisions {
			d.Category = groups[0].Category
			d.Number += len(groups)
		}
	}
	return divisions
}
