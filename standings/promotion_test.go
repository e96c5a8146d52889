package standings

import (
	"fmt"
	"testing"

	"github.com/ezBadminton/racquet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builds a division where the players win in roster order
func rankedDivision(number int, players ...string) *core.Division {
	matches := make([]*core.Match, 0)
	for i := range players {
		for j := i + 1; j < len(players); j += 1 {
			matches = append(matches, played(core.Pair{P1: players[i]}, core.Pair{P1: players[j]}, 6, 0, 6, 0))
		}
	}
	return core.NewDivision(number, "", players, matches)
}

func TestCalculatePromotions(t *testing.T) {
	divisions := []*core.Division{
		rankedDivision(2, "e", "f", "g", "h"),
		rankedDivision(1, "a", "b", "c", "d"),
		rankedDivision(3, "i", "j", "k", "l"),
	}

	regenerated := 0
	regenerate := func(players []string) []*core.Match {
		regenerated += 1
		return []*core.Match{core.NewMatch(1, core.Pair{P1: players[0]}, core.Pair{P1: players[1]})}
	}

	result := CalculatePromotions(divisions, core.ClassicFormat{}, 1, 1, regenerate)
	require.Len(t, result.Divisions, 3)
	assert.Equal(t, 3, regenerated)

	top, middle, bottom := result.Divisions[0], result.Divisions[1], result.Divisions[2]
	assert.Equal(t, 1, top.Number)
	assert.Equal(t, []string{"a", "b", "c", "e"}, top.Players)
	assert.Equal(t, []string{"d", "f", "g", "i"}, middle.Players)
	assert.Equal(t, []string{"h", "j", "k", "l"}, bottom.Players)
	assert.Len(t, middle.Matches, 1)

	assert.Contains(t, result.Moves, Move{Player: "e", From: 2, To: 1})
	assert.Contains(t, result.Moves, Move{Player: "d", From: 1, To: 2})
	assert.Contains(t, result.Moves, Move{Player: "h", From: 2, To: 3})
	assert.Contains(t, result.Moves, Move{Player: "i", From: 3, To: 2})
	assert.Len(t, result.Moves, 4)
}

func TestPromotionsWithoutRegenerate(t *testing.T) {
	divisions := []*core.Division{
		rankedDivision(1, "a", "b"),
		rankedDivision(2, "c", "d"),
	}

	result := CalculatePromotions(divisions, core.ClassicFormat{}, 1, 1, nil)
	assert.Equal(t, []string{"a", "c"}, result.Divisions[0].Players)
	assert.Equal(t, []string{"b", "d"}, result.Divisions[1].Players)
	assert.Empty(t, result.Divisions[0].Matches)
}

// Builds the group rows with the ids in ranking order
func groupRows(ids ...string) []*Row {
	rows := make([]*Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &Row{ID: id, Pair: core.Pair{P1: id}})
	}
	return rows
}

// Builds n groups of size entries named by group letter and rank
func lettered(n, size int) [][]*Row {
	groups := make([][]*Row, 0, n)
	for g := range n {
		ids := make([]string, 0, size)
		for rank := range size {
			ids = append(ids, fmt.Sprintf("%c%d", 'a'+g, rank+1))
		}
		groups = append(groups, groupRows(ids...))
	}
	return groups
}

func TestQualifiers(t *testing.T) {
	groups := [][]*Row{
		groupRows("a1", "a2", "a3"),
		groupRows("b1", "b2", "b3"),
		groupRows("c1", "c2", "c3"),
	}

	tokens := Qualifiers(groups, 2)
	assert.Equal(t, []string{"a1", "b1", "c1", "c2", "b2", "a2"}, tokens)

	tokens = Qualifiers(lettered(2, 2), 2)
	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, tokens)
}

func TestQualifiersSeparateGroups(t *testing.T) {
	for _, tc := range []struct{ groups, perGroup int }{
		{2, 2}, {3, 2}, {4, 2}, {5, 2}, {6, 2}, {3, 3}, {4, 3}, {5, 3},
	} {
		tokens := Qualifiers(lettered(tc.groups, tc.perGroup), tc.perGroup)
		require.Len(t, tokens, tc.groups*tc.perGroup)

		divisions, err := core.GenerateBracket(tokens, false)
		require.NoError(t, err)
		for _, m := range divisions[0].Round(1) {
			if !m.Pair1.IsReal() || !m.Pair2.IsReal() {
				continue
			}
			assert.NotEqual(t, m.Pair1.P1[0], m.Pair2.P1[0],
				"%d groups of %d: %v meets its own group", tc.groups, tc.perGroup, m)
		}
	}
}

func TestBuildPlayoff(t *testing.T) {
	groupA := core.NewDivision(1, "A", nil, []*core.Match{
		played(pair("a", "b"), pair("c", "d"), 6, 1, 6, 1),
	})
	groupB := core.NewDivision(2, "B", nil, []*core.Match{
		played(pair("e", "f"), pair("g", "h"), 1, 6, 1, 6),
	})
	groups := []*core.Division{groupA, groupB}
	require.True(t, GroupsFinished(groups))

	divisions := BuildPlayoff(groups, core.HybridFormat{QualifiersPerGroup: 2})
	require.Len(t, divisions, 1)

	semis := divisions[0].Round(1)
	require.Len(t, semis, 2)
	// Seeds: a/b, g/h, c/d, e/f
	assert.True(t, semis[0].Pair1.Same(pair("a", "b")))
	assert.True(t, semis[0].Pair2.Same(pair("e", "f")))
	assert.True(t, semis[1].Pair1.Same(pair("g", "h")))
	assert.True(t, semis[1].Pair2.Same(pair("c", "d")))
	assert.Equal(t, 3, divisions[0].Number)
}
