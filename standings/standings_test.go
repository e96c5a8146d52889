package standings

import (
	"testing"

	"github.com/ezBadminton/racquet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(a, b string) core.Pair {
	return core.Pair{P1: a, P2: b}
}

func played(p1, p2 core.Pair, games ...int) *core.Match {
	m := core.NewMatch(1, p1, p2)
	s := sets(games...)
	outcome, _ := CalculateMatchPoints(MatchInput{Sets: s}, core.DefaultPointsConfig())
	m.Finish(outcome.Score(s), outcome.Points)
	return m
}

func TestPairStandings(t *testing.T) {
	ab, cd, ef := pair("a", "b"), pair("c", "d"), pair("e", "f")
	matches := []*core.Match{
		played(ab, cd, 6, 4, 6, 4),
		played(cd, ef, 6, 0, 6, 0),
		played(ef, ab, 6, 4, 4, 6, 6, 4),
		core.NewMatch(2, ab, ef),
	}
	division := core.NewDivision(1, "A", []string{"a", "b", "c", "d", "e", "f"}, matches)

	rows := Generate(division, core.PairsFormat{})
	require.Len(t, rows, 3)

	// ab: 4 + 1, cd: 0 + 4, ef: 0 + 3
	assert.Equal(t, ab.Key(), rows[0].ID)
	assert.Equal(t, 5, rows[0].Points)
	assert.Equal(t, 2, rows[0].NumMatches)
	assert.Equal(t, 1, rows[0].Position)

	assert.Equal(t, cd.Key(), rows[1].ID)
	assert.Equal(t, 4, rows[1].Points)
	assert.Equal(t, 0, rows[1].SetDifference)
	assert.Equal(t, ef.Key(), rows[2].ID)
	assert.Equal(t, 3, rows[2].Points)
	assert.Equal(t, 3, rows[2].Position)
}

func TestIndividualStandings(t *testing.T) {
	matches := []*core.Match{
		played(pair("a", "b"), pair("c", "d"), 6, 2, 6, 2),
		played(pair("a", "c"), pair("b", "d"), 6, 3, 3, 6),
	}
	division := core.NewDivision(1, "A", []string{"a", "b", "c", "d"}, matches)

	rows := Generate(division, core.ClassicFormat{})
	require.Len(t, rows, 4)

	byID := make(map[string]*Row)
	for _, r := range rows {
		byID[r.ID] = r
	}
	assert.Equal(t, 6, byID["a"].Points)
	assert.Equal(t, 6, byID["b"].Points)
	assert.Equal(t, 2, byID["c"].Points)
	assert.Equal(t, 2, byID["d"].Points)
	assert.Equal(t, 1, byID["a"].Draws)
}

func TestStandingsSkipByesAndPending(t *testing.T) {
	divisions, err := core.GenerateBracket([]string{"a::b", "c::d", "e::f"}, false)
	require.NoError(t, err)

	rows := Generate(divisions[0], core.EliminationFormat{})
	for _, r := range rows {
		assert.Zero(t, r.NumMatches)
		assert.Zero(t, r.Points)
	}
}

func TestAmericanoStandings(t *testing.T) {
	m := core.NewMatch(1, pair("a", "b"), pair("c", "d"))
	m.Finish(&core.Score{Points1: 14, Points2: 10}, core.MatchPoints{P1: 14, P2: 10})
	division := core.NewDivision(1, "A", []string{"a", "b", "c", "d"}, []*core.Match{m})

	rows := Generate(division, core.AmericanoFormat{Courts: 1})
	require.Len(t, rows, 4)
	assert.Equal(t, 14, rows[0].Points)
	assert.Equal(t, 4, rows[0].GameDifference)
	assert.Equal(t, 10, rows[3].Points)

	order := MexicanoOrder(rows)
	assert.Equal(t, []string{"a", "b", "c", "d"}, order)
}

func TestSortTieBreakers(t *testing.T) {
	rows := []*Row{
		{ID: "x", MatchMetrics: MatchMetrics{Points: 4, SetDifference: 1, GameDifference: 3, GameWins: 10}},
		{ID: "y", MatchMetrics: MatchMetrics{Points: 4, SetDifference: 1, GameDifference: 3, GameWins: 12}},
		{ID: "z", MatchMetrics: MatchMetrics{Points: 4, SetDifference: 1, GameDifference: 5}},
		{ID: "w", MatchMetrics: MatchMetrics{Points: 6, SetDifference: -2}},
	}
	Sort(rows)

	ids := make([]string, 0, 4)
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"w", "z", "y", "x"}, ids)
	assert.Equal(t, 4, rows[3].Position)
}
