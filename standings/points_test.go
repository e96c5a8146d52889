package standings

import (
	"testing"

	"github.com/ezBadminton/racquet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sets(games ...int) []core.Set {
	sets := make([]core.Set, 0, len(games)/2)
	for i := 0; i+1 < len(games); i += 2 {
		sets = append(sets, core.Set{P1: games[i], P2: games[i+1]})
	}
	return sets
}

func TestCompleteStraightSets(t *testing.T) {
	config := core.DefaultPointsConfig()

	outcome, err := CalculateMatchPoints(MatchInput{Sets: sets(6, 4, 6, 3)}, config)
	require.NoError(t, err)
	assert.Equal(t, core.MatchPoints{P1: 4, P2: 0}, outcome.Points)
	assert.Equal(t, FinalizationComplete, outcome.FinalizationType)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(2, 6, 3, 6)}, config)
	assert.Equal(t, core.MatchPoints{P1: 0, P2: 4}, outcome.Points)
}

func TestCompleteThreeSets(t *testing.T) {
	config := core.DefaultPointsConfig()

	outcome, _ := CalculateMatchPoints(MatchInput{Sets: sets(6, 4, 4, 6, 6, 2)}, config)
	assert.Equal(t, core.MatchPoints{P1: 3, P2: 1}, outcome.Points)
	assert.Equal(t, "Victoria 2-1", outcome.Description)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(6, 4, 4, 6, 3, 6)}, config)
	assert.Equal(t, core.MatchPoints{P1: 1, P2: 3}, outcome.Points)
}

func TestTiedThirdSetIsDraw(t *testing.T) {
	config := core.DefaultPointsConfig()

	outcome, err := CalculateMatchPoints(MatchInput{Sets: sets(6, 4, 4, 6, 4, 4)}, config)
	require.NoError(t, err)
	assert.Equal(t, "Empate 1-1", outcome.Description)
	assert.Equal(t, config.Draw, outcome.Points.P1)
	assert.Equal(t, config.Draw, outcome.Points.P2)
}

func TestIncompleteMatches(t *testing.T) {
	config := core.DefaultPointsConfig()

	_, err := CalculateMatchPoints(MatchInput{Sets: sets(6, 4), Incomplete: true}, config)
	assert.ErrorIs(t, err, ErrIncompleteWithoutSet2)

	cases := []struct {
		name   string
		sets   []core.Set
		points core.MatchPoints
	}{
		{"set 1 winner leads set 2", sets(6, 4, 3, 1), core.MatchPoints{P1: 3, P2: 1}},
		{"set 1 loser leads set 2 by 2", sets(6, 4, 2, 4), core.MatchPoints{P1: 3, P2: 1}},
		{"set 1 loser leads set 2 by 3", sets(6, 4, 1, 4), core.MatchPoints{P1: 2, P2: 2}},
		{"second side wins set 1", sets(3, 6, 2, 1), core.MatchPoints{P1: 1, P2: 3}},
		{"second side loses set 2 by 4", sets(3, 6, 5, 1), core.MatchPoints{P1: 2, P2: 2}},
		{"tied set 1", sets(5, 5, 4, 1), core.MatchPoints{P1: 2, P2: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			outcome, err := CalculateMatchPoints(MatchInput{Sets: c.sets, Incomplete: true}, config)
			require.NoError(t, err)
			assert.Equal(t, c.points, outcome.Points)
			assert.Equal(t, FinalizationIncomplete, outcome.FinalizationType)
		})
	}
}

func TestIndividualPoints(t *testing.T) {
	config := core.DefaultPointsConfig()

	outcome, _ := CalculateMatchPoints(MatchInput{Sets: sets(4, 4, 4, 4), Individual: true}, config)
	assert.Equal(t, core.MatchPoints{P1: 2, P2: 2}, outcome.Points)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(6, 2), Individual: true}, config)
	assert.Equal(t, core.MatchPoints{P1: 4, P2: 0}, outcome.Points)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(6, 2, 2, 6), Individual: true}, config)
	assert.Equal(t, core.MatchPoints{P1: 2, P2: 2}, outcome.Points)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(4, 4, 2, 6), Individual: true}, config)
	assert.Equal(t, core.MatchPoints{P1: 1, P2: 3}, outcome.Points)

	outcome, _ = CalculateMatchPoints(MatchInput{Sets: sets(6, 1, 6, 2), Individual: true}, config)
	assert.Equal(t, core.MatchPoints{P1: 4, P2: 0}, outcome.Points)
}

func TestForceDraw(t *testing.T) {
	config := core.PointsConfig{Win2_0: 3, Win2_1: 2, Loss2_1: 1, Draw: 5}

	outcome, err := CalculateMatchPoints(MatchInput{Sets: sets(6, 0, 6, 0), ForceDraw: true}, config)
	require.NoError(t, err)
	assert.Equal(t, core.MatchPoints{P1: 5, P2: 5}, outcome.Points)
	assert.Equal(t, FinalizationForced, outcome.FinalizationType)

	_, err = CalculateMatchPoints(MatchInput{}, config)
	assert.ErrorIs(t, err, ErrNoSets)
}
