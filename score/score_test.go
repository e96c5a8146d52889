package score

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

func TestSettings(t *testing.T) {
	_, err := NewSettings(0, 3, true)
	assert.ErrorIs(t, err, ErrGamesZero)

	_, err = NewSettings(6, 0, true)
	assert.ErrorIs(t, err, ErrSetsZero)

	_, err = NewSettings(6, 2, true)
	assert.ErrorIs(t, err, ErrEvenSets)

	settings, err := NewSettings(6, 3, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestScoreErrors(t *testing.T) {
	settings := DefaultSettings()

	cases := []struct {
		name  string
		games []int
		err   error
	}{
		{"empty", nil, ErrEmpty},
		{"too few sets", []int{6, 4}, ErrTooFewSets},
		{"too many sets", []int{6, 4, 4, 6, 6, 4, 6, 4}, ErrTooManySets},
		{"unneeded set", []int{6, 4, 6, 4, 2, 6}, ErrUnneededSets},
		{"tied set", []int{6, 6, 6, 4}, ErrUndeterminedSet},
		{"negative", []int{6, -1, 6, 4}, ErrNegativeGames},
		{"too few games", []int{5, 3, 6, 4}, ErrTooFewGames},
		{"too many games", []int{8, 6, 6, 4}, ErrTooManyGames},
		{"six five", []int{6, 5, 6, 4}, ErrInvalidMargin},
		{"seven four", []int{7, 4, 6, 4}, ErrInvalidMargin},
		{"equal set wins", []int{6, 4, 4, 6}, ErrEqualSetWins},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(sets(c.games...), settings), c.err)
		})
	}

	noTieBreak, _ := NewSettings(6, 3, false)
	assert.ErrorIs(t, Validate(sets(7, 6, 6, 4), noTieBreak), ErrInvalidMargin)
}

func TestValidScores(t *testing.T) {
	settings := DefaultSettings()

	valid := [][]int{
		{6, 4, 6, 3},
		{7, 6, 7, 5},
		{0, 6, 6, 0, 4, 6},
		{6, 4, 3, 6, 7, 6},
	}
	winners := []int{0, 0, 1, 0}

	for i, games := range valid {
		s := sets(games...)
		require.NoError(t, Validate(s, settings))
		winner, err := Winner(s)
		require.NoError(t, err)
		assert.Equal(t, winners[i], winner)
	}
}

func TestPartialScores(t *testing.T) {
	settings := DefaultSettings()

	assert.NoError(t, ValidatePartial(sets(6, 4, 3, 2), settings))
	assert.NoError(t, ValidatePartial(sets(4, 4), settings))
	assert.ErrorIs(t, ValidatePartial(sets(5, 4, 3, 2), settings), ErrTooFewGames)
	assert.ErrorIs(t, ValidatePartial(sets(6, 4, 9, 2), settings), ErrTooManyGames)

	_, err := Winner(sets(6, 4, 4, 6, 4, 4))
	assert.ErrorIs(t, err, ErrUndetermined)
}

func TestPoints(t *testing.T) {
	assert.NoError(t, ValidatePoints(14, 10, 24))
	assert.NoError(t, ValidatePoints(14, 3, 0))
	assert.ErrorIs(t, ValidatePoints(14, 11, 24), ErrPointsTotal)
	assert.ErrorIs(t, ValidatePoints(-1, 25, 24), ErrNegativeGames)
}
