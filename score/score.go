// Package score validates the set scores of racquet sports
// that count games per set (padel, tennis).
package score

import (
	"errors"

	"github.com/ezBadminton/racquet/core"
)

var (
	ErrGamesZero = errors.New("games per set are zero or less")
	ErrSetsZero  = errors.New("max sets are zero or less")
	ErrEvenSets  = errors.New("max sets is an even number")

	ErrUndetermined = errors.New("the winner is undeterminable from the score")

	ErrEmpty           = errors.New("empty score")
	ErrUndeterminedSet = errors.New("a set has equal games")
	ErrTooManySets     = errors.New("too many sets")
	ErrTooFewSets      = errors.New("too few sets")
	ErrNegativeGames   = errors.New("negative games")
	ErrTooManyGames    = errors.New("games exceed the set length")
	ErrTooFewGames     = errors.New("set winner games are less than the games per set")
	ErrInvalidMargin   = errors.New("the winning game margin is invalid")
	ErrUnneededSets    = errors.New("score contains unneeded extra sets")
	ErrEqualSetWins    = errors.New("both opponents won an equal number of sets")
	ErrPointsTotal     = errors.New("the points do not add up to the points per match")
)

type Settings struct {
	GamesPerSet int
	MaxSets     int
	// A set at GamesPerSet all is decided by a tie-break
	// and ends GamesPerSet+1 to GamesPerSet
	TieBreak bool
}

func NewSettings(gamesPerSet, maxSets int, tieBreak bool) (Settings, error) {
	settings := Settings{gamesPerSet, maxSets, tieBreak}

	if gamesPerSet <= 0 {
		return settings, ErrGamesZero
	}
	if maxSets <= 0 {
		return settings, ErrSetsZero
	}
	if maxSets%2 == 0 {
		return settings, ErrEvenSets
	}

	return settings, nil
}

// Best of 3 sets to 6 games with tie-break
func DefaultSettings() Settings {
	return Settings{GamesPerSet: 6, MaxSets: 3, TieBreak: true}
}

func (s Settings) winningSets() int {
	return s.MaxSets/2 + 1
}

// Winner returns 0 or 1 whether the first or the second side won
// more sets. Tied sets count for nobody.
func Winner(sets []core.Set) (int, error) {
	setWins := 0
	for _, set := range sets {
		switch set.Winner() {
		case 0:
			setWins += 1
		case 1:
			setWins -= 1
		}
	}

	if setWins > 0 {
		return 0, nil
	}
	if setWins < 0 {
		return 1, nil
	}

	return -1, ErrUndetermined
}

// Validate checks that the sets form a complete match.
func Validate(sets []core.Set, settings Settings) error {
	switch {
	case len(sets) == 0:
		return ErrEmpty
	case len(sets) < settings.winningSets():
		return ErrTooFewSets
	case len(sets) > settings.MaxSets:
		return ErrTooManySets
	}

	setWins1, setWins2 := 0, 0
	for _, set := range sets {
		if setWins1 == settings.winningSets() || setWins2 == settings.winningSets() {
			return ErrUnneededSets
		}
		if err := validateSet(set, settings); err != nil {
			return err
		}

		if set.P1 > set.P2 {
			setWins1 += 1
		} else {
			setWins2 += 1
		}
	}

	if setWins1 == setWins2 {
		return ErrEqualSetWins
	}

	return nil
}

// ValidatePartial checks the sets of a match that was stopped
// before it was complete. The last set may be unfinished, all
// sets before it have to be finished.
func ValidatePartial(sets []core.Set, settings Settings) error {
	switch {
	case len(sets) == 0:
		return ErrEmpty
	case len(sets) > settings.MaxSets:
		return ErrTooManySets
	}

	for i, set := range sets {
		if i < len(sets)-1 {
			if err := validateSet(set, settings); err != nil {
				return err
			}
			continue
		}

		w := max(set.P1, set.P2)
		l := min(set.P1, set.P2)
		switch {
		case l < 0:
			return ErrNegativeGames
		case w > settings.GamesPerSet+1:
			return ErrTooManyGames
		}
	}

	return nil
}

func validateSet(set core.Set, settings Settings) error {
	w := max(set.P1, set.P2)
	l := min(set.P1, set.P2)
	games := settings.GamesPerSet

	switch {
	case w == l:
		return ErrUndeterminedSet
	case l < 0:
		return ErrNegativeGames
	case w < games:
		return ErrTooFewGames
	case w > games+1:
		return ErrTooManyGames
	case w == games && w-l < 2:
		return ErrInvalidMargin
	case w == games+1 && l == games && !settings.TieBreak:
		fallthrough
	case w == games+1 && l < games-1:
		return ErrInvalidMargin
	}

	return nil
}

// ValidatePoints checks the raw points of a point based match.
// With pointsPerMatch greater zero both points have to add up to it.
func ValidatePoints(points1, points2, pointsPerMatch int) error {
	if points1 < 0 || points2 < 0 {
		return ErrNegativeGames
	}
	if pointsPerMatch > 0 && points1+points2 != pointsPerMatch {
		return ErrPointsTotal
	}
	return nil
}
