package standings

import (
	"errors"
	"fmt"

	"github.com/ezBadminton/racquet/core"
)

var (
	ErrNoSets                = errors.New("the match has no sets")
	ErrIncompleteWithoutSet2 = errors.New("an incomplete match needs the second set")
)

const (
	FinalizationComplete   = "completo"
	FinalizationIncomplete = "incompleto"
	FinalizationForced     = "forzado"
)

// incompleteDrawMargin is the set 2 game lead with which the
// loser of set 1 turns an abandoned match into a draw
const incompleteDrawMargin = 3

// MatchInput is the entered result of a set based match.
type MatchInput struct {
	// The played sets, at most 3. The third set may be tied.
	Sets []core.Set
	// The match was stopped after the second set
	Incomplete bool
	// Manual override that awards the draw points to both sides
	ForceDraw bool
	// Scoring of the individual league where a match has
	// one or two sets and 1-1 is always a draw
	Individual bool
}

// Outcome is the evaluated result of a match.
type Outcome struct {
	Points           core.MatchPoints `json:"points"`
	Description      string           `json:"description"`
	FinalizationType string           `json:"finalizationType"`
}

// Score returns the outcome as the score of the match.
func (o *Outcome) Score(sets []core.Set) *core.Score {
	return &core.Score{
		Sets:             sets,
		Description:      o.Description,
		FinalizationType: o.FinalizationType,
	}
}

// CalculateMatchPoints evaluates the sets of a match into the
// standings points of both sides.
//
// Complete matches are decided by the sets won. Tied sets count
// for nobody, so a 1-1 in won sets is a draw even when a third set
// was played. 2-0 wins award the Win2_0/Loss2_0 pair, any other
// win the Win2_1/Loss2_1 pair.
//
// Incomplete matches are awarded to the winner of set 1 unless the
// loser of set 1 leads set 2 by 3 or more games, which is a draw.
func CalculateMatchPoints(in MatchInput, config core.PointsConfig) (*Outcome, error) {
	if in.ForceDraw {
		return draw(config, "Empate", FinalizationForced), nil
	}
	if len(in.Sets) == 0 {
		return nil, ErrNoSets
	}
	if in.Individual {
		return individualPoints(in.Sets, config), nil
	}
	if in.Incomplete {
		return incompletePoints(in.Sets, config)
	}
	return completePoints(in.Sets, config), nil
}

func completePoints(sets []core.Set, config core.PointsConfig) *Outcome {
	wins1, wins2 := setWins(sets)
	if wins1 == wins2 {
		return draw(config, fmt.Sprintf("Empate %d-%d", wins1, wins2), FinalizationComplete)
	}

	description := fmt.Sprintf("Victoria %d-%d", max(wins1, wins2), min(wins1, wins2))
	winner := 0
	if wins2 > wins1 {
		winner = 1
	}
	if min(wins1, wins2) == 0 && max(wins1, wins2) == 2 {
		return win(winner, config.Win2_0, config.Loss2_0, description, FinalizationComplete)
	}
	return win(winner, config.Win2_1, config.Loss2_1, description, FinalizationComplete)
}

func incompletePoints(sets []core.Set, config core.PointsConfig) (*Outcome, error) {
	if len(sets) < 2 {
		return nil, ErrIncompleteWithoutSet2
	}
	set1, set2 := sets[0], sets[1]

	winner := set1.Winner()
	if winner == -1 {
		return draw(config, "Empate", FinalizationIncomplete), nil
	}

	set2 = orient(set2, winner)
	// set2.P2 are now the games of the set 1 loser
	if set2.P2-set2.P1 >= incompleteDrawMargin {
		return draw(config, "Empate", FinalizationIncomplete), nil
	}

	return win(winner, config.Win2_1, config.Loss2_1, "Victoria", FinalizationIncomplete), nil
}

func individualPoints(sets []core.Set, config core.PointsConfig) *Outcome {
	wins1, wins2 := setWins(sets[:min(2, len(sets))])
	if wins1 == wins2 {
		return draw(config, fmt.Sprintf("Empate %d-%d", wins1, wins2), FinalizationComplete)
	}

	winner := 0
	if wins2 > wins1 {
		winner = 1
	}
	description := fmt.Sprintf("Victoria %d-%d", max(wins1, wins2), min(wins1, wins2))

	// A lone set or both sets won take the full points
	if len(sets) == 1 || min(wins1, wins2) == 0 && max(wins1, wins2) == 2 {
		return win(winner, config.Win2_0, config.Loss2_0, description, FinalizationComplete)
	}
	return win(winner, config.Win2_1, config.Loss2_1, description, FinalizationComplete)
}

// WalkoverPoints awards the 2-0 win to the present side.
func WalkoverPoints(winner int, config core.PointsConfig) *Outcome {
	return win(winner, config.Win2_0, config.Loss2_0, "W.O.", FinalizationIncomplete)
}

func setWins(sets []core.Set) (int, int) {
	wins1, wins2 := 0, 0
	for _, s := range sets {
		switch s.Winner() {
		case 0:
			wins1 += 1
		case 1:
			wins2 += 1
		}
	}
	return wins1, wins2
}

// Returns the set from the perspective of the given side
func orient(set core.Set, side int) core.Set {
	if side == 1 {
		return set.Invert()
	}
	return set
}

func draw(config core.PointsConfig, description, finalization string) *Outcome {
	return &Outcome{
		Points:           core.MatchPoints{P1: config.Draw, P2: config.Draw},
		Description:      description,
		FinalizationType: finalization,
	}
}

func win(winner, winPoints, lossPoints int, description, finalization string) *Outcome {
	points := core.MatchPoints{P1: winPoints, P2: lossPoints}
	if winner == 1 {
		points = core.MatchPoints{P1: lossPoints, P2: winPoints}
	}
	return &Outcome{
		Points:           points,
		Description:      description,
		FinalizationType: finalization,
	}
}
