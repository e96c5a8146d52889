package standings

import (
	"cmp"
	"slices"

	"github.com/ezBadminton/racquet/core"
)

// A Move is a player changing the tier between two seasons.
type Move struct {
	Player string `json:"player"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// Regenerate creates the schedule of a new division
// for the roster of players.
type Regenerate func(players []string) []*core.Match

type Promotions struct {
	Divisions []*core.Division `json:"divisions"`
	Moves     []Move           `json:"moves"`
}

// CalculatePromotions moves the best of every division but the top
// tier one tier up and the worst of every division but the bottom
// tier one tier down.
//
// The divisions are ordered by their number, 1 is the top tier.
// The roster of each new division lists the players relegated from
// above, then the staying players in their standings order, then
// the players promoted from below. Regenerate creates the matches
// of the new divisions. With a nil regenerate they have none.
func CalculatePromotions(
	divisions []*core.Division,
	format core.Format,
	promotionCount, relegationCount int,
	regenerate Regenerate,
) *Promotions {
	tiers := slices.Clone(divisions)
	slices.SortStableFunc(tiers, func(a, b *core.Division) int {
		return cmp.Compare(a.Number, b.Number)
	})

	numTiers := len(tiers)
	promoted := make([][]string, numTiers)
	relegated := make([][]string, numTiers)
	staying := make([][]string, numTiers)

	for i, d := range tiers {
		rows := Generate(d, format)

		up := 0
		if i > 0 {
			up = min(max(0, promotionCount), len(rows))
		}
		down := 0
		if i < numTiers-1 {
			down = min(max(0, relegationCount), len(rows)-up)
		}

		covered := make(map[string]bool)
		for j, r := range rows {
			players := r.Players()
			for _, p := range players {
				covered[p] = true
			}
			switch {
			case j < up:
				promoted[i] = append(promoted[i], players...)
			case j >= len(rows)-down:
				relegated[i] = append(relegated[i], players...)
			default:
				staying[i] = append(staying[i], players...)
			}
		}

		// Players without a standings row stay in their tier
		for _, p := range d.Players {
			if !covered[p] {
				staying[i] = append(staying[i], p)
			}
		}
	}

	result := &Promotions{
		Divisions: make([]*core.Division, 0, numTiers),
		Moves:     make([]Move, 0),
	}

	for i, d := range tiers {
		roster := make([]string, 0, len(d.Players))
		if i > 0 {
			roster = append(roster, relegated[i-1]...)
			for _, p := range relegated[i-1] {
				result.Moves = append(result.Moves, Move{Player: p, From: tiers[i-1].Number, To: d.Number})
			}
		}
		roster = append(roster, staying[i]...)
		if i < numTiers-1 {
			roster = append(roster, promoted[i+1]...)
			for _, p := range promoted[i+1] {
				result.Moves = append(result.Moves, Move{Player: p, From: tiers[i+1].Number, To: d.Number})
			}
		}

		var matches []*core.Match
		if regenerate != nil {
			matches = regenerate(roster)
		}
		if matches == nil {
			matches = []*core.Match{}
		}

		next := core.NewDivision(d.Number, d.Name, roster, matches)
		next.Category = d.Category
		next.Type = d.Type
		next.Stage = d.Stage
		result.Divisions = append(result.Divisions, next)
	}

	return result
}
