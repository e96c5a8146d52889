// Package standings evaluates match results into points and
// ranks the players or pairs of a division by them.
package standings

import (
	"cmp"
	"slices"

	"github.com/ezBadminton/racquet/core"
)

// A Row is one entry of the standings table of a division.
// Depending on the format it is a single player or a pair.
type Row struct {
	ID       string    `json:"id"`
	Pair     core.Pair `json:"pair"`
	Position int       `json:"position"`

	MatchMetrics
}

// Returns the ids of the players that the row stands for
func (r *Row) Players() []string {
	return r.Pair.Players()
}

// Token returns the participant token of the row's entry.
func (r *Row) Token() string {
	return r.Pair.Token()
}

// Generate computes the standings of the division.
//
// Individual leagues and americano divisions rank single players,
// all other formats rank pairs. Americano rows count the raw
// points of the matches instead of the standings points.
//
// Only finished matches count and byes are left out. Walkovers
// count with their points but without sets.
func Generate(division *core.Division, format core.Format) []*Row {
	switch f := format.(type) {
	case core.AmericanoFormat:
		return generate(division, playerRows, americanoPoints)
	case core.ClassicFormat:
		return generate(division, playerRows, standingsPoints)
	case core.PairsFormat, core.EliminationFormat, core.HybridFormat:
		return generate(division, pairRows, standingsPoints)
	case nil:
		return generate(division, pairRows, standingsPoints)
	default:
		panic("standings: unknown format " + f.FormatType())
	}
}

type rowSource func(division *core.Division) ([]*Row, func(core.Pair) []*Row)

type pointSource func(match *core.Match) (int, int)

func standingsPoints(match *core.Match) (int, int) {
	return match.Points.P1, match.Points.P2
}

func americanoPoints(match *core.Match) (int, int) {
	if match.Score == nil {
		return match.Points.P1, match.Points.P2
	}
	return match.Score.Points1, match.Score.Points2
}

// Creates a row for every player on the roster, followed by
// players that only appear in matches
func playerRows(division *core.Division) ([]*Row, func(core.Pair) []*Row) {
	rows := make([]*Row, 0, len(division.Players))
	byID := make(map[string]*Row)

	add := func(id string) *Row {
		row, ok := byID[id]
		if !ok {
			row = &Row{ID: id, Pair: core.Pair{P1: id}}
			byID[id] = row
			rows = append(rows, row)
		}
		return row
	}

	for _, id := range division.Players {
		add(id)
	}

	lookup := func(pair core.Pair) []*Row {
		players := pair.Players()
		sideRows := make([]*Row, 0, len(players))
		for _, p := range players {
			sideRows = append(sideRows, add(p))
		}
		return sideRows
	}

	return rows, lookup
}

// Creates a row for every pair in the division's matches
func pairRows(division *core.Division) ([]*Row, func(core.Pair) []*Row) {
	rows := make([]*Row, 0, len(division.Players)/2)
	byID := make(map[string]*Row)

	add := func(pair core.Pair) *Row {
		key := pair.Key()
		row, ok := byID[key]
		if !ok {
			row = &Row{ID: key, Pair: pair.Filled()}
			byID[key] = row
			rows = append(rows, row)
		}
		return row
	}

	for _, m := range division.Matches {
		for _, p := range []core.Pair{m.Pair1, m.Pair2} {
			if p.IsReal() {
				add(p)
			}
		}
	}

	lookup := func(pair core.Pair) []*Row {
		return []*Row{add(pair)}
	}

	return rows, lookup
}

func generate(division *core.Division, source rowSource, points pointSource) []*Row {
	rows, lookup := source(division)

	for _, m := range division.Matches {
		if !counts(m) {
			continue
		}

		points1, points2 := points(m)
		games1 := make([][2]int, 0, 3)
		games2 := make([][2]int, 0, 3)
		if m.Status == core.StatusFinished && m.Score != nil {
			for _, s := range m.Score.Sets {
				games1 = append(games1, [2]int{s.P1, s.P2})
				games2 = append(games2, [2]int{s.P2, s.P1})
			}
			if len(m.Score.Sets) == 0 && (m.Score.Points1 != 0 || m.Score.Points2 != 0) {
				games1 = append(games1, [2]int{m.Score.Points1, m.Score.Points2})
				games2 = append(games2, [2]int{m.Score.Points2, m.Score.Points1})
			}
		}

		side1 := sideMetrics(points1, points2, games1)
		side2 := sideMetrics(points2, points1, games2)
		for _, row := range lookup(m.Pair1) {
			row.Add(side1)
		}
		for _, row := range lookup(m.Pair2) {
			row.Add(side2)
		}
	}

	Sort(rows)
	return rows
}

// Returns whether the match contributes to the standings
func counts(match *core.Match) bool {
	if match.Points == nil || !match.Pair1.IsReal() || !match.Pair2.IsReal() {
		return false
	}
	if match.IsByeResolved() {
		return false
	}
	return match.Status == core.StatusFinished || match.Status == core.StatusNotPlayed
}

// Sort orders the rows by points, set difference, game difference
// and games won, all descending, and numbers their positions.
// Rows that are equal in all of those keep their order.
func Sort(rows []*Row) {
	slices.SortStableFunc(rows, func(a, b *Row) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(b.SetDifference, a.SetDifference),
			cmp.Compare(b.GameDifference, a.GameDifference),
			cmp.Compare(b.GameWins, a.GameWins),
		)
	})
	for i, r := range rows {
		r.Position = i + 1
	}
}

// MexicanoOrder returns the player ids of the rows ordered by
// points and game difference as the next mexicano round needs them.
func MexicanoOrder(rows []*Row) []string {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b *Row) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(b.GameDifference, a.GameDifference),
		)
	})
	ids := make([]string, 0, len(sorted))
	for _, r := range sorted {
		ids = append(ids, r.Players()...)
	}
	return ids
}
