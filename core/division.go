package core

import "slices"

type DivisionType string

const (
	DivisionMain                  DivisionType = "main"
	DivisionConsolation           DivisionType = "consolation"
	DivisionLeagueConsolationMain DivisionType = "league-consolation-main"
)

type Stage string

const (
	StageGroup   Stage = "group"
	StagePlayoff Stage = "playoff"
)

// A Division is a group of players and the matches
// they play against each other.
//
// Number is 1-based. In leagues it is the rank tier
// (1 is the top tier).
type Division struct {
	ID       string       `json:"id"`
	Number   int          `json:"numero"`
	Name     string       `json:"name,omitempty"`
	Category string       `json:"category,omitempty"`
	Players  []string     `json:"players"`
	Matches  []*Match     `json:"matches"`
	Type     DivisionType `json:"type,omitempty"`
	Stage    Stage        `json:"stage,omitempty"`
}

func NewDivision(number int, name string, players []string, matches []*Match) *Division {
	return &Division{
		ID:      newID(),
		Number:  number,
		Name:    name,
		Players: players,
		Matches: matches,
	}
}

func (d *Division) IsConsolation() bool {
	return d.Type == DivisionConsolation
}

// IsBracket reports whether the division is an elimination bracket
// whose matches are linked by their pointers.
func (d *Division) IsBracket() bool {
	if d.Stage == StageGroup {
		return false
	}
	return d.Stage == StagePlayoff || d.Type == DivisionMain || d.Type == DivisionConsolation
}

// Returns the matches of the given round in their bracket order
func (d *Division) Round(round int) []*Match {
	matches := make([]*Match, 0, 8)
	for _, m := range d.Matches {
		if m.Round == round {
			matches = append(matches, m)
		}
	}
	return matches
}

// Returns the highest round number of the division's matches
func (d *Division) NumRounds() int {
	rounds := 0
	for _, m := range d.Matches {
		rounds = max(rounds, m.Round)
	}
	return rounds
}

// Returns the position of the match inside of its round
// or -1 when the match is not in the division.
func (d *Division) roundIndex(match *Match) int {
	i := 0
	for _, m := range d.Matches {
		if m == match {
			return i
		}
		if m.Round == match.Round {
			i += 1
		}
	}
	return -1
}

// ContainsPair reports whether the pair occupies any slot of
// the division's matches.
func (d *Division) ContainsPair(pair Pair) bool {
	for _, m := range d.Matches {
		if m.ContainsPair(pair) {
			return true
		}
	}
	return false
}

// HasPlayer reports whether the player is on the division's roster.
func (d *Division) HasPlayer(id string) bool {
	return slices.Contains(d.Players, id)
}
