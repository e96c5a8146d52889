// Package pairing generates the match schedules of the league
// and rotation formats.
//
// All generators return nil when there are too few players for
// a 2 vs. 2 match. The randomized generators take their rng from
// the caller and search for a bounded number of attempts. When the
// search fails they fall back to a weaker schedule.
package pairing

import (
	"math/rand"

	"github.com/ezBadminton/racquet/core"
)

const (
	DefaultAmericanoAttempts = 5000
	DefaultLeagueAttempts    = 50

	// Search nodes that one attempt of the league search may visit
	leagueNodeBudget = 10000
	// Rounds of the non-exhaustive fallback schedule
	fallbackRounds = 4
)

// Search configures the randomized generators.
type Search struct {
	Rng      *rand.Rand
	Attempts int
}

func (s Search) rng() *rand.Rand {
	if s.Rng == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return s.Rng
}

func (s Search) attempts(fallback int) int {
	if s.Attempts <= 0 {
		return fallback
	}
	return s.Attempts
}

// A partnership of two players, stored in sorted order
type partners [2]string

func newPartners(a, b string) partners {
	if b < a {
		a, b = b, a
	}
	return partners{a, b}
}

func (p partners) pair() core.Pair {
	return core.Pair{P1: p[0], P2: p[1]}
}

// Creates the round's matches from consecutive partnerships.
// A partnership left over sits out the round.
func roundMatches(round int, teams []core.Pair, courts int) []*core.Match {
	matches := make([]*core.Match, 0, len(teams)/2+1)
	court := 0
	for i := 0; i+1 < len(teams); i += 2 {
		m := core.NewMatch(round, teams[i], teams[i+1])
		if courts > 0 {
			m.Court = court%courts + 1
		}
		court += 1
		matches = append(matches, m)
	}
	if len(teams)%2 == 1 {
		matches = append(matches, restingMatch(round, teams[len(teams)-1]))
	}
	return matches
}

func restingMatch(round int, pair core.Pair) *core.Match {
	m := core.NewMatch(round, pair, core.Pair{})
	m.Status = core.StatusResting
	return m
}

func match(round int, a, b, c, d string) *core.Match {
	return core.NewMatch(round, core.Pair{P1: a, P2: b}, core.Pair{P1: c, P2: d})
}

func shuffled(players []string, rng *rand.Rand) []string {
	order := make([]string, len(players))
	copy(order, players)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// PairsFromRoster groups the roster of a pairs division into its
// pairs. The players of a pair are listed next to each other.
// An odd player at the end is left out.
func PairsFromRoster(players []string) []core.Pair {
	pairs := make([]core.Pair, 0, len(players)/2)
	for i := 0; i+1 < len(players); i += 2 {
		pairs = append(pairs, core.Pair{P1: players[i], P2: players[i+1]})
	}
	return pairs
}

// League returns the schedule generator of a league division of
// the format or nil when the format has no league divisions.
func League(format core.Format, search Search) func(players []string) []*core.Match {
	switch f := format.(type) {
	case core.ClassicFormat:
		return func(players []string) []*core.Match {
			return GenerateIndividualLeague(players, search)
		}
	case core.PairsFormat:
		return func(players []string) []*core.Match {
			return GeneratePairsLeague(PairsFromRoster(players))
		}
	case core.AmericanoFormat:
		if f.Mexicano {
			// The first round seeds by the roster order
			return func(players []string) []*core.Match {
				return GenerateMexicanoRound(players, 1, f.Courts)
			}
		}
		return func(players []string) []*core.Match {
			return GenerateAmericano(players, f.Courts, search)
		}
	}
	return nil
}
