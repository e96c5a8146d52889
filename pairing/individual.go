package pairing

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/core"
)

// GenerateIndividualRound draws one round of random partnerships.
// The shuffled players form matches in groups of 4, players left
// over sit out.
func GenerateIndividualRound(players []string, round, courts int, rng *rand.Rand) []*core.Match {
	if len(players) < 4 {
		return nil
	}
	if rng == nil {
		rng = Search{}.rng()
	}

	order := shuffled(players, rng)
	matches := make([]*core.Match, 0, len(order)/4)
	for i := 0; i+3 < len(order); i += 4 {
		m := match(round, order[i], order[i+1], order[i+2], order[i+3])
		if courts > 0 {
			m.Court = (i/4)%courts + 1
		}
		matches = append(matches, m)
	}
	return matches
}

// GenerateIndividualLeague creates the schedule of a league of
// single players who change partners every round.
//
// Groups of 4 to 7 follow fixed rotations in which nobody partners
// the same player twice and the rests are spread evenly. A group of
// 8 is searched for a complete schedule of 7 rounds in which every
// player partners every other exactly once. Larger groups and failed
// searches get 4 random rounds.
func GenerateIndividualLeague(players []string, search Search) []*core.Match {
	switch n := len(players); {
	case n < 4:
		return nil
	case n == 4:
		return GenerateClassic4(players)
	case n == 5:
		return rotationLeague(players, 1, splitRotation5)
	case n == 6:
		return rotationLeague(players, 2, alternatingSplit)
	case n == 7:
		return rotationLeague(players, 3, alternatingSplit)
	case n == 8:
		rng := search.rng()
		attempts := search.attempts(DefaultLeagueAttempts)
		if rounds, ok := searchCompleteLeague(players, rng, attempts); ok {
			return roundsToMatches(rounds, 0)
		}
		log.WithFields(log.Fields{
			"players":  n,
			"attempts": attempts,
		}).Warn("No complete league schedule found, using random rounds")
		return fallbackLeague(players, rng)
	default:
		return fallbackLeague(players, search.rng())
	}
}

// A split picks the two partnerships of the 4 active players of a
// round. active holds the players in rotation order.
type split func(round int, active []string) *core.Match

// Round r rests the window of sitting players starting at index r.
// The remaining players keep their rotation order.
func rotationLeague(players []string, sitting int, pick split) []*core.Match {
	n := len(players)
	matches := make([]*core.Match, 0, n)
	for r := range n {
		active := make([]string, 0, n-sitting)
		for i := sitting; i < n; i += 1 {
			active = append(active, players[(r+i)%n])
		}
		matches = append(matches, pick(r+1, active))
	}
	return matches
}

// With 5 players the partnerships of a round are the outer and
// the inner players of the rotation
func splitRotation5(round int, active []string) *core.Match {
	return match(round, active[0], active[3], active[1], active[2])
}

// Odd rounds pair the outer and the inner players, even rounds
// pair every other player
func alternatingSplit(round int, active []string) *core.Match {
	if round%2 != 0 {
		return match(round, active[0], active[3], active[1], active[2])
	}
	return match(round, active[0], active[2], active[1], active[3])
}

func fallbackLeague(players []string, rng *rand.Rand) []*core.Match {
	matches := make([]*core.Match, 0, fallbackRounds*len(players)/4)
	for r := range fallbackRounds {
		matches = append(matches, GenerateIndividualRound(players, r+1, 0, rng)...)
	}
	return matches
}

// Searches for rounds in which every player partners every other
// exactly once. Each round is a perfect matching of the players
// without partnerships of earlier rounds.
func searchCompleteLeague(players []string, rng *rand.Rand, attempts int) ([][]core.Pair, bool) {
	numRounds := len(players) - 1
	for range attempts {
		s := &leagueSearch{
			players: players,
			used:    make(map[partners]bool),
			rng:     rng,
			budget:  leagueNodeBudget,
		}
		rounds := make([][]core.Pair, 0, numRounds)
		if s.fillRounds(&rounds, numRounds) {
			return rounds, true
		}
	}
	return nil, false
}

type leagueSearch struct {
	players []string
	used    map[partners]bool
	rng     *rand.Rand
	budget  int
}

func (s *leagueSearch) fillRounds(rounds *[][]core.Pair, numRounds int) bool {
	if len(*rounds) == numRounds {
		return true
	}
	unmatched := make([]string, len(s.players))
	copy(unmatched, s.players)
	round := make([]core.Pair, 0, len(s.players)/2)
	return s.fillRound(rounds, numRounds, unmatched, round)
}

// Matches the first unmatched player with a random unused partner
// and recurses. A complete round continues with the next one.
func (s *leagueSearch) fillRound(rounds *[][]core.Pair, numRounds int, unmatched []string, round []core.Pair) bool {
	if s.budget <= 0 {
		return false
	}
	s.budget -= 1

	if len(unmatched) == 0 {
		*rounds = append(*rounds, round)
		if s.fillRounds(rounds, numRounds) {
			return true
		}
		*rounds = (*rounds)[:len(*rounds)-1]
		return false
	}

	first := unmatched[0]
	candidates := s.rng.Perm(len(unmatched) - 1)
	for _, c := range candidates {
		partner := unmatched[c+1]
		key := newPartners(first, partner)
		if s.used[key] {
			continue
		}

		rest := make([]string, 0, len(unmatched)-2)
		for i, p := range unmatched[1:] {
			if i != c {
				rest = append(rest, p)
			}
		}

		s.used[key] = true
		next := append(round[:len(round):len(round)], key.pair())
		if s.fillRound(rounds, numRounds, rest, next) {
			return true
		}
		delete(s.used, key)
	}

	return false
}

// Turns the partnerships of each round into matches
func roundsToMatches(rounds [][]core.Pair, courts int) []*core.Match {
	matches := make([]*core.Match, 0, len(rounds)*2)
	for r, teams := range rounds {
		matches = append(matches, roundMatches(r+1, teams, courts)...)
	}
	return matches
}
