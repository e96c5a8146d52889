package pairing

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/core"
)

// GenerateAmericano creates an americano schedule in which every
// player partners every other player once.
//
// An even number of players plays N-1 rounds. With an odd number one
// player rests per round in turn, which takes N rounds. The partners
// of a round are drawn at random and the attempt is discarded as soon
// as a player finds no new partner. When all attempts fail a single
// random round is returned.
func GenerateAmericano(players []string, courts int, search Search) []*core.Match {
	if len(players) < 4 {
		return nil
	}

	rng := search.rng()
	attempts := search.attempts(DefaultAmericanoAttempts)

	if rounds, ok := searchAmericano(players, rng, attempts); ok {
		return roundsToMatches(rounds, courts)
	}

	log.WithFields(log.Fields{
		"players":  len(players),
		"attempts": attempts,
	}).Warn("No complete americano schedule found, using a random round")
	return GenerateIndividualRound(players, 1, courts, rng)
}

func searchAmericano(players []string, rng *rand.Rand, attempts int) ([][]core.Pair, bool) {
	numRounds := len(players) - 1
	if len(players)%2 != 0 {
		numRounds = len(players)
	}

	for range attempts {
		used := make(map[partners]bool)
		rounds := make([][]core.Pair, 0, numRounds)
		for r := range numRounds {
			teams, ok := greedyPartners(activePlayers(players, r), used, rng)
			if !ok {
				break
			}
			rounds = append(rounds, teams)
		}
		if len(rounds) == numRounds {
			return rounds, true
		}
	}

	return nil, false
}

// Returns the players of round r. With an odd number of players
// the r-th player rests.
func activePlayers(players []string, r int) []string {
	if len(players)%2 == 0 {
		return players
	}
	resting := r % len(players)
	active := make([]string, 0, len(players)-1)
	active = append(active, players[:resting]...)
	return append(active, players[resting+1:]...)
}

// Pairs every player of the shuffled order with the first following
// player that it has not partnered yet. The new partnerships are
// recorded in used only when the whole round succeeds.
func greedyPartners(players []string, used map[partners]bool, rng *rand.Rand) ([]core.Pair, bool) {
	order := shuffled(players, rng)
	taken := make([]bool, len(order))
	round := make([]partners, 0, len(order)/2)

	for i, p := range order {
		if taken[i] {
			continue
		}
		found := false
		for j := i + 1; j < len(order); j += 1 {
			if taken[j] || used[newPartners(p, order[j])] {
				continue
			}
			taken[i], taken[j] = true, true
			round = append(round, newPartners(p, order[j]))
			found = true
			break
		}
		if !found {
			return nil, false
		}
	}

	teams := make([]core.Pair, 0, len(round))
	for _, key := range round {
		used[key] = true
		teams = append(teams, key.pair())
	}
	return teams, true
}

// GenerateMexicanoRound creates the next mexicano round from the
// players ranked by their points. Each group of 4 consecutive ranks
// plays with the 1st and 4th against the 2nd and 3rd. Players below
// the last full group sit out.
func GenerateMexicanoRound(ranked []string, round, courts int) []*core.Match {
	if len(ranked) < 4 {
		return nil
	}

	matches := make([]*core.Match, 0, len(ranked)/4)
	for i := 0; i+3 < len(ranked); i += 4 {
		m := match(round, ranked[i], ranked[i+3], ranked[i+1], ranked[i+2])
		if courts > 0 {
			m.Court = (i/4)%courts + 1
		}
		matches = append(matches, m)
	}
	return matches
}
