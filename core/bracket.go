package core

import (
	"fmt"
	"math/bits"
)

const (
	MainBracketName        = "Cuadro principal"
	ConsolationBracketName = "Consolación"
)

// CalculateBracketSize returns the number of slots in the first
// round of an elimination bracket for n participants.
// That is the next power of two greater or equal to n.
func CalculateBracketSize(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << bits.Len(uint(n-1))
}

func getNumRounds(size int) int {
	return bits.Len(uint(size)) - 1
}

// RoundName returns the display name of an elimination round
// by the number of matches in it.
func RoundName(matchCount int) string {
	switch matchCount {
	case 1:
		return "Final"
	case 2:
		return "Semifinales"
	case 4:
		return "Cuartos"
	case 8:
		return "Octavos"
	}
	return fmt.Sprintf("Ronda de %d", matchCount*2)
}

func winnerLabel(round, position int, consolation bool) string {
	label := fmt.Sprintf("Winner R%d.%d", round, position)
	if consolation {
		label += ConsolationSuffix
	}
	return label
}

func loserLabel(position int) string {
	return fmt.Sprintf("Loser R1.%d", position)
}

// ParseParticipants decodes a list of participant tokens.
// With a non-nil roster the legacy "id1-id2" encoding is
// resolved against it.
func ParseParticipants(tokens []string, roster []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(tokens))
	for _, token := range tokens {
		var pair Pair
		var err error
		if roster != nil {
			pair, err = ResolveLegacyToken(token, roster)
		} else {
			pair, err = ParseParticipant(token)
		}
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", token, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// GenerateBracket creates the divisions of a single elimination
// bracket for the participant tokens in seed order.
//
// The first division is the main bracket. With hasConsolation the
// second division is the consolation bracket for the losers of the
// first round. It is returned even when it holds no matches.
//
// All first round byes are resolved before this returns.
func GenerateBracket(participants []string, hasConsolation bool) ([]*Division, error) {
	pairs, err := ParseParticipants(participants, nil)
	if err != nil {
		return nil, err
	}
	return GenerateBracketFromPairs(pairs, hasConsolation), nil
}

// GenerateBracketFromPairs is GenerateBracket for already decoded participants.
func GenerateBracketFromPairs(pairs []Pair, hasConsolation bool) []*Division {
	size := CalculateBracketSize(len(pairs))
	if size < 2 {
		return nil
	}

	numRounds := getNumRounds(size)

	seeds := make([]Pair, size)
	for i := range size {
		if i < len(pairs) {
			seeds[i] = pairs[i]
		} else {
			seeds[i] = ByePair()
		}
	}

	mainRounds := make([][]*Match, 0, numRounds)
	firstRound := make([]*Match, 0, size/2)
	for _, matchup := range arrangeSeeds(numRounds) {
		match := NewMatch(1, seeds[matchup.seed1], seeds[matchup.seed2])
		firstRound = append(firstRound, match)
	}
	mainRounds = append(mainRounds, firstRound)
	mainRounds = append(mainRounds, createFollowingRounds(firstRound, numRounds, false)...)
	nameRounds(mainRounds, false)

	main := NewDivision(1, MainBracketName, playerIds(pairs), flatten(mainRounds))
	main.Type = DivisionMain
	main.Stage = StagePlayoff
	t := NewTournament(main)

	var consolation *Division
	if hasConsolation {
		consolation = NewDivision(2, ConsolationBracketName, []string{}, []*Match{})
		consolation.Type = DivisionConsolation
		consolation.Stage = StagePlayoff

		if size >= 4 {
			consRounds := createConsolationRounds(firstRound, numRounds-1)
			consolation.Matches = flatten(consRounds)
		}
		t.AddDivisions(consolation)
	}

	for _, m := range firstRound {
		resolveBye(t, m)
	}

	if consolation == nil {
		return []*Division{main}
	}
	return []*Division{main, consolation}
}

// Creates the empty rounds following the first round
// and links every match to the next one.
func createFollowingRounds(firstRound []*Match, numRounds int, consolation bool) [][]*Match {
	rounds := make([][]*Match, 0, numRounds-1)
	previous := firstRound
	for r := 2; r <= numRounds; r += 1 {
		round := make([]*Match, 0, len(previous)/2)
		for i := 0; i < len(previous); i += 2 {
			match := NewMatch(
				r,
				PlaceholderPair(winnerLabel(r-1, i+1, consolation)),
				PlaceholderPair(winnerLabel(r-1, i+2, consolation)),
			)
			previous[i].NextMatchID = match.ID
			previous[i+1].NextMatchID = match.ID
			round = append(round, match)
		}
		rounds = append(rounds, round)
		previous = round
	}
	return rounds
}

// Creates the consolation tree whose first round takes the
// losers of two adjacent main bracket first round matches.
func createConsolationRounds(mainFirstRound []*Match, numRounds int) [][]*Match {
	firstRound := make([]*Match, 0, len(mainFirstRound)/2)
	for i := 0; i < len(mainFirstRound); i += 2 {
		match := NewMatch(
			1,
			PlaceholderPair(loserLabel(i+1)),
			PlaceholderPair(loserLabel(i+2)),
		)
		mainFirstRound[i].ConsolationMatchID = match.ID
		mainFirstRound[i+1].ConsolationMatchID = match.ID
		firstRound = append(firstRound, match)
	}

	rounds := [][]*Match{firstRound}
	rounds = append(rounds, createFollowingRounds(firstRound, numRounds, true)...)
	nameRounds(rounds, true)
	return rounds
}

func nameRounds(rounds [][]*Match, consolation bool) {
	for _, round := range rounds {
		name := RoundName(len(round))
		if consolation {
			name += ConsolationSuffix
		}
		for _, m := range round {
			m.RoundName = name
		}
	}
}

func flatten(rounds [][]*Match) []*Match {
	matches := make([]*Match, 0, 2*len(rounds))
	for _, r := range rounds {
		matches = append(matches, r...)
	}
	return matches
}

func playerIds(pairs []Pair) []string {
	ids := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.Players()...)
	}
	return ids
}

// FirstRoundOpponent returns the seed (0-based) that the given seed
// meets in the first round of a bracket for n participants.
// The result is -1 when the seed plays against a bye.
func FirstRoundOpponent(seed, n int) int {
	opponent := CalculateBracketSize(n) - 1 - seed
	if opponent >= n || opponent < 0 {
		return -1
	}
	return opponent
}

type seedMatchup struct {
	seed1 int
	seed2 int
}

// Arranges the seeds for the first elimination round of
// a total of numRounds.
//
// The arrangement ensures that the top 2 seeds can only
// meet in the final, the top 4 seeds can only meet
// in the semi-final, etc...
//
// More info: https://en.wikipedia.org/wiki/Single-elimination_tournament#Seeding
func arrangeSeeds(numRounds int) []*seedMatchup {
	// Start with the final between the first two seeds
	matchups := []*seedMatchup{{0, 1}}
	totalSeeds := 2

	// Work down the tournament tree by round (semis, quarters, ...)
	for i := 1; i < numRounds; i += 1 {
		nextMatchups := make([]*seedMatchup, 0, totalSeeds)
		totalSeeds *= 2
		for _, parent := range matchups {
			s1 := parent.seed1
			s2 := parent.seed2

			nextMatchups = append(
				nextMatchups,
				&seedMatchup{s1, totalSeeds - 1 - s1},
				&seedMatchup{s2, totalSeeds - 1 - s2},
			)
		}

		matchups = nextMatchups
	}

	return matchups
}
