package standings

// MatchMetrics are the accumulated results of one standings
// entry over the matches it played.
type MatchMetrics struct {
	Points int `json:"points"`

	NumMatches int `json:"numMatches"`
	Wins       int `json:"wins"`
	Draws      int `json:"draws"`
	Losses     int `json:"losses"`

	NumSets   int `json:"numSets"`
	SetWins   int `json:"setWins"`
	SetLosses int `json:"setLosses"`

	GameWins   int `json:"gameWins"`
	GameLosses int `json:"gameLosses"`

	SetDifference  int `json:"setDifference"`
	GameDifference int `json:"gameDifference"`
}

func (m *MatchMetrics) UpdateDifferences() {
	m.SetDifference = m.SetWins - m.SetLosses
	m.GameDifference = m.GameWins - m.GameLosses
}

// Add the other match metrics to this one
func (m *MatchMetrics) Add(other *MatchMetrics) {
	m.Points += other.Points

	m.NumMatches += other.NumMatches
	m.Wins += other.Wins
	m.Draws += other.Draws
	m.Losses += other.Losses

	m.NumSets += other.NumSets
	m.SetWins += other.SetWins
	m.SetLosses += other.SetLosses

	m.GameWins += other.GameWins
	m.GameLosses += other.GameLosses

	m.UpdateDifferences()
}

// Returns the metrics of one side of a match. The result is
// oriented so that "own" is the side the metrics are for.
func sideMetrics(points, otherPoints int, games [][2]int) *MatchMetrics {
	m := &MatchMetrics{
		Points:     points,
		NumMatches: 1,
	}

	switch {
	case points > otherPoints:
		m.Wins = 1
	case points < otherPoints:
		m.Losses = 1
	default:
		m.Draws = 1
	}

	for _, set := range games {
		own, other := set[0], set[1]
		m.NumSets += 1
		m.GameWins += own
		m.GameLosses += other

		if own == other {
			continue
		}
		if own > other {
			m.SetWins += 1
		} else {
			m.SetLosses += 1
		}
	}

	m.UpdateDifferences()
	return m
}
