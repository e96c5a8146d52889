package core

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusFinished  Status = "finalizado"
	StatusResting   Status = "descanso"
	StatusNotPlayed Status = "no_disputado"
)

// ByeDescription marks the score of a match that was
// resolved by a free win.
const ByeDescription = "BYE"

// ConsolationSuffix is appended to the round names of
// consolation bracket matches.
const ConsolationSuffix = " (Cons.)"

// A Set is the game score of one set.
type Set struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Returns 0 or 1 whether the first or the second
// side won the set and -1 when it is tied.
func (s Set) Winner() int {
	switch {
	case s.P1 > s.P2:
		return 0
	case s.P2 > s.P1:
		return 1
	}
	return -1
}

// Returns the set with P1 and P2 flipped
func (s Set) Invert() Set {
	return Set{P1: s.P2, P2: s.P1}
}

// The raw result of a match.
//
// Set based formats fill the Sets, point based formats
// (Americano/Mexicano) fill Points1 and Points2.
type Score struct {
	Sets             []Set  `json:"sets,omitempty"`
	Points1          int    `json:"points1,omitempty"`
	Points2          int    `json:"points2,omitempty"`
	Description      string `json:"description,omitempty"`
	FinalizationType string `json:"finalizationType,omitempty"`
}

// MatchPoints are the standings points that a finished
// match awards to each side.
type MatchPoints struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// A match between two pairs.
//
// Round is the league round number or the bracket round
// depth depending on the division the match belongs to.
type Match struct {
	ID    string `json:"id"`
	Round int    `json:"jornada"`

	Pair1 Pair `json:"pair1"`
	Pair2 Pair `json:"pair2"`

	Status Status       `json:"status"`
	Score  *Score       `json:"score,omitempty"`
	Points *MatchPoints `json:"points,omitempty"`

	RoundName string `json:"roundName,omitempty"`

	// The match that the winner advances into.
	// Empty at the final.
	NextMatchID string `json:"nextMatchId,omitempty"`
	// The consolation match that the loser drops into.
	// Only set on first round main bracket matches.
	ConsolationMatchID string `json:"consolationMatchId,omitempty"`

	StartTime *time.Time `json:"startTime,omitempty"`
	Court     int        `json:"court,omitempty"`
}

func NewMatch(round int, pair1, pair2 Pair) *Match {
	return &Match{
		ID:     newID(),
		Round:  round,
		Pair1:  pair1,
		Pair2:  pair2,
		Status: StatusPending,
	}
}

func (m *Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// IsByeResolved is true when the match was finished by a free win
func (m *Match) IsByeResolved() bool {
	return m.IsFinished() && m.Score != nil && m.Score.Description == ByeDescription
}

func (m *Match) HasBye() bool {
	return m.Pair1.IsBye() || m.Pair2.IsBye()
}

// IsConsolation reports whether the match belongs to a
// consolation bracket by its round name.
func (m *Match) IsConsolation() bool {
	return strings.HasSuffix(m.RoundName, ConsolationSuffix)
}

// IsReady is true when both sides hold actual participants.
func (m *Match) IsReady() bool {
	return m.Pair1.IsReal() && m.Pair2.IsReal()
}

func (m *Match) IsScheduled() bool {
	return m.StartTime != nil && m.Court > 0
}

// Returns the end of the match's occupancy interval
func (m *Match) EndTime(slotDuration time.Duration) time.Time {
	if m.StartTime == nil {
		return time.Time{}
	}
	return m.StartTime.Add(slotDuration)
}

// Schedule assigns the match to a court at the given time.
func (m *Match) Schedule(start time.Time, court int) {
	m.StartTime = &start
	m.Court = court
}

func (m *Match) Unschedule() {
	m.StartTime = nil
	m.Court = 0
}

// ContainsPair reports whether one of the sides holds the pair.
func (m *Match) ContainsPair(pair Pair) bool {
	return m.Pair1.Same(pair) || m.Pair2.Same(pair)
}

// ContainsPlayer reports whether one of the sides holds the player.
func (m *Match) ContainsPlayer(id string) bool {
	return m.Pair1.HasPlayer(id) || m.Pair2.HasPlayer(id)
}

// Returns the ids of all actual players of the match
func (m *Match) Players() []string {
	return append(m.Pair1.Players(), m.Pair2.Players()...)
}

// Returns the side slot that holds the pair or nil
func (m *Match) slotOf(pair Pair) *Pair {
	if m.Pair1.Same(pair) {
		return &m.Pair1
	}
	if m.Pair2.Same(pair) {
		return &m.Pair2
	}
	return nil
}

// IsDecided is true when the match has a result, including a walkover.
func (m *Match) IsDecided() bool {
	return m.Status == StatusFinished || m.Status == StatusNotPlayed
}

// Winner returns the winning and losing side of a decided match.
// The last return value is false when the match is undecided or drawn.
func (m *Match) Winner() (Pair, Pair, bool) {
	if !m.IsDecided() || m.Points == nil {
		return Pair{}, Pair{}, false
	}
	switch {
	case m.Points.P1 > m.Points.P2:
		return m.Pair1, m.Pair2, true
	case m.Points.P2 > m.Points.P1:
		return m.Pair2, m.Pair1, true
	}
	return Pair{}, Pair{}, false
}

// Finish sets the result of the match.
func (m *Match) Finish(score *Score, points MatchPoints) {
	m.Status = StatusFinished
	m.Score = score
	m.Points = &points
}

// Reset reverts the match back to pending and clears the result.
func (m *Match) Reset() {
	m.Status = StatusPending
	m.Score = nil
	m.Points = nil
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(m.Pair1.String())
	sb.WriteString(" vs. ")
	sb.WriteString(m.Pair2.String())

	if m.Score != nil {
		sb.WriteRune('\t')
		for _, s := range m.Score.Sets {
			sb.WriteString(fmt.Sprintf("%v - %v ", s.P1, s.P2))
		}
		if len(m.Score.Sets) == 0 && m.Score.Description != "" {
			sb.WriteString(m.Score.Description)
		}
	}

	return sb.String()
}
