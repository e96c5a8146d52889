// Package play records match results and propagates them through
// the tournament: standings points, bracket advancement, the drop
// into the consolation bracket and the scheduling of the matches
// that become ready.
package play

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/schedule"
	"github.com/ezBadminton/racquet/standings"
)

var (
	ErrMatchFinished  = errors.New("the match already has a result")
	ErrMatchResting   = errors.New("the match is a rest round")
	ErrMatchNotReady  = errors.New("the match does not have both opponents yet")
	ErrMatchUndecided = errors.New("the match has no result to undo")
	ErrBracketDraw    = errors.New("a bracket match can not end in a draw")
	ErrInvalidSide    = errors.New("the side has to be 0 or 1")
)

// Result is the entered result of a match.
type Result struct {
	// Sets of set based formats
	Sets       []core.Set `json:"sets,omitempty"`
	Incomplete bool       `json:"incomplete,omitempty"`
	ForceDraw  bool       `json:"forceDraw,omitempty"`

	// Raw points of the americano and mexicano formats
	Points1 int `json:"points1,omitempty"`
	Points2 int `json:"points2,omitempty"`
}

// Report summarizes the changes that a result caused.
type Report struct {
	Match   *core.Match        `json:"match"`
	Outcome *standings.Outcome `json:"outcome"`

	// The winner moved into the next bracket match
	Advanced bool `json:"advanced"`
	// The loser dropped into the consolation bracket
	Dropped bool `json:"dropped"`
	// The matches that got a slot assigned
	Scheduled []*core.Match `json:"scheduled,omitempty"`
}

// A Recorder enters results into tournaments.
type Recorder struct {
	Planner schedule.Planner
}

// ReportResult enters the result with the wall clock planner.
func ReportResult(t *core.Tournament, matchID string, result Result) (*Report, error) {
	return Recorder{}.ReportResult(t, matchID, result)
}

// Walkover awards the match to the present side with the wall clock planner.
func Walkover(t *core.Tournament, matchID string, absent int) (*Report, error) {
	return Recorder{}.Walkover(t, matchID, absent)
}

// ReportResult evaluates the result and finishes the match.
//
// In bracket divisions the winner advances and a main bracket
// loser drops into the consolation bracket of the category when
// there is one. Failures of the drop are logged and leave the
// consolation bracket untouched. Then the matches that became
// ready are scheduled.
func (r Recorder) ReportResult(t *core.Tournament, matchID string, result Result) (*Report, error) {
	match, division, err := reportable(t, matchID)
	if err != nil {
		return nil, err
	}

	outcome, err := evaluate(t, division, result)
	if err != nil {
		return nil, fmt.Errorf("match %v: %w", matchID, err)
	}

	bracket := division.IsBracket()
	if bracket && outcome.Points.P1 == outcome.Points.P2 {
		return nil, ErrBracketDraw
	}
	if bracket {
		if err := core.CheckAdvance(t, match); err != nil {
			return nil, fmt.Errorf("match %v: %w", matchID, err)
		}
	}

	score := outcome.Score(result.Sets)
	if _, ok := t.Format.(core.AmericanoFormat); ok {
		score.Points1, score.Points2 = result.Points1, result.Points2
	}
	match.Finish(score, outcome.Points)

	log.WithFields(log.Fields{
		"match":    match.ID,
		"division": division.ID,
		"result":   outcome.Description,
	}).Debug("Reported result")

	report := &Report{Match: match, Outcome: outcome}
	if !bracket {
		return report, nil
	}

	winner, loser, _ := match.Winner()
	if err := r.propagate(t, match, winner, report); err != nil {
		return report, err
	}

	if !division.IsConsolation() && len(t.ConsolationDivisions()) > 0 {
		err := core.MoveLoserToConsolation(t, match, loser)
		switch {
		case err == nil:
			report.Dropped = inConsolation(t, loser)
		case errors.Is(err, core.ErrNotEligible), errors.Is(err, core.ErrNoConsolationSlot):
		default:
			log.WithFields(log.Fields{
				"match": match.ID,
				"pair":  loser.Token(),
			}).Warn(err)
		}
	}

	report.Scheduled = r.Planner.ScheduleNextMatches(t, match)
	return report, nil
}

// Walkover finishes the match as not played because the given side
// (0 or 1) did not show up. The present side gets the points of a 2-0
// win and advances in bracket divisions. The absent side does not
// drop into the consolation bracket, a bye takes its place there.
func (r Recorder) Walkover(t *core.Tournament, matchID string, absent int) (*Report, error) {
	if absent != 0 && absent != 1 {
		return nil, ErrInvalidSide
	}
	match, division, err := reportable(t, matchID)
	if err != nil {
		return nil, err
	}

	if division.IsBracket() {
		if err := core.CheckAdvance(t, match); err != nil {
			return nil, fmt.Errorf("match %v: %w", matchID, err)
		}
	}

	present := 1 - absent
	outcome := standings.WalkoverPoints(present, t.Points)
	match.Status = core.StatusNotPlayed
	match.Score = outcome.Score(nil)
	match.Points = &outcome.Points

	log.WithFields(log.Fields{
		"match":    match.ID,
		"division": division.ID,
		"absent":   absent,
	}).Debug("Reported walkover")

	report := &Report{Match: match, Outcome: outcome}
	if !division.IsBracket() {
		return report, nil
	}

	winner := match.Pair1
	if present == 1 {
		winner = match.Pair2
	}
	if err := r.propagate(t, match, winner, report); err != nil {
		return report, err
	}

	if !division.IsConsolation() {
		if err := core.DropWalkover(t, match); err != nil {
			log.WithField("match", match.ID).Warn(err)
		}
	}

	report.Scheduled = r.Planner.ScheduleNextMatches(t, match)
	return report, nil
}

// UndoResult takes back the result of the match so that it can be
// entered again. In bracket divisions the winner leaves the next match
// and the loser leaves the consolation bracket. That is refused with
// core.ErrResultLocked or core.ErrConsolationLocked once one of them
// played there.
func UndoResult(t *core.Tournament, matchID string) (*core.Match, error) {
	match := t.Match(matchID)
	if match == nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMatchNotFound, matchID)
	}
	if !match.IsDecided() {
		return nil, ErrMatchUndecided
	}

	division := t.DivisionOf(matchID)
	if division.IsBracket() {
		if err := core.RetractResult(t, match); err != nil {
			return nil, fmt.Errorf("match %v: %w", matchID, err)
		}
	} else {
		match.Reset()
	}

	log.WithFields(log.Fields{
		"match":    match.ID,
		"division": division.ID,
	}).Debug("Undid result")
	return match, nil
}

func (r Recorder) propagate(t *core.Tournament, match *core.Match, winner core.Pair, report *Report) error {
	if match.NextMatchID == "" {
		return nil
	}
	if err := core.AdvanceWinner(t, match, winner); err != nil {
		return fmt.Errorf("match %v: %w", match.ID, err)
	}
	report.Advanced = true
	return nil
}

// Returns the match with its division when it can take a result
func reportable(t *core.Tournament, matchID string) (*core.Match, *core.Division, error) {
	match := t.Match(matchID)
	if match == nil {
		return nil, nil, fmt.Errorf("%w: %v", core.ErrMatchNotFound, matchID)
	}
	switch {
	case match.Status == core.StatusResting:
		return nil, nil, ErrMatchResting
	case match.Status != core.StatusPending:
		return nil, nil, ErrMatchFinished
	case !match.IsReady():
		return nil, nil, ErrMatchNotReady
	}
	return match, t.DivisionOf(matchID), nil
}

// Computes the standings points of the result by the tournament format
func evaluate(t *core.Tournament, division *core.Division, result Result) (*standings.Outcome, error) {
	switch f := t.Format.(type) {
	case core.AmericanoFormat:
		return rawOutcome(result), nil
	case core.ClassicFormat:
		return standings.CalculateMatchPoints(standings.MatchInput{
			Sets:       result.Sets,
			Incomplete: result.Incomplete,
			ForceDraw:  result.ForceDraw,
			Individual: f.Individual && !division.IsBracket(),
		}, t.Points)
	default:
		return standings.CalculateMatchPoints(standings.MatchInput{
			Sets:       result.Sets,
			Incomplete: result.Incomplete,
			ForceDraw:  result.ForceDraw,
		}, t.Points)
	}
}

// Point formats rank by the raw points, a tie is a draw
func rawOutcome(result Result) *standings.Outcome {
	description := fmt.Sprintf("%d-%d", result.Points1, result.Points2)
	return &standings.Outcome{
		Points:           core.MatchPoints{P1: result.Points1, P2: result.Points2},
		Description:      description,
		FinalizationType: standings.FinalizationComplete,
	}
}

func inConsolation(t *core.Tournament, pair core.Pair) bool {
	for _, d := range t.ConsolationDivisions() {
		if d.ContainsPair(pair) {
			return true
		}
	}
	return false
}
