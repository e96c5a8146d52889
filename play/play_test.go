package play

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/schedule"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.June, 6, hour, minute, 0, 0, time.UTC)
}

func straightSets(p1 bool) Result {
	if p1 {
		return Result{Sets: []core.Set{{P1: 6, P2: 2}, {P1: 6, P2: 1}}}
	}
	return Result{Sets: []core.Set{{P1: 2, P2: 6}, {P1: 1, P2: 6}}}
}

func bracketTournament(t *testing.T) (*core.Tournament, *core.Division, *core.Division) {
	t.Helper()
	divisions, err := core.GenerateBracket([]string{"p1", "p2", "p3", "p4"}, true)
	require.NoError(t, err)
	tournament := core.NewTournament(divisions...)
	tournament.Format = core.EliminationFormat{Consolation: true}
	return tournament, divisions[0], divisions[1]
}

func TestReportBracketResult(t *testing.T) {
	tournament, main, consolation := bracketTournament(t)
	semi1 := main.Round(1)[0]
	final := main.Round(2)[0]
	consFinal := consolation.Matches[0]

	report, err := ReportResult(tournament, semi1.ID, straightSets(true))
	require.NoError(t, err)
	assert.True(t, report.Advanced)
	assert.True(t, report.Dropped)
	assert.Equal(t, "Victoria 2-0", report.Outcome.Description)

	assert.Equal(t, core.StatusFinished, semi1.Status)
	assert.Equal(t, core.MatchPoints{P1: 4, P2: 0}, *semi1.Points)
	assert.Equal(t, "p1", final.Pair1.P1)
	assert.Equal(t, "p4", consFinal.Pair1.P1)

	_, err = ReportResult(tournament, semi1.ID, straightSets(true))
	assert.ErrorIs(t, err, ErrMatchFinished)

	_, err = ReportResult(tournament, final.ID, straightSets(true))
	assert.ErrorIs(t, err, ErrMatchNotReady)

	_, err = ReportResult(tournament, "unknown", straightSets(true))
	assert.ErrorIs(t, err, core.ErrMatchNotFound)
}

func TestBracketDraw(t *testing.T) {
	tournament, main, _ := bracketTournament(t)
	semi1 := main.Round(1)[0]

	draw := Result{Sets: []core.Set{{P1: 6, P2: 4}, {P1: 4, P2: 6}}}
	_, err := ReportResult(tournament, semi1.ID, draw)
	assert.ErrorIs(t, err, ErrBracketDraw)
	assert.Equal(t, core.StatusPending, semi1.Status)
	assert.Nil(t, semi1.Points)
}

func TestReportSchedulesDependants(t *testing.T) {
	tournament, main, consolation := bracketTournament(t)
	config := core.DefaultSchedulerConfig()
	config.Courts = 2
	tournament.SchedulerConfig = &config

	semis := main.Round(1)
	for i, semi := range semis {
		semi.Schedule(at(10, 0), i+1)
	}

	recorder := Recorder{Planner: schedule.Planner{Now: func() time.Time { return at(9, 0) }}}

	report, err := recorder.ReportResult(tournament, semis[0].ID, straightSets(true))
	require.NoError(t, err)
	assert.Empty(t, report.Scheduled)

	report, err = recorder.ReportResult(tournament, semis[1].ID, straightSets(false))
	require.NoError(t, err)
	require.Len(t, report.Scheduled, 2)

	final := main.Round(2)[0]
	consFinal := consolation.Matches[0]
	assert.Same(t, final, report.Scheduled[0])
	assert.Same(t, consFinal, report.Scheduled[1])

	assert.Equal(t, at(12, 0), *final.StartTime)
	assert.Equal(t, 1, final.Court)
	assert.Equal(t, at(12, 0), *consFinal.StartTime)
	assert.Equal(t, 2, consFinal.Court)

	assert.True(t, final.Pair2.Same(core.Pair{P1: "p3"}))
	assert.True(t, consFinal.Pair2.Same(core.Pair{P1: "p2"}))
}

func TestWalkover(t *testing.T) {
	tournament, main, consolation := bracketTournament(t)
	semi1 := main.Round(1)[0]

	_, err := Walkover(tournament, semi1.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidSide)

	report, err := Walkover(tournament, semi1.ID, 1)
	require.NoError(t, err)
	assert.True(t, report.Advanced)
	assert.False(t, report.Dropped)

	assert.Equal(t, core.StatusNotPlayed, semi1.Status)
	assert.Equal(t, "W.O.", semi1.Score.Description)
	assert.Equal(t, core.MatchPoints{P1: 4, P2: 0}, *semi1.Points)
	assert.Equal(t, "p1", main.Round(2)[0].Pair1.P1)
	assert.True(t, consolation.Matches[0].Pair1.IsBye())

	_, err = Walkover(tournament, semi1.ID, 0)
	assert.ErrorIs(t, err, ErrMatchFinished)
}

func TestWalkoverCompletesConsolation(t *testing.T) {
	tournament, main, consolation := bracketTournament(t)
	semis := main.Round(1)
	consFinal := consolation.Matches[0]

	_, err := Walkover(tournament, semis[0].ID, 1)
	require.NoError(t, err)
	report, err := ReportResult(tournament, semis[1].ID, straightSets(true))
	require.NoError(t, err)
	assert.True(t, report.Dropped)

	// The loser of the other semi wins the consolation by bye
	assert.True(t, consFinal.IsByeResolved())
	assert.True(t, consFinal.Pair2.Same(core.Pair{P1: "p3"}))
	assert.Equal(t, core.MatchPoints{P1: 0, P2: 1}, *consFinal.Points)
}

func TestReportResultFullNextMatch(t *testing.T) {
	tournament, main, _ := bracketTournament(t)
	semi1 := main.Round(1)[0]
	final := main.Round(2)[0]
	final.Pair1, final.Pair2 = core.Pair{P1: "x"}, core.Pair{P1: "y"}

	_, err := ReportResult(tournament, semi1.ID, straightSets(true))
	assert.ErrorIs(t, err, core.ErrNoEmptySlot)
	_, err = Walkover(tournament, semi1.ID, 1)
	assert.ErrorIs(t, err, core.ErrNoEmptySlot)

	// Nothing was recorded
	assert.Equal(t, core.StatusPending, semi1.Status)
	assert.Nil(t, semi1.Points)
}

func TestUndoResult(t *testing.T) {
	tournament, main, consolation := bracketTournament(t)
	semis := main.Round(1)
	final := main.Round(2)[0]
	consFinal := consolation.Matches[0]

	_, err := UndoResult(tournament, semis[0].ID)
	assert.ErrorIs(t, err, ErrMatchUndecided)
	_, err = UndoResult(tournament, "unknown")
	assert.ErrorIs(t, err, core.ErrMatchNotFound)

	_, err = ReportResult(tournament, semis[0].ID, straightSets(false))
	require.NoError(t, err)
	require.Equal(t, "p4", final.Pair1.P1)
	require.Equal(t, "p1", consFinal.Pair1.P1)

	match, err := UndoResult(tournament, semis[0].ID)
	require.NoError(t, err)
	assert.Same(t, semis[0], match)
	assert.Equal(t, core.StatusPending, match.Status)
	assert.True(t, final.Pair1.IsEmpty())
	assert.True(t, consFinal.Pair1.IsEmpty())

	// The corrected result propagates like a new one
	_, err = ReportResult(tournament, semis[0].ID, straightSets(true))
	require.NoError(t, err)
	assert.Equal(t, "p1", final.Pair1.P1)
	assert.Equal(t, "p4", consFinal.Pair1.P1)

	_, err = ReportResult(tournament, semis[1].ID, straightSets(true))
	require.NoError(t, err)
	_, err = ReportResult(tournament, final.ID, straightSets(true))
	require.NoError(t, err)
	_, err = UndoResult(tournament, semis[1].ID)
	assert.ErrorIs(t, err, core.ErrResultLocked)
	assert.Equal(t, core.StatusFinished, semis[1].Status)
}

func TestUndoLeagueResult(t *testing.T) {
	match := core.NewMatch(1, core.Pair{P1: "a", P2: "b"}, core.Pair{P1: "c", P2: "d"})
	division := core.NewDivision(1, "Division 1", []string{"a", "b", "c", "d"}, []*core.Match{match})
	tournament := core.NewTournament(division)
	tournament.Format = core.PairsFormat{}

	_, err := Walkover(tournament, match.ID, 0)
	require.NoError(t, err)
	_, err = UndoResult(tournament, match.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending, match.Status)
	assert.Nil(t, match.Score)
}

func TestLeagueResult(t *testing.T) {
	ab := core.Pair{P1: "a", P2: "b"}
	cd := core.Pair{P1: "c", P2: "d"}
	match := core.NewMatch(1, ab, cd)
	resting := core.NewMatch(2, ab, core.Pair{})
	resting.Status = core.StatusResting

	division := core.NewDivision(1, "Division 1", []string{"a", "b", "c", "d"}, []*core.Match{match, resting})
	tournament := core.NewTournament(division)
	tournament.Format = core.PairsFormat{}

	incomplete := Result{Sets: []core.Set{{P1: 6, P2: 3}, {P1: 2, P2: 5}}, Incomplete: true}
	report, err := ReportResult(tournament, match.ID, incomplete)
	require.NoError(t, err)
	assert.False(t, report.Advanced)
	assert.Equal(t, core.MatchPoints{P1: 2, P2: 2}, *match.Points)
	assert.Equal(t, "incompleto", match.Score.FinalizationType)

	_, err = ReportResult(tournament, resting.ID, straightSets(true))
	assert.ErrorIs(t, err, ErrMatchResting)
}

func TestIndividualResult(t *testing.T) {
	match := core.NewMatch(1, core.Pair{P1: "a", P2: "b"}, core.Pair{P1: "c", P2: "d"})
	division := core.NewDivision(1, "Grupo", []string{"a", "b", "c", "d"}, []*core.Match{match})
	tournament := core.NewTournament(division)
	tournament.Format = core.ClassicFormat{Individual: true}

	tied := Result{Sets: []core.Set{{P1: 4, P2: 4}, {P1: 4, P2: 4}}}
	_, err := ReportResult(tournament, match.ID, tied)
	require.NoError(t, err)
	assert.Equal(t, core.MatchPoints{P1: 2, P2: 2}, *match.Points)
}

func TestAmericanoResult(t *testing.T) {
	match := core.NewMatch(1, core.Pair{P1: "a", P2: "b"}, core.Pair{P1: "c", P2: "d"})
	division := core.NewDivision(1, "Americano", []string{"a", "b", "c", "d"}, []*core.Match{match})
	tournament := core.NewTournament(division)
	tournament.Format = core.AmericanoFormat{Courts: 1}

	report, err := ReportResult(tournament, match.ID, Result{Points1: 21, Points2: 15})
	require.NoError(t, err)
	assert.Equal(t, "21-15", report.Outcome.Description)
	assert.Equal(t, core.MatchPoints{P1: 21, P2: 15}, *match.Points)
	assert.Equal(t, 21, match.Score.Points1)
	assert.Equal(t, 15, match.Score.Points2)
}
