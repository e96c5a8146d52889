package core

import (
	"errors"
	"testing"
)

func walkover(match *Match) {
	match.Status = StatusNotPlayed
	match.Score = &Score{Description: "W.O."}
	match.Points = &MatchPoints{P1: 4, P2: 0}
}

func TestAdvanceOutOfOrder(t *testing.T) {
	players := PlayerSlice(4)
	divisions, _ := GenerateBracket(players, false)
	tournament := NewTournament(divisions...)
	semi1, semi2 := divisions[0].Round(1)[0], divisions[0].Round(1)[1]
	final := divisions[0].Round(2)[0]

	finish(semi2, 6, 2)
	AdvanceWinner(tournament, semi2, semi2.Pair1)
	eq1 := final.Pair1.Same(single(players[1]))
	eq2 := final.Pair2.IsEmpty()
	eq3 := final.Pair2.Placeholder == "Winner R1.1"
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The remaining slot does not wait for the winner of the first semi")
	}

	finish(semi1, 6, 2)
	AdvanceWinner(tournament, semi1, semi1.Pair1)
	if !final.Pair2.Same(single(players[0])) {
		t.Fatal("The winner of the first semi did not take the remaining slot")
	}

	if err := RetractAdvance(tournament, semi2); err != nil {
		t.Fatal(err)
	}
	eq1 = final.Pair1.IsEmpty() && final.Pair1.Placeholder == "Winner R1.2"
	eq2 = final.Pair2.Same(single(players[0]))
	if !eq1 || !eq2 {
		t.Fatal("The retracted slot does not wait for the winner of the second semi")
	}
}

func TestCheckAdvance(t *testing.T) {
	divisions, _ := GenerateBracket(PlayerSlice(4), false)
	tournament := NewTournament(divisions...)
	semi1 := divisions[0].Round(1)[0]
	final := divisions[0].Round(2)[0]

	if err := CheckAdvance(tournament, semi1); err != nil {
		t.Fatal(err)
	}
	if err := CheckAdvance(tournament, final); err != nil {
		t.Fatal(err)
	}

	final.Pair1, final.Pair2 = single("x"), single("y")
	if err := CheckAdvance(tournament, semi1); !errors.Is(err, ErrNoEmptySlot) {
		t.Fatal("A full next match was not reported")
	}

	final.Pair1 = semi1.Pair2
	if err := CheckAdvance(tournament, semi1); err != nil {
		t.Fatal("A side that already advanced was refused")
	}

	semi1.NextMatchID = "missing"
	if err := CheckAdvance(tournament, semi1); !errors.Is(err, ErrMatchNotFound) {
		t.Fatal("A dangling next match was not reported")
	}
}

func TestDropWalkover(t *testing.T) {
	players := PlayerSlice(4)
	divisions, _ := GenerateBracket(players, true)
	tournament := NewTournament(divisions...)
	main, consolation := divisions[0], divisions[1]
	semi1, semi2 := main.Round(1)[0], main.Round(1)[1]
	consFinal := consolation.Matches[0]

	walkover(semi1)
	if err := DropWalkover(tournament, semi1); err != nil {
		t.Fatal(err)
	}
	eq1 := consFinal.Pair1.IsBye()
	eq2 := consFinal.Status == StatusPending
	if !eq1 || !eq2 {
		t.Fatal("The walkover did not leave a bye in the consolation bracket")
	}

	finish(semi2, 6, 2)
	if err := MoveLoserToConsolation(tournament, semi2, semi2.Pair2); err != nil {
		t.Fatal(err)
	}
	eq1 = consFinal.IsByeResolved()
	eq2 = consFinal.Pair2.Same(single(players[2]))
	eq3 := consFinal.Points.P2 == 1
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The other loser did not win the consolation final by bye")
	}

	if err := DropWalkover(tournament, semi1); !errors.Is(err, ErrConsolationLocked) {
		t.Fatal("A second bye was dropped into a decided match")
	}
	if err := DropWalkover(tournament, consFinal); err != nil {
		t.Fatal("A consolation match dropped a bye")
	}
}

func TestRetractResult(t *testing.T) {
	players := PlayerSlice(4)
	divisions, _ := GenerateBracket(players, true)
	tournament := NewTournament(divisions...)
	main, consolation := divisions[0], divisions[1]
	semi1, semi2 := main.Round(1)[0], main.Round(1)[1]
	final := main.Round(2)[0]
	consFinal := consolation.Matches[0]

	finish(semi1, 6, 1)
	AdvanceWinner(tournament, semi1, semi1.Pair1)
	MoveLoserToConsolation(tournament, semi1, semi1.Pair2)

	if err := RetractResult(tournament, semi1); err != nil {
		t.Fatal(err)
	}
	eq1 := semi1.Status == StatusPending && semi1.Points == nil
	eq2 := final.Pair1.IsEmpty() && final.Pair1.Placeholder == "Winner R1.1"
	eq3 := consFinal.Pair1.IsEmpty() && consFinal.Pair1.Placeholder == "Loser R1.1"
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The result was not taken back out of the brackets")
	}

	// A walkover left a bye that the other loser won against
	walkover(semi1)
	AdvanceWinner(tournament, semi1, semi1.Pair1)
	DropWalkover(tournament, semi1)
	finish(semi2, 6, 2)
	AdvanceWinner(tournament, semi2, semi2.Pair1)
	MoveLoserToConsolation(tournament, semi2, semi2.Pair2)
	if !consFinal.IsByeResolved() {
		t.Fatal("The consolation final was not resolved by the walkover bye")
	}

	if err := RetractResult(tournament, semi1); err != nil {
		t.Fatal(err)
	}
	eq1 = consFinal.Status == StatusPending && consFinal.Points == nil
	eq2 = consFinal.Pair1.IsEmpty() && consFinal.Pair1.Placeholder == "Loser R1.1"
	eq3 = consFinal.Pair2.Same(single(players[2]))
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The walkover bye was not taken back out of the consolation final")
	}
	if final.ContainsPair(single(players[0])) {
		t.Fatal("The walkover winner was not taken back out of the final")
	}
}

func TestRetractResultLocked(t *testing.T) {
	players := PlayerSlice(4)
	divisions, _ := GenerateBracket(players, true)
	tournament := NewTournament(divisions...)
	main, consolation := divisions[0], divisions[1]
	semi1, semi2 := main.Round(1)[0], main.Round(1)[1]
	final := main.Round(2)[0]
	consFinal := consolation.Matches[0]

	for _, semi := range []*Match{semi1, semi2} {
		finish(semi, 6, 1)
		AdvanceWinner(tournament, semi, semi.Pair1)
		MoveLoserToConsolation(tournament, semi, semi.Pair2)
	}

	finish(consFinal, 6, 4)
	err := RetractResult(tournament, semi1)
	if !errors.Is(err, ErrConsolationLocked) {
		t.Fatal("A loser that played the consolation final was taken back")
	}
	eq1 := semi1.IsFinished()
	eq2 := final.Pair1.Same(single(players[0]))
	if !eq1 || !eq2 {
		t.Fatal("The refused retraction changed the state")
	}

	consFinal.Reset()
	finish(final, 6, 3)
	if err := RetractResult(tournament, semi2); !errors.Is(err, ErrResultLocked) {
		t.Fatal("A winner that played the final was taken back")
	}
	if !consFinal.Pair2.Same(single(players[2])) {
		t.Fatal("The refused retraction changed the consolation bracket")
	}

	// The top seed of a bracket of 3 wins by bye
	divisions, _ = GenerateBracket(PlayerSlice(3), false)
	tournament = NewTournament(divisions...)
	byeMatch := divisions[0].Round(1)[0]
	if err := RetractResult(tournament, byeMatch); !errors.Is(err, ErrByeResult) {
		t.Fatal("A bye result was taken back")
	}
}

// A later round loser that took the slot of its first round bye
// gives it back to the bye.
func TestRetractDeepDrop(t *testing.T) {
	players := PlayerSlice(5)
	divisions, _ := GenerateBracket(players, true)
	tournament := NewTournament(divisions...)
	main, consolation := divisions[0], divisions[1]
	cons2 := consolation.Round(1)[1]
	consFinal := consolation.Round(2)[0]
	final := main.Round(3)[0]

	realMatch := main.Round(1)[1]
	finish(realMatch, 6, 3)
	AdvanceWinner(tournament, realMatch, realMatch.Pair1)
	MoveLoserToConsolation(tournament, realMatch, realMatch.Pair2)

	semi2 := main.Round(2)[1]
	finish(semi2, 6, 4)
	AdvanceWinner(tournament, semi2, semi2.Pair1)
	MoveLoserToConsolation(tournament, semi2, semi2.Pair2)
	if !final.Pair2.IsEmpty() || final.Pair2.Placeholder != "Winner R2.1" {
		t.Fatal("The final does not wait for the winner of the first semi")
	}

	if err := RetractResult(tournament, semi2); err != nil {
		t.Fatal(err)
	}

	eq1 := cons2.IsByeResolved()
	eq2 := cons2.Pair1.IsBye() && cons2.Pair2.IsBye()
	if !eq1 || !eq2 {
		t.Fatal("The slot of seed 3 was not given back to the bye")
	}
	eq1 = consFinal.IsByeResolved()
	eq2 = consFinal.Pair2.Same(single(players[4]))
	if !eq1 || !eq2 {
		t.Fatal("Seed 5 does not advance through the byes again")
	}
	eq1 = semi2.Status == StatusPending
	eq2 = final.Pair1.IsEmpty() && final.Pair1.Placeholder == "Winner R2.2"
	if !eq1 || !eq2 {
		t.Fatal("The winner of the second semi was not taken back")
	}
}
