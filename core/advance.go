package core

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoEmptySlot  = errors.New("the next match has no empty slot")
	ErrResultLocked = errors.New("the result already propagated into a played match")
	ErrByeResult    = errors.New("a bye result can not be retracted")
)

// AdvanceWinner puts the winner of the match into the first empty
// slot of the match that the NextMatchID points to.
//
// Nothing happens at the final or when the winner already occupies
// a slot of the next match. When the next match becomes a bye it is
// resolved right away.
func AdvanceWinner(t *Tournament, match *Match, winner Pair) error {
	if match.NextMatchID == "" {
		return nil
	}
	next := t.Match(match.NextMatchID)
	if next == nil {
		return ErrMatchNotFound
	}
	if next.ContainsPair(winner) {
		return nil
	}

	slot := firstEmptySlot(next)
	if slot == nil {
		log.WithFields(log.Fields{
			"match": match.ID,
			"next":  next.ID,
			"pair":  winner.Token(),
		}).Warn("no empty slot to advance the winner into")
		return ErrNoEmptySlot
	}

	fillSlot(next, slot, winner, placeholderOf(t, match))
	resolveBye(t, next)
	return nil
}

// CheckAdvance reports whether the winner of the match, whichever
// side it turns out to be, can be advanced into the next match.
func CheckAdvance(t *Tournament, match *Match) error {
	if match.NextMatchID == "" {
		return nil
	}
	next := t.Match(match.NextMatchID)
	if next == nil {
		return ErrMatchNotFound
	}
	if firstEmptySlot(next) != nil || next.ContainsPair(match.Pair1) || next.ContainsPair(match.Pair2) {
		return nil
	}
	return ErrNoEmptySlot
}

// fillSlot puts the pair into the slot of the next match that the
// feeder with the given label advances into. When the slot was
// waiting for another feeder, that label moves over to the slot
// that is still empty.
func fillSlot(next *Match, slot *Pair, pair Pair, label string) {
	waiting := slot.Placeholder
	*slot = pair.Filled()

	other := &next.Pair1
	if slot == &next.Pair1 {
		other = &next.Pair2
	}
	if other.IsEmpty() && other.Placeholder == label && waiting != "" {
		other.Placeholder = waiting
	}
}

// RetractAdvance removes the advanced winner of the match from the
// next match and restores the slot's placeholder. It is used when a
// result is edited after it was reported.
//
// Byes that the winner resolved downstream are rolled back too. When
// the winner already played its next match the state is left unchanged
// and ErrResultLocked is returned.
func RetractAdvance(t *Tournament, match *Match) error {
	next, slot, err := advancedSlot(t, match)
	if err != nil || slot == nil {
		return err
	}

	if next.IsFinished() {
		if !next.IsByeResolved() || checkRollback(t, next) != nil {
			return ErrResultLocked
		}
		rollbackBye(t, next)
	}

	*slot = PlaceholderPair(placeholderOf(t, match))
	return nil
}

// Returns the next match with the slot that the winner of the match took
func advancedSlot(t *Tournament, match *Match) (*Match, *Pair, error) {
	winner, _, ok := match.Winner()
	if !ok || match.NextMatchID == "" {
		return nil, nil, nil
	}
	next := t.Match(match.NextMatchID)
	if next == nil {
		return nil, nil, ErrMatchNotFound
	}
	return next, next.slotOf(winner), nil
}

// checkRetract reports whether the pair that moved into the match
// can be taken back out of it.
func checkRetract(t *Tournament, match *Match, locked error) error {
	if !match.IsFinished() {
		return nil
	}
	if !match.IsByeResolved() || checkRollback(t, match) != nil {
		return locked
	}
	return nil
}

// RetractResult reverts a decided bracket match to pending. The
// winner is taken back out of the next match and the loser (or the
// bye of a walkover) out of the consolation bracket.
//
// Bye results can not be retracted. When one of the pairs already
// played its following match nothing changes and ErrResultLocked or
// ErrConsolationLocked is returned.
func RetractResult(t *Tournament, match *Match) error {
	if match.IsByeResolved() || match.HasBye() {
		return ErrByeResult
	}
	if !match.IsDecided() {
		return nil
	}

	next, slot, err := advancedSlot(t, match)
	if err != nil {
		return err
	}
	if slot != nil {
		if err := checkRetract(t, next, ErrResultLocked); err != nil {
			return err
		}
	}
	if target, slot := droppedSlot(t, match); slot != nil {
		if err := checkRetract(t, target, ErrConsolationLocked); err != nil {
			return err
		}
	}

	if err := RetractAdvance(t, match); err != nil {
		return err
	}
	if err := RetractDrop(t, match); err != nil {
		return err
	}

	log.WithField("match", match.ID).Debug("retracted result")
	match.Reset()
	return nil
}

// resolveBye finishes a match that has both slots occupied and
// at least one of them is a bye. The advancing token is carried
// forward into the next match and the losing token into the
// consolation bracket, both of which are resolved recursively.
func resolveBye(t *Tournament, match *Match) {
	if match.IsFinished() || match.Pair1.IsEmpty() || match.Pair2.IsEmpty() || !match.HasBye() {
		return
	}

	var points MatchPoints
	var winner, loser Pair
	switch {
	case match.Pair1.IsBye() && match.Pair2.IsBye():
		winner, loser = ByePair(), ByePair()
	case match.Pair2.IsBye():
		points = MatchPoints{P1: 1, P2: 0}
		winner, loser = match.Pair1, match.Pair2
	default:
		points = MatchPoints{P1: 0, P2: 1}
		winner, loser = match.Pair2, match.Pair1
	}

	match.Finish(&Score{Description: ByeDescription}, points)

	log.WithFields(log.Fields{
		"match":  match.ID,
		"winner": winner.Token(),
	}).Trace("resolved bye")

	if match.NextMatchID != "" {
		if next := t.Match(match.NextMatchID); next != nil {
			if slot := firstEmptySlot(next); slot != nil {
				fillSlot(next, slot, winner, placeholderOf(t, match))
				resolveBye(t, next)
			}
		}
	}

	if match.ConsolationMatchID != "" {
		if cons := t.Match(match.ConsolationMatchID); cons != nil && !cons.IsFinished() {
			if slot := consolationSlot(cons, feederPosition(t, match)); slot != nil {
				*slot = loser.Filled()
				resolveBye(t, cons)
			}
		}
	}
}

// Returns the token that a bye resolved match carried forward
func byeAdvanced(match *Match) Pair {
	if match.Pair2.IsBye() {
		return match.Pair1
	}
	return match.Pair2
}

// checkRollback reports whether the bye resolved match can be reverted.
// That is the case when none of the matches that its advanced token
// reached have been played.
func checkRollback(t *Tournament, match *Match) error {
	if match.NextMatchID == "" {
		return nil
	}
	next := t.Match(match.NextMatchID)
	if next == nil || !next.IsFinished() {
		return nil
	}
	if !next.IsByeResolved() {
		return ErrConsolationLocked
	}
	return checkRollback(t, next)
}

// rollbackBye reverts a bye resolved match to pending and takes its
// advanced token back out of the following matches. Callers check
// with checkRollback first.
func rollbackBye(t *Tournament, match *Match) {
	advanced := byeAdvanced(match)

	if match.NextMatchID != "" {
		if next := t.Match(match.NextMatchID); next != nil {
			if next.IsByeResolved() {
				rollbackBye(t, next)
			}
			if slot := next.slotOf(advanced); slot != nil {
				*slot = PlaceholderPair(placeholderOf(t, match))
			}
		}
	}

	log.WithField("match", match.ID).Debug("rolled back bye")
	match.Reset()
}

func firstEmptySlot(match *Match) *Pair {
	switch {
	case match.Pair1.IsEmpty():
		return &match.Pair1
	case match.Pair2.IsEmpty():
		return &match.Pair2
	}
	return nil
}

// Returns the position of the match inside of its round
func feederPosition(t *Tournament, match *Match) int {
	division := t.DivisionOf(match.ID)
	if division == nil {
		return 0
	}
	return max(0, division.roundIndex(match))
}

// Returns the placeholder label that stands for the winner of the match
func placeholderOf(t *Tournament, match *Match) string {
	return winnerLabel(match.Round, feederPosition(t, match)+1, match.IsConsolation())
}
