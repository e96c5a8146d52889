package core

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoConsolationSlot = errors.New("no consolation match takes the loser")
	ErrNotEligible       = errors.New("the loser is not eligible for the consolation bracket")
	ErrConsolationLocked = errors.New("the consolation slot is occupied by a played match")
)

// MoveLoserToConsolation drops the loser of a main bracket match into
// the consolation bracket.
//
// First round losers go to the consolation match that the match's
// ConsolationMatchID points to. Losers of later rounds are only
// eligible when they reached that round through byes. They go to the
// consolation match of their first round match. A consolation match
// that was already resolved as a bye is rolled back to make room.
//
// When the loser already plays in a consolation bracket nothing
// happens. When no consolation match can take the loser the state
// is left unchanged and ErrNoConsolationSlot is returned.
func MoveLoserToConsolation(t *Tournament, match *Match, loser Pair) error {
	if !loser.IsReal() || match.IsConsolation() {
		return nil
	}
	for _, d := range t.ConsolationDivisions() {
		if d.ContainsPair(loser) {
			return nil
		}
	}

	feeder := match
	if match.ConsolationMatchID == "" && match.Round > 1 {
		var err error
		feeder, err = traceFirstRound(t, match, loser)
		if err != nil {
			return err
		}
	}

	if feeder != nil && feeder.ConsolationMatchID != "" {
		target := t.Match(feeder.ConsolationMatchID)
		if target != nil {
			return placeLoser(t, target, loser, feederPosition(t, feeder))
		}
	}

	return placeLoserAnywhere(t, match, loser)
}

// traceFirstRound finds the first round match of the pair that
// lost in a later round. The pair must have won all of its
// previous matches by bye.
func traceFirstRound(t *Tournament, match *Match, pair Pair) (*Match, error) {
	var firstRound *Match
	for d, m := range t.Matches() {
		if d.IsConsolation() || d.Stage == StageGroup || m.IsConsolation() {
			continue
		}
		if m.Round >= match.Round || !m.ContainsPair(pair) {
			continue
		}
		if !m.IsByeResolved() {
			return nil, ErrNotEligible
		}
		if m.Round == 1 {
			firstRound = m
		}
	}
	return firstRound, nil
}

// placeLoser puts the loser into the consolation match. The slot at
// the feeder's position is preferred when it is free or holds a bye.
func placeLoser(t *Tournament, target *Match, loser Pair, position int) error {
	if target.IsFinished() {
		if !target.IsByeResolved() {
			return ErrConsolationLocked
		}
		if err := checkRollback(t, target); err != nil {
			return err
		}
		rollbackBye(t, target)
	}

	slot := consolationSlot(target, position)
	if slot == nil {
		return ErrNoConsolationSlot
	}

	*slot = loser.Filled()
	log.WithFields(log.Fields{
		"match": target.ID,
		"pair":  loser.Token(),
	}).Debug("moved loser to consolation")

	resolveBye(t, target)
	return nil
}

// placeLoserAnywhere scans the first round of the consolation bracket
// for a bye slot, then for an empty slot.
func placeLoserAnywhere(t *Tournament, match *Match, loser Pair) error {
	candidates := make([]*Match, 0, 8)
	for _, d := range consolationDivisionsFor(t, match) {
		candidates = append(candidates, d.Round(1)...)
	}

	for _, wantBye := range []bool{true, false} {
		for _, c := range candidates {
			if c.IsFinished() && (!c.IsByeResolved() || checkRollback(t, c) != nil) {
				continue
			}
			if slotWith(c, wantBye) == nil {
				continue
			}
			if c.IsFinished() {
				rollbackBye(t, c)
			}
			*slotWith(c, wantBye) = loser.Filled()
			resolveBye(t, c)
			return nil
		}
	}

	log.WithFields(log.Fields{
		"match": match.ID,
		"pair":  loser.Token(),
	}).Warn("no consolation match found for the loser")
	return ErrNoConsolationSlot
}

// Returns the consolation divisions of the same category as the match's
// division, all consolation divisions when none matches.
func consolationDivisionsFor(t *Tournament, match *Match) []*Division {
	all := t.ConsolationDivisions()
	division := t.DivisionOf(match.ID)
	if division == nil {
		return all
	}
	same := make([]*Division, 0, len(all))
	for _, d := range all {
		if d.Category == division.Category {
			same = append(same, d)
		}
	}
	if len(same) == 0 {
		return all
	}
	return same
}

func consolationSlot(match *Match, position int) *Pair {
	preferred := feederSlot(match, position)
	if preferred.IsEmpty() || preferred.IsBye() {
		return preferred
	}
	if slot := slotWith(match, false); slot != nil {
		return slot
	}
	return slotWith(match, true)
}

// Returns the first slot that holds a bye or the first empty slot
func slotWith(match *Match, bye bool) *Pair {
	for _, slot := range []*Pair{&match.Pair1, &match.Pair2} {
		if bye && slot.IsBye() {
			return slot
		}
		if !bye && slot.IsEmpty() {
			return slot
		}
	}
	return nil
}

// DropWalkover puts a bye into the consolation slot of a first round
// match that ended in a walkover. The absent pair does not play the
// consolation bracket, so its opponent there advances by bye. A later
// round loser that drops can still take the slot back.
func DropWalkover(t *Tournament, match *Match) error {
	if match.IsConsolation() || match.ConsolationMatchID == "" {
		return nil
	}
	target := t.Match(match.ConsolationMatchID)
	if target == nil {
		return ErrMatchNotFound
	}
	if target.IsFinished() {
		return ErrConsolationLocked
	}

	slot := feederSlot(target, feederPosition(t, match))
	if !slot.IsEmpty() {
		return ErrNoConsolationSlot
	}

	*slot = ByePair()
	log.WithFields(log.Fields{
		"match": target.ID,
		"from":  match.ID,
	}).Debug("dropped walkover bye to consolation")

	resolveBye(t, target)
	return nil
}

// RetractDrop takes the loser of the match back out of the first
// round of the consolation bracket. After a walkover the bye that
// DropWalkover placed is taken back instead. A later round loser
// gives the slot back to the bye it took it from.
//
// Byes that the dropped pair resolved are rolled back. When the
// consolation match was played nothing changes and
// ErrConsolationLocked is returned.
func RetractDrop(t *Tournament, match *Match) error {
	target, slot := droppedSlot(t, match)
	if slot == nil {
		return nil
	}
	if err := checkRetract(t, target, ErrConsolationLocked); err != nil {
		return err
	}
	if target.IsFinished() {
		rollbackBye(t, target)
	}

	if match.Round > 1 {
		// Later round losers took the slot of their first round bye
		*slot = ByePair()
		resolveBye(t, target)
		return nil
	}
	*slot = PlaceholderPair(dropLabel(t, target, slot))
	return nil
}

// Returns the consolation match with the slot that the loser of
// the decided main bracket match went into
func droppedSlot(t *Tournament, match *Match) (*Match, *Pair) {
	_, loser, ok := match.Winner()
	if !ok || match.IsConsolation() {
		return nil, nil
	}

	if match.Status == StatusNotPlayed {
		if match.ConsolationMatchID == "" {
			return nil, nil
		}
		target := t.Match(match.ConsolationMatchID)
		if target == nil {
			return nil, nil
		}
		slot := feederSlot(target, feederPosition(t, match))
		if !slot.IsBye() {
			return nil, nil
		}
		return target, slot
	}

	for _, d := range consolationDivisionsFor(t, match) {
		for _, m := range d.Round(1) {
			if slot := m.slotOf(loser); slot != nil {
				return m, slot
			}
		}
	}
	return nil, nil
}

// Returns the slot of the consolation match that the main bracket
// match at the given first round position feeds
func feederSlot(match *Match, position int) *Pair {
	if position%2 == 0 {
		return &match.Pair1
	}
	return &match.Pair2
}

// Returns the loser label of the consolation slot
func dropLabel(t *Tournament, match *Match, slot *Pair) string {
	position := 2 * feederPosition(t, match)
	if slot == &match.Pair2 {
		position += 1
	}
	return loserLabel(position + 1)
}
