package schedule

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/core"
)

// A Planner schedules the matches that become ready when a
// bracket match is finished.
type Planner struct {
	// Clock of the planner, time.Now when nil
	Now func() time.Time
}

func (p Planner) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// ScheduleNextMatches schedules the ready matches that depend on the
// finished match with the wall clock. See Planner.ScheduleNextMatches.
func ScheduleNextMatches(t *core.Tournament, finished *core.Match) []*core.Match {
	return Planner{}.ScheduleNextMatches(t, finished)
}

// ScheduleNextMatches finds the matches that the pairs of the finished
// match play next and assigns a slot to those that have both
// opponents now.
//
// A dependant starts no earlier than the rest time after the latest
// finished match of either of its pairs. Matches that are already
// scheduled at or after that time keep their slot. When no slot is
// found the match stays unscheduled.
//
// The newly scheduled matches are returned.
func (p Planner) ScheduleNextMatches(t *core.Tournament, finished *core.Match) []*core.Match {
	config := t.Scheduler()
	if config.Courts <= 0 {
		return nil
	}

	scheduled := make([]*core.Match, 0, 2)
	for _, dependant := range dependants(t, finished) {
		if !dependant.IsReady() || dependant.Status != core.StatusPending {
			continue
		}

		minStart := p.earliestStart(t, dependant, config)
		if dependant.IsScheduled() && !dependant.StartTime.Before(minStart) {
			continue
		}

		occupied := AllOccupiedSlots(t, dependant.ID)
		constraints := constraintsOf(t, dependant.Players())
		candidate, ok := FindNextSlot(minStart, config, occupied, constraints)
		if !ok {
			log.WithFields(log.Fields{
				"match":    dependant.ID,
				"division": divisionID(t, dependant),
				"after":    minStart.Format(time.RFC3339),
			}).Warn("No free slot found for the match")
			continue
		}

		dependant.Schedule(candidate.Start, candidate.Court)
		scheduled = append(scheduled, dependant)
		log.WithFields(log.Fields{
			"match": dependant.ID,
			"court": candidate.Court,
			"start": candidate.Start.Format(time.RFC3339),
		}).Debug("Scheduled match")
	}

	return scheduled
}

// ScheduleMatch assigns the first free slot at or after the given
// time to a pending match. The slot also respects the rest time of
// the match's players. Scheduled matches are moved.
func (p Planner) ScheduleMatch(t *core.Tournament, match *core.Match, after time.Time) (Candidate, bool) {
	config := t.Scheduler()
	if config.Courts <= 0 || match.Status != core.StatusPending {
		return Candidate{}, false
	}

	minStart := p.earliestStart(t, match, config)
	if after.After(minStart) {
		minStart = after
	}

	constraints := constraintsOf(t, match.Players())
	candidate, ok := FindNextSlot(minStart, config, AllOccupiedSlots(t, match.ID), constraints)
	if ok {
		match.Schedule(candidate.Start, candidate.Court)
	}
	return candidate, ok
}

// Returns the rest time after the latest end of the finished
// matches of the dependant's pairs
func (p Planner) earliestStart(t *core.Tournament, dependant *core.Match, config core.SchedulerConfig) time.Time {
	duration := config.SlotDuration()
	now := p.now()

	latest := time.Time{}
	for _, pair := range []core.Pair{dependant.Pair1, dependant.Pair2} {
		end, ok := lastFinishedEnd(t, pair, dependant.ID, duration)
		if !ok {
			end = now
		}
		if end.After(latest) {
			latest = end
		}
	}

	return AddMinutes(latest, config.RestMinutes)
}

func lastFinishedEnd(t *core.Tournament, pair core.Pair, excludeID string, duration time.Duration) (time.Time, bool) {
	latest := time.Time{}
	found := false
	for _, m := range t.Matches() {
		if m.ID == excludeID || !m.IsFinished() || m.StartTime == nil || !m.ContainsPair(pair) {
			continue
		}
		if end := m.EndTime(duration); end.After(latest) {
			latest = end
			found = true
		}
	}
	return latest, found
}

// Returns the matches that the pairs of the finished match play
// next without duplicates.
//
// These are the targets of the match pointers in the bracket
// graph in the order of the pointers, the first later
// round match of each pair in the same division and the first
// pending bracket match of each pair in other divisions (a deep
// round loser that dropped into a consolation bracket).
func dependants(t *core.Tournament, finished *core.Match) []*core.Match {
	seen := make(map[string]bool)
	result := make([]*core.Match, 0, 2)
	add := func(m *core.Match) {
		if m == nil || m.ID == finished.ID || seen[m.ID] {
			return
		}
		seen[m.ID] = true
		result = append(result, m)
	}

	graph, err := core.NewBracketGraph(t)
	if err != nil {
		log.WithField("match", finished.ID).Warn(err)
	} else {
		for _, m := range graph.Dependants(finished) {
			add(m)
		}
	}

	division := t.DivisionOf(finished.ID)
	for _, pair := range []core.Pair{finished.Pair1, finished.Pair2} {
		if !pair.IsReal() {
			continue
		}
		if division != nil {
			add(nextInDivision(division, pair, finished.Round))
		}
		for _, d := range t.Divisions {
			if d == division || !d.IsBracket() {
				continue
			}
			add(pendingInDivision(d, pair))
		}
	}

	return result
}

// Returns the match of the lowest round after the given one
// that holds the pair
func nextInDivision(division *core.Division, pair core.Pair, round int) *core.Match {
	var next *core.Match
	for _, m := range division.Matches {
		if m.Round <= round || !m.ContainsPair(pair) {
			continue
		}
		if next == nil || m.Round < next.Round {
			next = m
		}
	}
	return next
}

func pendingInDivision(division *core.Division, pair core.Pair) *core.Match {
	for _, m := range division.Matches {
		if m.Status == core.StatusPending && m.ContainsPair(pair) {
			return m
		}
	}
	return nil
}

func divisionID(t *core.Tournament, match *core.Match) string {
	if d := t.DivisionOf(match.ID); d != nil {
		return d.ID
	}
	return ""
}
