// Package schedule assigns courts and start times to matches.
//
// Courts are shared by all divisions of a tournament. A slot is
// the half-open interval [start, start+slot duration) on one court.
package schedule

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/core"
)

var ErrInvalidTimeWindow = errors.New("invalid time window")

// Reasons of a rejected slot
const (
	ReasonPlayerUnavailable = "player unavailable"
	ReasonNoFreeCourt       = "no free court"
)

// A Slot is the occupancy of a court by a scheduled match.
type Slot struct {
	MatchID string    `json:"matchId,omitempty"`
	Court   int       `json:"court"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Availability is the result of a player constraint check.
type Availability struct {
	Valid            bool   `json:"valid"`
	ConflictPlayerID string `json:"conflictPlayerId,omitempty"`
}

// SlotCheck is the result of checking a proposed interval
// against the court occupancy and the players' constraints.
type SlotCheck struct {
	Valid bool   `json:"valid"`
	Court int    `json:"court,omitempty"`
	// Set when the slot is not valid
	Reason           string `json:"reason,omitempty"`
	ConflictPlayerID string `json:"conflictPlayerId,omitempty"`
}

// A Candidate is a free slot found by the search.
type Candidate struct {
	Start time.Time `json:"start"`
	Court int       `json:"court"`
}

func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// RangesOverlap reports whether [s1, e1) and [s2, e2) overlap.
// Intervals that only touch do not overlap.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CheckPlayerAvailability returns the first of the players that
// is unavailable during [start, end).
func CheckPlayerAvailability(start, end time.Time, playerIDs []string, constraints map[string]core.PlayerConstraint) Availability {
	for _, id := range playerIDs {
		constraint, ok := constraints[id]
		if !ok {
			continue
		}
		for _, r := range constraint.UnavailableRanges {
			if RangesOverlap(start, end, r.Start, r.End) {
				return Availability{ConflictPlayerID: id}
			}
		}
	}
	return Availability{Valid: true}
}

// CheckMatchConflict reports whether [start, end) overlaps a slot
// on the same court.
func CheckMatchConflict(start, end time.Time, court int, occupied []Slot) bool {
	for _, s := range occupied {
		if s.Court == court && RangesOverlap(start, end, s.Start, s.End) {
			return true
		}
	}
	return false
}

// IsValidSlot checks [start, end) against the constraints of the
// given players and returns the lowest numbered free court.
//
// All constraints in the map are checked, callers pass only the
// constraints of the players concerned.
func IsValidSlot(start, end time.Time, config core.SchedulerConfig, occupied []Slot, constraints map[string]core.PlayerConstraint) SlotCheck {
	for id, constraint := range constraints {
		for _, r := range constraint.UnavailableRanges {
			if RangesOverlap(start, end, r.Start, r.End) {
				return SlotCheck{Reason: ReasonPlayerUnavailable, ConflictPlayerID: id}
			}
		}
	}

	for court := 1; court <= config.Courts; court += 1 {
		if !CheckMatchConflict(start, end, court, occupied) {
			return SlotCheck{Valid: true, Court: court}
		}
	}

	return SlotCheck{Reason: ReasonNoFreeCourt}
}

// FindNextSlot returns the earliest free slot at or after minStart.
//
// The candidates start at minStart rounded up to the search step and
// advance by the step until the search window is exhausted. With time
// windows configured a candidate has to lie completely inside one
// window of its day.
func FindNextSlot(minStart time.Time, config core.SchedulerConfig, occupied []Slot, constraints map[string]core.PlayerConstraint) (Candidate, bool) {
	windows := parseWindows(config.TimeWindows)
	step := config.Step()
	duration := config.SlotDuration()
	deadline := minStart.Add(config.SearchWindow())

	for candidate := roundUp(minStart, step); candidate.Before(deadline); candidate = candidate.Add(step) {
		end := candidate.Add(duration)
		if len(windows) > 0 && !insideWindow(candidate, end, windows) {
			continue
		}
		check := IsValidSlot(candidate, end, config, occupied, constraints)
		if check.Valid {
			return Candidate{Start: candidate, Court: check.Court}, true
		}
	}

	return Candidate{}, false
}

// Rounds t up to the next multiple of step counted from midnight
func roundUp(t time.Time, step time.Duration) time.Time {
	midnight := startOfDay(t)
	offset := t.Sub(midnight)
	steps := (offset + step - 1) / step
	return midnight.Add(steps * step)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// A daily window as offsets from midnight
type window struct {
	start, end time.Duration
}

func parseWindows(timeWindows []core.TimeWindow) []window {
	windows := make([]window, 0, len(timeWindows))
	for _, tw := range timeWindows {
		w, err := parseWindow(tw)
		if err != nil {
			log.WithField("window", tw).Warn(err)
			continue
		}
		windows = append(windows, w)
	}
	return windows
}

func parseWindow(tw core.TimeWindow) (window, error) {
	start, err := time.Parse("15:04", tw.Start)
	if err != nil {
		return window{}, fmt.Errorf("%w: %w", ErrInvalidTimeWindow, err)
	}
	end, err := time.Parse("15:04", tw.End)
	if err != nil {
		return window{}, fmt.Errorf("%w: %w", ErrInvalidTimeWindow, err)
	}
	w := window{
		start: time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute,
		end:   time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute,
	}
	if w.end <= w.start {
		return window{}, fmt.Errorf("%w: %v-%v ends before it starts", ErrInvalidTimeWindow, tw.Start, tw.End)
	}
	return w, nil
}

// ValidateTimeWindows returns the first malformed window.
func ValidateTimeWindows(timeWindows []core.TimeWindow) error {
	for _, tw := range timeWindows {
		if _, err := parseWindow(tw); err != nil {
			return err
		}
	}
	return nil
}

func insideWindow(start, end time.Time, windows []window) bool {
	midnight := startOfDay(start)
	for _, w := range windows {
		if !start.Before(midnight.Add(w.start)) && !end.After(midnight.Add(w.end)) {
			return true
		}
	}
	return false
}

// AllOccupiedSlots returns the slots of all scheduled matches of
// the tournament except the one with the given id.
func AllOccupiedSlots(t *core.Tournament, excludeID string) []Slot {
	duration := t.Scheduler().SlotDuration()
	slots := make([]Slot, 0, 16)
	for _, m := range t.Matches() {
		if !m.IsScheduled() || m.ID == excludeID {
			continue
		}
		slots = append(slots, Slot{
			MatchID: m.ID,
			Court:   m.Court,
			Start:   *m.StartTime,
			End:     m.EndTime(duration),
		})
	}
	return slots
}

// Returns the constraints of the given players only
func constraintsOf(t *core.Tournament, players []string) map[string]core.PlayerConstraint {
	constraints := make(map[string]core.PlayerConstraint, len(players))
	for _, p := range players {
		if c, ok := t.PlayerConstraints[p]; ok {
			constraints[p] = c
		}
	}
	return constraints
}
