package core

import (
	"encoding/json"
	"errors"
	"iter"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTooFewEntries = errors.New("not enough entries for this tournament mode")
	ErrMatchNotFound = errors.New("match not found")
)

var newID = uuid.NewString

// PointsConfig is the table of standings points that a
// finished set based match awards.
type PointsConfig struct {
	Win2_0  int `json:"pointsPerWin2_0" yaml:"win2_0"`
	Loss2_0 int `json:"pointsPerLoss2_0" yaml:"loss2_0"`
	Win2_1  int `json:"pointsPerWin2_1" yaml:"win2_1"`
	Loss2_1 int `json:"pointsPerLoss2_1" yaml:"loss2_1"`
	Draw    int `json:"pointsDraw" yaml:"draw"`
}

func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		Win2_0:  4,
		Loss2_0: 0,
		Win2_1:  3,
		Loss2_1: 1,
		Draw:    2,
	}
}

// A TimeWindow is a daily opening interval of the courts in
// "15:04" notation. End must be after Start.
type TimeWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// SchedulerConfig describes the shared court pool of a tournament.
type SchedulerConfig struct {
	Courts              int `json:"courts" yaml:"courts"`
	SlotDurationMinutes int `json:"slotDurationMinutes" yaml:"slotDurationMinutes"`
	RestMinutes         int `json:"restMinutes" yaml:"restMinutes"`

	// Granularity of the slot search, 30 minutes when zero
	StepMinutes int `json:"stepMinutes,omitempty" yaml:"stepMinutes,omitempty"`
	// Length of the slot search window, 7 days when zero
	SearchDays int `json:"searchDays,omitempty" yaml:"searchDays,omitempty"`

	TimeWindows []TimeWindow `json:"timeWindows,omitempty" yaml:"timeWindows,omitempty"`
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Courts:              2,
		SlotDurationMinutes: 90,
		RestMinutes:         30,
		StepMinutes:         30,
		SearchDays:          7,
	}
}

func (c SchedulerConfig) SlotDuration() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

func (c SchedulerConfig) Step() time.Duration {
	if c.StepMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.StepMinutes) * time.Minute
}

func (c SchedulerConfig) SearchWindow() time.Duration {
	days := c.SearchDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// A TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type PlayerConstraint struct {
	UnavailableRanges []TimeRange `json:"unavailableRanges"`
}

type matchRef struct {
	division *Division
	match    *Match
}

// A Tournament is the complete state of a competition: its
// divisions and the configuration that the engines work with.
//
// The engines mutate the Tournament in place. Callers that
// need an untouched copy take a Clone first.
type Tournament struct {
	Divisions         []*Division                 `json:"divisions"`
	SchedulerConfig   *SchedulerConfig            `json:"schedulerConfig,omitempty"`
	PlayerConstraints map[string]PlayerConstraint `json:"playerConstraints,omitempty"`
	Points            PointsConfig                `json:"config"`
	Format            Format                      `json:"-"`

	index map[string]matchRef
}

func NewTournament(divisions ...*Division) *Tournament {
	return &Tournament{
		Divisions: divisions,
		Points:    DefaultPointsConfig(),
	}
}

// Reindex rebuilds the match lookup table. It has to be called
// when matches are added to or removed from a division of
// the tournament directly.
func (t *Tournament) Reindex() {
	index := make(map[string]matchRef)
	for _, d := range t.Divisions {
		for _, m := range d.Matches {
			index[m.ID] = matchRef{division: d, match: m}
		}
	}
	t.index = index
}

func (t *Tournament) lookup(id string) (matchRef, bool) {
	if id == "" {
		return matchRef{}, false
	}
	if t.index == nil {
		t.Reindex()
	}
	ref, ok := t.index[id]
	if !ok {
		// The divisions might have changed since the last indexing
		t.Reindex()
		ref, ok = t.index[id]
	}
	return ref, ok
}

// Returns the match with the given id or nil
func (t *Tournament) Match(id string) *Match {
	ref, ok := t.lookup(id)
	if !ok {
		return nil
	}
	return ref.match
}

// Returns the division that contains the match with the given id or nil
func (t *Tournament) DivisionOf(matchID string) *Division {
	ref, ok := t.lookup(matchID)
	if !ok {
		return nil
	}
	return ref.division
}

// Returns the division with the given id or nil
func (t *Tournament) Division(id string) *Division {
	for _, d := range t.Divisions {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (t *Tournament) AddDivisions(divisions ...*Division) {
	t.Divisions = append(t.Divisions, divisions...)
	t.index = nil
}

// Returns the scheduler config or the defaults when none is set
func (t *Tournament) Scheduler() SchedulerConfig {
	if t.SchedulerConfig == nil {
		return DefaultSchedulerConfig()
	}
	return *t.SchedulerConfig
}

// Matches iterates all matches of all divisions.
func (t *Tournament) Matches() iter.Seq2[*Division, *Match] {
	return func(yield func(*Division, *Match) bool) {
		for _, d := range t.Divisions {
			for _, m := range d.Matches {
				if !yield(d, m) {
					return
				}
			}
		}
	}
}

// ConsolationDivisions returns the consolation typed divisions.
func (t *Tournament) ConsolationDivisions() []*Division {
	divisions := make([]*Division, 0, 1)
	for _, d := range t.Divisions {
		if d.IsConsolation() {
			divisions = append(divisions, d)
		}
	}
	return divisions
}

// Clone returns a deep copy of the tournament.
func (t *Tournament) Clone() (*Tournament, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	clone := &Tournament{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil, err
	}
	return clone, nil
}
