package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/pairing"
	"github.com/ezBadminton/racquet/play"
	"github.com/ezBadminton/racquet/schedule"
	"github.com/ezBadminton/racquet/standings"
)

var (
	errUnknownPairing  = errors.New("unknown pairing format")
	errUnknownDivision = errors.New("unknown division")
	errNoTournament    = errors.New("the request has no tournament")
)

type bracketRequest struct {
	Participants []string `json:"participants"`
	Consolation  bool     `json:"consolation"`
	Seeding      string   `json:"seeding"`
	Seed         int64    `json:"seed"`
}

func (s *Server) createBracket(w http.ResponseWriter, r *http.Request) {
	var req bracketRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	mode, err := core.ParseSeedingMode(req.Seeding)
	if err != nil {
		badRequest(w, err)
		return
	}
	core.SeededShuffle(req.Participants, mode, req.Seed)

	divisions, err := core.GenerateBracket(req.Participants, req.Consolation)
	if err == nil {
		err = core.ValidateBracket(core.NewTournament(divisions...))
	}
	if err != nil {
		unprocessable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"divisions": divisions})
}

type pairingRequest struct {
	Players []string `json:"players"`
	// Pair tokens of the pairs league
	Pairs    []string `json:"pairs"`
	Courts   int      `json:"courts"`
	Round    int      `json:"round"`
	Seed     int64    `json:"seed"`
	Attempts int      `json:"attempts"`
}

func (s *Server) createPairings(w http.ResponseWriter, r *http.Request) {
	var req pairingRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	round := max(req.Round, 1)

	var matches []*core.Match
	switch format := chi.URLParam(r, "format"); format {
	case "classic4":
		matches = pairing.GenerateClassic4(req.Players)
	case "league":
		search := s.search(req.Seed, firstPositive(req.Attempts, s.config.Search.LeagueAttempts))
		matches = pairing.GenerateIndividualLeague(req.Players, search)
	case "round":
		matches = pairing.GenerateIndividualRound(req.Players, round, req.Courts, s.search(req.Seed, 0).Rng)
	case "americano":
		search := s.search(req.Seed, firstPositive(req.Attempts, s.config.Search.AmericanoAttempts))
		matches = pairing.GenerateAmericano(req.Players, req.Courts, search)
	case "mexicano":
		matches = pairing.GenerateMexicanoRound(req.Players, round, req.Courts)
	case "pairs":
		pairs, err := core.ParseParticipants(req.Pairs, nil)
		if err != nil {
			badRequest(w, err)
			return
		}
		matches = pairing.GeneratePairsLeague(pairs)
	default:
		notFound(w, fmt.Errorf("%w: %v", errUnknownPairing, format))
		return
	}

	if matches == nil {
		matches = []*core.Match{}
	}
	writeJSON(w, http.StatusOK, envelope{"matches": matches})
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

type pointsRequest struct {
	Sets       []core.Set         `json:"sets"`
	Incomplete bool               `json:"incomplete"`
	ForceDraw  bool               `json:"forceDraw"`
	Individual bool               `json:"individual"`
	Config     *core.PointsConfig `json:"config"`
}

func (s *Server) calculatePoints(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	config := s.config.Points
	if req.Config != nil {
		config = *req.Config
	}

	outcome, err := standings.CalculateMatchPoints(standings.MatchInput{
		Sets:       req.Sets,
		Incomplete: req.Incomplete,
		ForceDraw:  req.ForceDraw,
		Individual: req.Individual,
	}, config)
	if err != nil {
		unprocessable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

type resultRequest struct {
	Tournament *core.Tournament `json:"tournament"`
	MatchID    string           `json:"matchId"`
	Result     play.Result      `json:"result"`
	// The absent side (0 or 1) of a walkover
	Walkover *int `json:"walkover"`
	// Validate the sets against the rules of a best of 3 match
	Strict bool `json:"strict"`
}

func (s *Server) reportResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}

	var (
		report *play.Report
		err    error
	)
	if req.Walkover != nil {
		report, err = s.recorder.Walkover(req.Tournament, req.MatchID, *req.Walkover)
	} else {
		if req.Strict {
			if err := play.ValidateResult(req.Tournament.Format, req.Result); err != nil {
				unprocessable(w, err)
				return
			}
		}
		report, err = s.recorder.ReportResult(req.Tournament, req.MatchID, req.Result)
	}

	switch {
	case errors.Is(err, core.ErrMatchNotFound):
		notFound(w, err)
	case report == nil && err != nil:
		conflict(w, err)
	default:
		// A failed propagation still changed the match
		response := envelope{"tournament": req.Tournament, "report": report}
		if err != nil {
			response["warning"] = err.Error()
		}
		writeJSON(w, http.StatusOK, response)
	}
}

type undoRequest struct {
	Tournament *core.Tournament `json:"tournament"`
	MatchID    string           `json:"matchId"`
}

func (s *Server) undoResult(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}

	match, err := play.UndoResult(req.Tournament, req.MatchID)
	switch {
	case errors.Is(err, core.ErrMatchNotFound):
		notFound(w, err)
	case err != nil:
		conflict(w, err)
	default:
		writeJSON(w, http.StatusOK, envelope{"tournament": req.Tournament, "match": match})
	}
}

// Writes the error response when the tournament of a request is missing
// or its bracket pointers are broken
func checkTournament(w http.ResponseWriter, t *core.Tournament) bool {
	if t == nil {
		badRequest(w, errNoTournament)
		return false
	}
	if err := core.ValidateBracket(t); err != nil {
		unprocessable(w, err)
		return false
	}
	return true
}

type divisionRequest struct {
	Tournament *core.Tournament `json:"tournament"`
	DivisionID string           `json:"divisionId"`
}

func (s *Server) divisionStandings(w http.ResponseWriter, r *http.Request) {
	var req divisionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}

	division := req.Tournament.Division(req.DivisionID)
	if division == nil {
		notFound(w, fmt.Errorf("%w: %v", errUnknownDivision, req.DivisionID))
		return
	}
	rows := standings.Generate(division, req.Tournament.Format)
	response := envelope{"rows": rows}
	if f, ok := req.Tournament.Format.(core.AmericanoFormat); ok && f.Mexicano {
		order := standings.MexicanoOrder(rows)
		response["nextRound"] = pairing.GenerateMexicanoRound(order, division.NumRounds()+1, f.Courts)
	}
	writeJSON(w, http.StatusOK, response)
}

type promotionRequest struct {
	Tournament *core.Tournament `json:"tournament"`
	Promotion  int              `json:"promotion"`
	Relegation int              `json:"relegation"`
	Seed       int64            `json:"seed"`
}

func (s *Server) calculatePromotions(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}

	format := req.Tournament.Format
	regenerate := pairing.League(format, s.search(req.Seed, s.config.Search.LeagueAttempts))
	promotions := standings.CalculatePromotions(req.Tournament.Divisions, format, req.Promotion, req.Relegation, regenerate)
	writeJSON(w, http.StatusOK, promotions)
}

func (s *Server) playoff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tournament *core.Tournament `json:"tournament"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}
	format, ok := req.Tournament.Format.(core.HybridFormat)
	if !ok {
		unprocessable(w, fmt.Errorf("%w: the playoff needs the hybrid format", core.ErrUnknownFormat))
		return
	}

	groups := make([]*core.Division, 0, len(req.Tournament.Divisions))
	for _, d := range req.Tournament.Divisions {
		if d.Stage == core.StageGroup {
			groups = append(groups, d)
		}
	}
	if !standings.GroupsFinished(groups) {
		conflict(w, errors.New("the group phase is not finished"))
		return
	}

	req.Tournament.AddDivisions(standings.BuildPlayoff(groups, format)...)
	if err := core.ValidateBracket(req.Tournament); err != nil {
		unprocessable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"tournament": req.Tournament})
}

type slotRequest struct {
	MinStart    time.Time                        `json:"minStart"`
	Start       time.Time                        `json:"start"`
	End         time.Time                        `json:"end"`
	Config      *core.SchedulerConfig            `json:"config"`
	Occupied    []schedule.Slot                  `json:"occupied"`
	Constraints map[string]core.PlayerConstraint `json:"constraints"`
}

func (s *Server) schedulerConfig(req *slotRequest) core.SchedulerConfig {
	if req.Config != nil {
		return *req.Config
	}
	return s.config.Scheduler
}

func (s *Server) nextSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	candidate, ok := schedule.FindNextSlot(req.MinStart, s.schedulerConfig(&req), req.Occupied, req.Constraints)
	if !ok {
		writeJSON(w, http.StatusOK, envelope{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, envelope{"found": true, "start": candidate.Start, "court": candidate.Court})
}

func (s *Server) checkSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !req.End.After(req.Start) {
		badRequest(w, errors.New("the slot has to end after its start"))
		return
	}

	check := schedule.IsValidSlot(req.Start, req.End, s.schedulerConfig(&req), req.Occupied, req.Constraints)
	writeJSON(w, http.StatusOK, check)
}

type nextMatchesRequest struct {
	Tournament *core.Tournament `json:"tournament"`
	MatchID    string           `json:"matchId"`
}

func (s *Server) scheduleNextMatches(w http.ResponseWriter, r *http.Request) {
	var req nextMatchesRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !checkTournament(w, req.Tournament) {
		return
	}
	match := req.Tournament.Match(req.MatchID)
	if match == nil {
		notFound(w, fmt.Errorf("%w: %v", core.ErrMatchNotFound, req.MatchID))
		return
	}

	scheduled := s.recorder.Planner.ScheduleNextMatches(req.Tournament, match)
	writeJSON(w, http.StatusOK, envelope{"tournament": req.Tournament, "scheduled": scheduled})
}
