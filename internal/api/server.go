// Package api serves the tournament engines over JSON.
//
// The server keeps no state. Requests that work on a tournament
// carry its complete state and the response returns the changed
// state.
package api

import (
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ezBadminton/racquet/internal/config"
	"github.com/ezBadminton/racquet/pairing"
	"github.com/ezBadminton/racquet/play"
	"github.com/ezBadminton/racquet/schedule"
)

type Server struct {
	config   *config.Config
	recorder play.Recorder
	router   chi.Router
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{config: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// WithPlanner replaces the planner that schedules the matches
// after reported results.
func (s *Server) WithPlanner(planner schedule.Planner) *Server {
	s.recorder = play.Recorder{Planner: planner}
	return s
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.health)
	router.Post("/brackets", s.createBracket)
	router.Post("/pairings/{format}", s.createPairings)
	router.Post("/points", s.calculatePoints)

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/results", s.reportResult)
		r.Post("/results/undo", s.undoResult)
		r.Post("/standings", s.divisionStandings)
		r.Post("/promotions", s.calculatePromotions)
		r.Post("/playoff", s.playoff)
	})

	router.Route("/schedule", func(r chi.Router) {
		r.Post("/next-slot", s.nextSlot)
		r.Post("/check", s.checkSlot)
		r.Post("/next-matches", s.scheduleNextMatches)
	})

	return router
}

// Returns the search of the pairing generators. A zero request
// seed falls back to the configured seed.
func (s *Server) search(seed int64, attempts int) pairing.Search {
	if seed == 0 {
		seed = s.config.Search.Seed
	}
	search := pairing.Search{Attempts: attempts}
	if seed != 0 {
		search.Rng = rand.New(rand.NewSource(seed))
	}
	return search
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}
