// internal/httpserver/server.go
//
// HTTP wiring for the read-only scoreboard.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Score endpoints: GET /scores, GET /scores/{difficulty}.
//
// Notes:
//   - Every request reloads the record from the store, so wins saved by a
//     running game show up immediately.
//   - Nothing here writes to the store.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/scores"
)

// Server bundles router and score store.
type Server struct {
	r      *chi.Mux
	store  scores.Store
	origin string
}

// New constructs a Server, installs middleware, and registers routes.
// origin is the single CORS origin allowed to read the scoreboard.
func New(st scores.Store, origin string) *Server {
	s := &Server{r: chi.NewRouter(), store: st, origin: origin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // read-only CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guess-scoreboard","endpoints":["/health","/scores","/scores/{difficulty}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/scores", s.handleScores)
	s.r.Get("/scores/{difficulty}", s.handleDifficulty)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows GET from the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", s.origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SCORES -------------------------------------

// difficultyRes is the payload for GET /scores/{difficulty}.
type difficultyRes struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Attempts   *int            `json:"attempts"` // null when no score yet
}

// handleScores returns the whole record in its persisted shape.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load scores")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(rec)
}

// handleDifficulty returns one difficulty's best, or 404 for unknown names.
func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	d := game.Difficulty(chi.URLParam(r, "difficulty"))
	if !d.Valid() {
		writeError(w, http.StatusNotFound, "unknown_difficulty")
		return
	}
	rec, err := s.store.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Str("difficulty", string(d)).Msg("load scores")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	res := difficultyRes{Difficulty: d}
	if best, ok := rec.Best(d); ok {
		res.Attempts = &best
	}
	_ = json.NewEncoder(w).Encode(res)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
