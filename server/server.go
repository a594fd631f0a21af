// Package server exposes agent teams over HTTP so that a host written in
// any language can ask them for moves.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"capture/agent"
	"capture/engine"
	"capture/game"
	"capture/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	sessions *engine.Sessions
	mazes    *game.Mazes
	router   *mux.Router
	log      zerolog.Logger

	first    string
	second   string
	tuning   agent.Tuning
	traceDir string
	compress bool
}

type Option func(s *Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithRoster sets the agent names used when a request names none.
func WithRoster(first, second string) Option {
	return func(s *Server) {
		if first != "" {
			s.first = first
		}
		if second != "" {
			s.second = second
		}
	}
}

func WithTuning(tuning agent.Tuning) Option {
	return func(s *Server) {
		s.tuning = tuning
	}
}

// WithTraceDir writes each finished session's decisions below dir.
func WithTraceDir(dir string) Option {
	return func(s *Server) {
		s.traceDir = dir
	}
}

func WithTraceCompression(enabled bool) Option {
	return func(s *Server) {
		s.compress = enabled
	}
}

func New(opts ...Option) *Server {
	s := &Server{ // Default values
		sessions: engine.NewSessions(),
		mazes:    game.NewMazes(),
		router:   mux.NewRouter(),
		log:      log.Logger,
		first:    agent.DefaultFirst,
		second:   agent.DefaultSecond,
		tuning:   agent.DefaultTuning(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/teams", s.handleCreateTeam).Methods(http.MethodPost)
	s.router.HandleFunc("/teams/{id}/register", s.handleRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/teams/{id}/action", s.handleAction).Methods(http.MethodPost)
	s.router.HandleFunc("/teams/{id}/decisions", s.handleDecisions).Methods(http.MethodGet)
	s.router.HandleFunc("/teams/{id}", s.handleDeleteTeam).Methods(http.MethodDelete)
	return s
}

// Handler returns the router wrapped with request logging.
func (s *Server) Handler() http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	return hlog.NewHandler(s.log)(access(s.router))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("agent server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("agent server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	logger := hlog.FromRequest(r)
	agentOpts := []agent.Option{agent.WithTuning(s.tuning), agent.WithLogger(*logger)}
	if req.Seed != nil {
		agentOpts = append(agentOpts, agent.WithSeed(*req.Seed))
	}

	first, second := req.First, req.Second
	if first == "" {
		first = s.first
	}
	if second == "" {
		second = s.second
	}

	team, err := agent.NewTeam(req.FirstIndex, req.SecondIndex, req.Red,
		agent.WithFirst(first),
		agent.WithSecond(second),
		agent.WithTraining(req.NumTraining),
		agent.WithAgentOptions(agentOpts...),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := s.sessions.Create(team,
		engine.WithLogger(*logger),
		engine.WithMetrics(metrics.NewCollector()),
	)

	resp := CreateTeamResponse{ID: session.ID}
	for _, a := range team.Agents() {
		resp.Agents = append(resp.Agents, AgentInfo{Index: a.Index(), Name: a.Name()})
	}
	logger.Info().Str("session", session.ID).Bool("red", req.Red).Msg("team created")
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if req.State == nil {
		writeError(w, http.StatusBadRequest, "bad request: missing state")
		return
	}

	if err := session.Register(s.withMaze(session.ID, req.State)); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if req.State == nil {
		writeError(w, http.StatusBadRequest, "bad request: missing state")
		return
	}

	action, err := session.ChooseAction(req.Index, s.withMaze(session.ID, req.State))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ActionResponse{Action: action})
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Decisions())
}

// handleDeleteTeam writes the session's trace before forgetting it, so a
// failed write leaves the session in place for a retry.
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	logger := hlog.FromRequest(r)
	if s.traceDir != "" {
		writer, err := metrics.NewWriter(s.traceDir, session.ID, metrics.WithCompression(s.compress))
		if err == nil {
			err = writer.WriteDecisions(session.Decisions())
		}
		if err != nil {
			logger.Error().Err(err).Str("session", session.ID).Msg("failed to write decision trace")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logger.Info().Str("path", writer.DecisionsPath()).Msg("decision trace written")
	}

	if _, err := s.sessions.Remove(session.ID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.mazes.Release(session.ID)

	logger.Info().Str("session", session.ID).Int("turns", session.Turns()).Msg("team removed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*engine.Session, bool) {
	session, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return nil, false
	}
	return session, true
}

// withMaze swaps in the distancer shared by every state on the same
// walls, so distances computed on earlier turns are reused. The session
// holds the distancer until it is deleted.
func (s *Server) withMaze(id string, state *game.Snapshot) *game.Snapshot {
	return state.WithDistancer(s.mazes.Acquire(id, state.Walls()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNotRegistered), errors.Is(err, engine.ErrAlreadyRegistered):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
