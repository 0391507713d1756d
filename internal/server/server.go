package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"skilltrail/internal/app"
	"skilltrail/internal/ratelimit"
	"skilltrail/internal/usertoken"
	"skilltrail/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App           *app.App
	TokenVerifier *usertoken.Verifier
	RedisAddr     string
	RedisPassword string
	// GenerateRateLimitPerMinute caps roadmap generations per owner.
	GenerateRateLimitPerMinute int
}

// Server exposes the roadmap HTTP API.
type Server struct {
	app             *app.App
	tokenVerifier   *usertoken.Verifier
	mux             *http.ServeMux
	generateLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, fmt.Errorf("app required")
	}
	if cfg.TokenVerifier == nil {
		return nil, fmt.Errorf("token verifier required")
	}
	limit := cfg.GenerateRateLimitPerMinute
	if limit <= 0 {
		limit = 5
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(
		cfg.RedisAddr, cfg.RedisPassword, "skilltrail:ratelimit:generate", limit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init generate limiter: %w", err)
	}
	s := &Server{
		app:             cfg.App,
		tokenVerifier:   cfg.TokenVerifier,
		mux:             http.NewServeMux(),
		generateLimiter: limiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/api/roadmaps", s.authenticated(s.handleRoadmaps))
	s.mux.Handle("/api/roadmaps/", s.authenticated(s.handleRoadmapByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ownerHandler receives the authenticated owner ID alongside the request.
type ownerHandler func(http.ResponseWriter, *http.Request, string)

func (s *Server) authenticated(next ownerHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.audit(r, "roadmaps.authorize", "fail", "reason", "missing_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ownerID, err := s.tokenVerifier.VerifySubject(token)
		if err != nil {
			s.audit(r, "roadmaps.authorize", "fail", "reason", "invalid_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, ownerID)
	})
}

// handleRoadmaps serves the collection route: list.
func (s *Server) handleRoadmaps(w http.ResponseWriter, r *http.Request, ownerID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	list, err := s.app.List(ownerID)
	if err != nil {
		slog.Error("list roadmaps", "owner_id", ownerID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list roadmaps")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleRoadmapByID dispatches /api/roadmaps/{rest}: generate, toggle, delete.
func (s *Server) handleRoadmapByID(w http.ResponseWriter, r *http.Request, ownerID string) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/roadmaps/"), "/")
	if rest == "generate" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleGenerate(w, r, ownerID)
		return
	}
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch {
	case action == "" && r.Method == http.MethodDelete:
		s.handleDelete(w, r, ownerID, id)
	case action == "toggle" && r.Method == http.MethodPost:
		s.handleToggle(w, r, ownerID, id)
	default:
		methodNotAllowed(w)
	}
}

type generateRequest struct {
	Title string `json:"title"`
	// Proficiency arrives as a string, a number, or not at all.
	Proficiency any `json:"proficiency"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, ownerID string) {
	if !s.generateLimiter.Allow(ownerID) {
		s.audit(r, "roadmaps.generate", "rate_limited", "owner_id", ownerID)
		writeError(w, http.StatusTooManyRequests, "too many generation requests")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rm, err := s.app.Generate(r.Context(), ownerID, req.Title, proficiencyString(req.Proficiency))
	if err != nil {
		if errors.Is(err, app.ErrUpstreamUnavailable) {
			s.audit(r, "roadmaps.generate", "fail", "owner_id", ownerID, "reason", "upstream")
			writeError(w, http.StatusBadGateway, "AI service error")
			return
		}
		slog.Error("generate roadmap", "owner_id", ownerID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to generate roadmap")
		return
	}
	s.audit(r, "roadmaps.generate", "success", "owner_id", ownerID, "roadmap_id", rm.ID)
	writeJSON(w, http.StatusCreated, rm)
}

type toggleRequest struct {
	StepIndex *int `json:"stepIndex"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request, ownerID, id string) {
	var req toggleRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.StepIndex == nil {
		writeError(w, http.StatusBadRequest, "stepIndex required")
		return
	}
	rm, err := s.app.ToggleStep(r.Context(), ownerID, id, *req.StepIndex)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrRoadmapNotFound):
			writeError(w, http.StatusNotFound, "roadmap not found")
		case errors.Is(err, app.ErrInvalidStepIndex):
			writeError(w, http.StatusBadRequest, "step index out of range")
		default:
			slog.Error("toggle step", "owner_id", ownerID, "roadmap_id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to toggle step")
		}
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, ownerID, id string) {
	if err := s.app.Delete(r.Context(), ownerID, id); err != nil {
		slog.Error("delete roadmap", "owner_id", ownerID, "roadmap_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete roadmap")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "roadmap deleted"})
}

// proficiencyString flattens the loosely typed proficiency input.
func proficiencyString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		return ""
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", util.ClientIP(r),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}
