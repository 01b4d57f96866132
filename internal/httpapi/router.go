// Package httpapi exposes the recording/playback engine over HTTP: a JSON
// command endpoint for submitting recording.Command intents, a status
// endpoint for polling engine state, a WebSocket stream broadcasting frame
// results, and a metrics endpoint for scraping.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arenic/internal/arenaid"
	"arenic/internal/recording"
	"arenic/internal/telemetry"
	"arenic/internal/timeline"
)

// EngineHandle is the narrow slice of *engine.Engine the router depends on,
// kept as an interface so tests can substitute a fake without constructing
// a full engine.
type EngineHandle interface {
	Enqueue(cmd recording.Command)
	Machine() *recording.Machine
}

// RouterConfig carries every dependency NewRouter needs. Nil optional
// fields get a default; Engine and Hub are required.
type RouterConfig struct {
	Engine EngineHandle
	Hub    *Hub
	Logger telemetry.Logger

	Metrics         *Metrics
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig
	CORSOrigins     []string
	DisableLogging  bool
}

// NewRouter builds the chi mux. It has no side effects beyond starting a
// rate limiter's cleanup goroutine (unless one was supplied), so it is
// safe to exercise with httptest.NewServer in tests.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting runs before CORS so rejected requests never pay the
	// cost of the CORS preflight machinery.
	limiter := cfg.RateLimiter
	if limiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		limiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(limiter.Middleware)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	h := &handlers{engine: cfg.Engine, hub: cfg.Hub, logger: cfg.Logger, metrics: cfg.Metrics}

	r.Route("/api", func(r chi.Router) {
		r.Post("/command", h.handleCommand)
		r.Get("/status", h.handleStatus)
	})
	if cfg.Hub != nil {
		r.Get("/stream", cfg.Hub.ServeStream)
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type handlers struct {
	engine  EngineHandle
	hub     *Hub
	logger  telemetry.Logger
	metrics *Metrics
}

// CommandSchema is the wire shape for POST /api/command, mapping directly
// onto recording.Command. It is exported so the schema generator can
// reflect it into a JSON Schema document.
type CommandSchema struct {
	Type       recording.CommandType `json:"type" jsonschema:"required"`
	Entity     string                `json:"entity" jsonschema:"required,description=Character entity id targeted by this command."`
	Arena      uint8                 `json:"arena" jsonschema:"minimum=0,maximum=8,description=Arena index, 0 through 8."`
	StopReason *recording.StopReason `json:"stopReason,omitempty"`
}

func (h *handlers) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandSchema
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Entity == "" {
		writeError(w, http.StatusBadRequest, "entity is required")
		return
	}
	arena := arenaid.ID(req.Arena)
	if !arena.Valid() {
		writeError(w, http.StatusBadRequest, "arena out of range")
		return
	}

	cmd := recording.Command{
		Type:   req.Type,
		Entity: timeline.EntityID(req.Entity),
		Arena:  arena,
	}
	if req.StopReason != nil {
		cmd.StopReason = *req.StopReason
	}

	h.engine.Enqueue(cmd)
	if h.logger != nil {
		h.logger.Printf("httpapi: enqueued command %s for %s in %s", cmd.Type, cmd.Entity, arena)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	mode := h.engine.Machine().Mode()
	entity, hasTarget := h.engine.Machine().Target()

	resp := map[string]any{
		"mode": mode.String(),
		"time": time.Now().UTC(),
	}
	if hasTarget {
		resp["activeEntity"] = string(entity)
		resp["activeArena"] = h.engine.Machine().Arena()
	}
	if h.hub != nil {
		resp["streamClients"] = h.hub.ClientCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
