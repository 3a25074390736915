// Package api provides REST API access to tracked vessel state.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ais_relay/internal/storage"
)

// VesselStore is the vessel state lookup used by the server. Implemented
// by storage.PostgresDB.
type VesselStore interface {
	GetVessel(ctx context.Context, mmsi uint32) (*storage.Vessel, error)
	ListVessels(ctx context.Context, limit int) ([]storage.Vessel, error)
}

// TrackStore is the position history lookup used by the server.
// Implemented by storage.ClickHouseDB.
type TrackStore interface {
	Track(ctx context.Context, mmsi uint32, limit int) ([]storage.PositionRow, error)
}

// FleetServer provides REST API access to vessel state and tracks.
type FleetServer struct {
	vessels     VesselStore
	tracks      TrackStore // nil when no ClickHouse sink is configured
	port        int
	authEnabled bool
	apiKeys     map[string]bool // Simple API key auth (when enabled).
}

// Config holds configuration for the fleet API server.
type Config struct {
	Port        int
	AuthEnabled bool
	APIKeys     []string // List of valid API keys.
}

// NewFleetServer creates a new fleet API server. tracks may be nil.
func NewFleetServer(vessels VesselStore, tracks TrackStore, cfg Config) *FleetServer {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &FleetServer{
		vessels:     vessels,
		tracks:      tracks,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Run starts the HTTP server.
func (s *FleetServer) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for browser access.
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", s.Router())
	})

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("Fleet API starting at http://localhost%s", addr)
	if s.authEnabled {
		log.Printf("Authentication: ENABLED (API key required)")
	} else {
		log.Printf("Authentication: DISABLED (open access)")
	}

	return http.ListenAndServe(addr, r)
}

// Router returns the configured chi router for embedding in other servers.
func (s *FleetServer) Router() chi.Router {
	r := chi.NewRouter()

	// Optional authentication.
	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/vessels", s.handleListVessels)
	r.Get("/vessels/{mmsi}", s.handleGetVessel)
	r.Get("/vessels/{mmsi}/track", s.handleGetTrack)

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *FleetServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check X-API-Key header first.
		apiKey := r.Header.Get("X-API-Key")

		// Fall back to Authorization: Bearer <key>.
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		// Fall back to query parameter (for simple testing).
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *FleetServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *FleetServer) handleListVessels(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, http.StatusBadRequest, "limit must be 1-1000")
			return
		}
		limit = n
	}

	vessels, err := s.vessels.ListVessels(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vessels == nil {
		vessels = []storage.Vessel{}
	}
	writeJSON(w, http.StatusOK, vessels)
}

func (s *FleetServer) handleGetVessel(w http.ResponseWriter, r *http.Request) {
	mmsi, ok := mmsiParam(w, r)
	if !ok {
		return
	}

	vessel, err := s.vessels.GetVessel(r.Context(), mmsi)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vessel == nil {
		writeError(w, http.StatusNotFound, "Vessel not seen")
		return
	}
	writeJSON(w, http.StatusOK, vessel)
}

func (s *FleetServer) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	if s.tracks == nil {
		writeError(w, http.StatusNotImplemented, "No position history sink configured")
		return
	}
	mmsi, ok := mmsiParam(w, r)
	if !ok {
		return
	}

	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 10000 {
			writeError(w, http.StatusBadRequest, "limit must be 1-10000")
			return
		}
		limit = n
	}

	track, err := s.tracks.Track(r.Context(), mmsi, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if track == nil {
		track = []storage.PositionRow{}
	}
	writeJSON(w, http.StatusOK, track)
}

// mmsiParam parses the {mmsi} URL parameter, writing the error response
// itself on failure.
func mmsiParam(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	raw := chi.URLParam(r, "mmsi")
	mmsi, err := strconv.ParseUint(raw, 10, 30)
	if err != nil || mmsi == 0 {
		writeError(w, http.StatusBadRequest, "mmsi must be a 30-bit identifier")
		return 0, false
	}
	return uint32(mmsi), true
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
