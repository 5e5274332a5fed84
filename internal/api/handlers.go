package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"routeviz/internal/logging"
	"routeviz/internal/store"
	"routeviz/internal/viz"
)

// VehiclesIndexHandler handles GET /v1/vehicles
func (s *Server) VehiclesIndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	routes, err := s.Store.Routes(r.Context())
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError, "List vehicles failed", err.Error())
		return
	}
	items := viz.VehicleOptions(routes, s.Opts)
	def := ""
	if len(items) > 0 {
		def = items[0].Value
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "default": def})
}

// VehicleByIDHandler handles GET /v1/vehicles/{id}/figure and /v1/vehicles/{id}/geometry
func (s *Server) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	rest := strings.TrimPrefix(path, "/v1/vehicles/")
	if rest == path || rest == "" {
		writeProblem(w, r, http.StatusNotFound, "Not Found", "missing vehicle")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	view := "figure"
	if len(parts) > 1 && parts[1] != "" {
		view = parts[1]
	}
	switch view {
	case "figure":
		fig, err := s.Renderer.Figure(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, r, "Figure failed", err)
			return
		}
		writeJSON(w, http.StatusOK, fig)
	case "geometry":
		g, err := s.Store.VehicleGeometry(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, r, "Geometry failed", err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	case "route":
		rt, err := s.Store.Route(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, r, "Route failed", err)
			return
		}
		writeJSON(w, http.StatusOK, rt)
	default:
		writeProblem(w, r, http.StatusNotFound, "Not Found", "unknown view "+view)
	}
}

// GeometryHandler handles GET /v1/geometry (all vehicles)
func (s *Server) GeometryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	g, err := s.Store.Geometry(r.Context())
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError, "Geometry failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// SummaryHandler handles GET /v1/summary
func (s *Server) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := s.Store.Summary(r.Context())
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError, "Summary failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "dataset": s.Store.Info()})
}

// LocationsHandler handles GET /v1/locations
func (s *Server) LocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := s.Store.Locations(r.Context())
	if err != nil {
		writeProblem(w, r, http.StatusInternalServerError, "List locations failed", err.Error())
		return
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		out := items[:0:0]
		for _, l := range items {
			if strings.EqualFold(string(l.Kind), kind) {
				out = append(out, l)
			}
		}
		items = out
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeProblem(w, r, http.StatusServiceUnavailable, "Not Ready", "dataset not loaded")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		writeProblem(w, r, http.StatusServiceUnavailable, "Not Ready", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "dataset": s.Store.Info()})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, title string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeProblem(w, r, http.StatusNotFound, "Vehicle not found", err.Error())
		return
	}
	s.Log.Error(title, zap.String(logging.FieldPath, r.URL.Path), zap.Error(err))
	writeProblem(w, r, http.StatusInternalServerError, title, err.Error())
}
