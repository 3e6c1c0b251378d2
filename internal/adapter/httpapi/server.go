// Package httpapi exposes the normalized collections to the presentation
// layer, alongside the service's health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/pipeline"
)

// SnapshotProvider is the pipeline surface the API needs.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*pipeline.Snapshot, error)
	Invalidate()
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard data API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	provider   SnapshotProvider
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, provider SnapshotProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/facilities", s.handleFacilities)
	mux.HandleFunc("GET /api/facilities/summary", s.handleSummary)
	mux.HandleFunc("GET /api/facilities/rollup", s.handleRollup)
	mux.HandleFunc("GET /api/provinces", s.handleProvinces)
	mux.HandleFunc("GET /api/types", s.handleTypes)
	mux.HandleFunc("GET /api/registry", s.handleRegistry)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// facilityView decorates a facility with the labels of the requested scheme.
type facilityView struct {
	domain.Facility
	Status       string `json:"status"`
	StatusDetail string `json:"status_detail,omitempty"`
	StatusColor  string `json:"status_color"`
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	snap, filter, scheme, ok := s.selection(w, r)
	if !ok {
		return
	}

	selected := filter.Apply(snap.Facilities)
	views := make([]facilityView, 0, len(selected))
	for _, facility := range selected {
		label := domain.LabelFor(scheme, facility.Tier)
		views = append(views, facilityView{
			Facility:     facility,
			Status:       label.Label,
			StatusDetail: label.Detail,
			StatusColor:  label.Color,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":       len(views),
		"scheme":      scheme,
		"facilities":  views,
		"diagnostics": snap.Diagnostics,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, filter, _, ok := s.selection(w, r)
	if !ok {
		return
	}

	selected := filter.Apply(snap.Facilities)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     domain.Summarize(selected),
		"map_view":    domain.MapViewFor(selected, filter.Province != ""),
		"diagnostics": snap.Diagnostics,
	})
}

func (s *Server) handleRollup(w http.ResponseWriter, r *http.Request) {
	snap, filter, scheme, ok := s.selection(w, r)
	if !ok {
		return
	}

	selected := filter.Apply(snap.Facilities)
	writeJSON(w, http.StatusOK, map[string]any{
		"scheme":    scheme,
		"by_type":   domain.RollupByType(selected),
		"by_status": domain.CountByStatus(selected, scheme),
	})
}

func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	snap, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"provinces": domain.Provinces(snap.Facilities)})
}

// handleTypes lists the type filter options, cascading on the province
// selection when one is given.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	snap, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	selected := domain.Filter{Province: r.URL.Query().Get("province")}.Apply(snap.Facilities)
	writeJSON(w, http.StatusOK, map[string]any{"types": domain.FacilityTypes(selected)})
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	snap, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	columns := snap.Registry.DisplayColumns()
	rows := make([]map[string]string, 0, len(snap.Registry.Rows))
	for _, record := range snap.Registry.Rows {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			if col == domain.LastAuditColumn {
				row[col] = record.LastAudit.Format("2006-01-02")
				continue
			}
			if v, present := record.Fields[col]; present {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"columns":     columns,
		"rows":        rows,
		"diagnostics": snap.Diagnostics,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.provider.Invalidate()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "invalidated"})
}

// selection resolves the snapshot, filter, and scheme shared by the data
// handlers. On failure it has already written the response.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (*pipeline.Snapshot, domain.Filter, domain.Scheme, bool) {
	scheme, err := parseScheme(r.URL.Query().Get("scheme"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, domain.Filter{}, "", false
	}

	snap, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.serverError(w, err)
		return nil, domain.Filter{}, "", false
	}

	filter := domain.Filter{
		Province: r.URL.Query().Get("province"),
		Types:    r.URL.Query()["type"],
	}
	return snap, filter, scheme, true
}

func parseScheme(raw string) (domain.Scheme, error) {
	switch domain.Scheme(raw) {
	case "":
		return domain.SchemeLogistics, nil
	case domain.SchemeLogistics:
		return domain.SchemeLogistics, nil
	case domain.SchemeHealth:
		return domain.SchemeHealth, nil
	default:
		return "", fmt.Errorf("unknown scheme %q (want logistics or health)", raw)
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("snapshot unavailable", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
