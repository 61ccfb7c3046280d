package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/formul8/sourcing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is how long the server waits for in-flight requests on
// shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves the sourcing agent's JSON API.
type Server struct {
	server *http.Server
	ln     net.Listener

	Addr   string
	Logger *slog.Logger

	KnowledgeService sourcing.KnowledgeService
	SupplierService  sourcing.SupplierService
	SnapshotService  sourcing.SnapshotService
	Advisor          sourcing.Advisor

	// Registry supplies the source metrics endpoint. May be nil if no
	// seed registry was loaded.
	Registry *sourcing.Registry

	// StartedAt is reported by the agent status endpoint.
	StartedAt time.Time

	metrics *Metrics
}

// NewServer creates a new API server.
func NewServer() *Server {
	s := &Server{
		Logger:    slog.Default(),
		StartedAt: time.Now().UTC(),
		metrics:   NewMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/supplier-categories", s.handleSupplierCategories)
	mux.HandleFunc("GET /api/quality-standards", s.handleQualityStandards)
	mux.HandleFunc("GET /api/sourcing-strategies", s.handleSourcingStrategies)
	mux.HandleFunc("GET /api/compliance-requirements", s.handleComplianceRequirements)
	mux.HandleFunc("GET /api/agent-status", s.handleAgentStatus)
	mux.HandleFunc("GET /api/source-metrics", s.handleSourceMetrics)
	mux.HandleFunc("GET /api/suppliers", s.handleSuppliers)
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.server = &http.Server{
		Handler: s.instrument(mux),
	}

	return s
}

// Open starts listening on s.Addr and serves requests until Close.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// URL returns the base URL the server is listening on. Useful in tests
// where the port is assigned by the OS.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// instrument wraps the mux with request logging and Prometheus metrics.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.metrics.ObserveRequest(r.Method, r.URL.Path, rw.status, duration)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", duration,
		)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleSupplierCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var categories []sourcing.SupplierCategory
	var err error
	if query != "" {
		categories, err = s.KnowledgeService.SearchCategories(r.Context(), query)
	} else {
		categories, err = s.KnowledgeService.SupplierCategories(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, map[string]any{"categories": categories, "count": len(categories)})
}

func (s *Server) handleQualityStandards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var standards []sourcing.QualityStandard
	var err error
	if query != "" {
		standards, err = s.KnowledgeService.SearchStandards(r.Context(), query)
	} else {
		standards, err = s.KnowledgeService.QualityStandards(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, map[string]any{"standards": standards, "count": len(standards)})
}

func (s *Server) handleSourcingStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := s.KnowledgeService.SourcingStrategies(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, map[string]any{"strategies": strategies, "count": len(strategies)})
}

func (s *Server) handleComplianceRequirements(w http.ResponseWriter, r *http.Request) {
	requirements, err := s.KnowledgeService.ComplianceRequirements(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, map[string]any{"requirements": requirements, "count": len(requirements)})
}

func (s *Server) handleAgentStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := s.KnowledgeService.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	suppliers, err := s.SupplierService.FindSuppliers(r.Context(), sourcing.SupplierFilter{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, sourcing.AgentStatus{
		AgentName:    "sourcing",
		Status:       "operational",
		Knowledge:    *summary,
		Suppliers:    len(suppliers),
		LastUpdated:  s.StartedAt,
		Capabilities: sourcing.AgentCapabilities(),
	})
}

func (s *Server) handleSourceMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Registry == nil {
		s.writeError(w, r, sourcing.Errorf(sourcing.ENOTFOUND, "no seed registry loaded"))
		return
	}

	s.writeJSON(w, s.Registry.Metrics())
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	filter, err := supplierFilterFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	suppliers, err := s.SupplierService.FindSuppliers(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, map[string]any{"suppliers": suppliers, "count": len(suppliers)})
}

func supplierFilterFromQuery(r *http.Request) (sourcing.SupplierFilter, error) {
	var filter sourcing.SupplierFilter
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("state"); v != "" {
		filter.State = &v
	}
	if v := q.Get("preferred"); v != "" {
		preferred, err := strconv.ParseBool(v)
		if err != nil {
			return filter, sourcing.Errorf(sourcing.EINVALID, "invalid preferred value %q", v)
		}
		filter.Preferred = &preferred
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, sourcing.Errorf(sourcing.EINVALID, "invalid limit value %q", v)
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, sourcing.Errorf(sourcing.EINVALID, "invalid offset value %q", v)
		}
		filter.Offset = offset
	}

	return filter, nil
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.Advisor == nil {
		s.writeError(w, r, sourcing.Errorf(sourcing.EUNAVAILABLE, "advisor not configured"))
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, sourcing.Errorf(sourcing.EINVALID, "invalid request body"))
		return
	}
	if req.Question == "" {
		s.writeError(w, r, sourcing.Errorf(sourcing.EINVALID, "question required"))
		return
	}

	answer, err := s.Advisor.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, answer)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps application error codes to HTTP status codes and writes
// a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := sourcing.ErrorCode(err)
	status := errorStatus(code)

	if status >= http.StatusInternalServerError {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": sourcing.ErrorMessage(err)})
}

func errorStatus(code string) int {
	switch code {
	case sourcing.EINVALID:
		return http.StatusBadRequest
	case sourcing.ENOTFOUND:
		return http.StatusNotFound
	case sourcing.ECONFLICT:
		return http.StatusConflict
	case sourcing.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
