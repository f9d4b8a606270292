package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/djooberlee/microdevops-utils/internal/repo"
)

type Server struct {
	Logger   *zap.Logger
	Runs     repo.RunStore
	Registry *prometheus.Registry
}

func NewServer(l *zap.Logger, runs repo.RunStore, reg *prometheus.Registry) *Server {
	return &Server{Logger: l, Runs: runs, Registry: reg}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/results", s.handleLatestResults)
	r.Get("/api/results/{probe}", s.handleLastByProbe)
	r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handleLatestResults(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Runs.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("latest_results_error", zap.Error(err))
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func (s *Server) handleLastByProbe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "probe")
	res, err := s.Runs.LastByProbe(r.Context(), name)
	if err != nil {
		s.Logger.Warn("last_by_probe_error", zap.String("probe", name), zap.Error(err))
		http.Error(w, "lookup error", http.StatusInternalServerError)
		return
	}
	if res == nil {
		http.Error(w, "no runs recorded", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
