package http

import (
	"net/http"

	"github.com/ligadomingo/roster-link/internal/audit"
	"github.com/ligadomingo/roster-link/internal/config"
	"github.com/ligadomingo/roster-link/internal/linker"
	"github.com/ligadomingo/roster-link/internal/metrics"
	"github.com/ligadomingo/roster-link/internal/roster"
)

func NewServer(store roster.RosterStore, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, lk *linker.Linker, recorder audit.Recorder) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Linker:         lk,
		Audit:          recorder,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/register", Chain(s.RegisterHandler(), paramsMiddleware))
	s.Router.Handle("/profiles", Chain(s.ListProfilesHandler(), paramsMiddleware))
	s.Router.Handle("/suggestions", Chain(s.ListSuggestionsHandler(), paramsMiddleware))
	s.Router.Handle("/issue-token", Chain(s.IssueTokenHandler(), paramsMiddleware))
	s.Router.Handle("/audit", Chain(s.ListAuditHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
