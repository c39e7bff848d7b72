package http

import (
	"net/http"

	"github.com/ligadomingo/roster-link/internal/audit"
	"github.com/ligadomingo/roster-link/internal/config"
	"github.com/ligadomingo/roster-link/internal/linker"
	"github.com/ligadomingo/roster-link/internal/metrics"
	"github.com/ligadomingo/roster-link/internal/roster"
)

type Server struct {
	Store          roster.RosterStore
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Linker         *linker.Linker
	Audit          audit.Recorder
	Router         *http.ServeMux
}
