package http

import (
	"net/http"

	"github.com/futi-app/phase-explorer/internal/config"
	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/futi-app/phase-explorer/internal/ingest"
	"github.com/futi-app/phase-explorer/internal/league"
	"github.com/futi-app/phase-explorer/internal/metrics"
	"github.com/futi-app/phase-explorer/internal/notifier"
)

type Server struct {
	Store          league.LeagueStore
	Explorer       *explorer.Service
	Loader         *ingest.Loader
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
