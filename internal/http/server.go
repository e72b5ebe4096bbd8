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

func NewServer(store league.LeagueStore, explorerSvc *explorer.Service, loader *ingest.Loader, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Explorer:       explorerSvc,
		Loader:         loader,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
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
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("/phases", Chain(s.ListPhasesHandler(), paramsMiddleware))
	s.Router.Handle("/view", Chain(s.ViewHandler(), paramsMiddleware))
	s.Router.Handle("/view/export", Chain(s.ExportViewHandler(), paramsMiddleware))
	s.Router.Handle("/view/snapshot", Chain(s.SnapshotHandler(), paramsMiddleware))
	s.Router.Handle("/reload", Chain(s.ReloadHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
