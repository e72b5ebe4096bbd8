package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		LoadRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_load_runs_total",
			Help: "The total number of times the CSV loader has run.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_rows_skipped_total",
			Help: "The total number of malformed CSV rows skipped during loads.",
		}),
		ViewsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_views_built_total",
			Help: "The total number of view models built.",
		}),
		InvalidSelections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_invalid_selections_total",
			Help: "The total number of view requests rejected for an unknown team or category.",
		}),
		ExportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_exports_generated_total",
			Help: "The total number of CSV exports generated.",
		}),
		ViewBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "futi_view_build_duration_seconds",
			Help:    "The duration of individual view model builds.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "futi_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "futi_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.LoadRuns,
		s.RowsSkipped,
		s.ViewsBuilt,
		s.InvalidSelections,
		s.ExportsGenerated,
		s.ViewBuildDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLoadRuns() {
	s.LoadRuns.Inc()
}

func (s *Service) AddRowsSkipped(count int) {
	s.RowsSkipped.Add(float64(count))
}

func (s *Service) IncViewsBuilt() {
	s.ViewsBuilt.Inc()
}

func (s *Service) IncInvalidSelections() {
	s.InvalidSelections.Inc()
}

func (s *Service) IncExportsGenerated() {
	s.ExportsGenerated.Inc()
}

func (s *Service) ObserveViewBuildDuration(duration float64) {
	s.ViewBuildDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
