package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futi-app/phase-explorer/internal/config"
	"github.com/futi-app/phase-explorer/internal/database"
	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/futi-app/phase-explorer/internal/ingest"
	"github.com/futi-app/phase-explorer/internal/league"
	"github.com/futi-app/phase-explorer/internal/metrics"
	"github.com/futi-app/phase-explorer/internal/notifier"
	"github.com/futi-app/phase-explorer/internal/phases"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, n notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db)
	cfg := config.Config{DataDir: "../ingest/testdata/valid"}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	loader := ingest.New(store, metricsSvc)
	explorerSvc := explorer.New(store, metricsSvc)

	server := NewServer(store, explorerSvc, loader, n, metricsSvc, metricsHandler, cfg)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, teardown
}

// seedLeague puts a small three-team league into the store.
func seedLeague(t *testing.T, s *Server) {
	t.Helper()

	require.NoError(t, s.Store.UpsertTeams([]league.Team{
		{ID: "t1", Name: "Arsenal"},
		{ID: "t2", Name: "Brighton"},
		{ID: "t3", Name: "Chelsea"},
	}))
	require.NoError(t, s.Store.UpsertPhaseRecords([]league.PhaseRecord{
		{TeamID: "t1", Phase: "buildup", Metric: phases.MetricWon, RawValue: 10},
		{TeamID: "t2", Phase: "buildup", Metric: phases.MetricWon, RawValue: 50},
		{TeamID: "t3", Phase: "buildup", Metric: phases.MetricWon, RawValue: 90},
	}))
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestListTeamsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	req := httptest.NewRequest("GET", "/teams", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var teams []league.Team
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&teams))
	require.Len(t, teams, 3)
	assert.Equal(t, "Arsenal", teams[0].Name, "teams are sorted by name")
}

func TestListPhasesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req := httptest.NewRequest("GET", "/phases", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Phases []struct {
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"phases"`
		Categories []string `json:"categories"`
		Metrics    []string `json:"metrics"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Len(t, out.Phases, 19)
	assert.Len(t, out.Categories, 4)
	assert.Len(t, out.Metrics, 3)
	assert.Equal(t, "buildup", out.Phases[0].Name)
	assert.Equal(t, "Fast break", out.Phases[2].Label)
}

func TestViewHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	req := httptest.NewRequest("GET", "/view?mode=percentile", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var vm explorer.ViewModel
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&vm))
	assert.Equal(t, explorer.ModePercentile, vm.Request.Mode)
	assert.Len(t, vm.Groups, 19)
	require.Len(t, vm.Rows, 3)
	assert.Equal(t, "Arsenal", vm.Rows[0].TeamName)
}

func TestViewHandlerInvalidSelection(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	for _, target := range []string{
		"/view?team=unknown",
		"/view?category=Unknown",
		"/view?mode=fancy",
	} {
		req := httptest.NewRequest("GET", target, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "expected 400 for %s", target)
	}
}

func TestExportViewHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	req := httptest.NewRequest("GET", "/view/export", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="futi_phases.csv"`, rr.Header().Get("Content-Disposition"))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Team,")
	assert.Contains(t, string(body), "Arsenal")
}

func TestSnapshotHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	req := httptest.NewRequest("GET", "/view/snapshot?team=t2", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/x-msgpack", rr.Header().Get("Content-Type"))

	var vm explorer.ViewModel
	require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &vm))
	require.Len(t, vm.Rows, 1)
	assert.Equal(t, "Brighton", vm.Rows[0].TeamName)
}

func TestReloadHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	req := httptest.NewRequest("POST", "/reload", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var summary ingest.Summary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&summary))
	assert.Equal(t, 3, summary.Teams)
	assert.Equal(t, 27, summary.Records)
	assert.Equal(t, 1, summary.Skipped)

	require.Len(t, mockNotifier.SendLoadSummaryCalls, 1)

	count, err := server.Store.TeamCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReloadHandlerDryRun(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req := httptest.NewRequest("POST", "/reload?dry_run=true", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	count, err := server.Store.TeamCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count, "dry run must not write to the store")
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	req := httptest.NewRequest("POST", "/clear", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	count, err := server.Store.TeamCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMetricsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedLeague(t, server)

	// Build one view so a counter has a value.
	viewReq := httptest.NewRequest("GET", "/view", nil)
	server.ServeHTTP(httptest.NewRecorder(), viewReq)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "futi_views_built_total 1")
}
