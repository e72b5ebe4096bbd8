package explorer_test

import (
	"testing"

	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/futi-app/phase-explorer/internal/league"
	"github.com/futi-app/phase-explorer/internal/metrics"
	"github.com/futi-app/phase-explorer/internal/phases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService wires an explorer service over a mock store with three teams
// and a small fixed data set.
func setupService(t *testing.T) (*explorer.Service, *metrics.Mock) {
	t.Helper()

	store := league.NewMock()
	store.GetAllTeamsFunc = func() ([]league.Team, error) {
		return []league.Team{
			{ID: "t1", Name: "Arsenal", LogoRef: "arsenal.png"},
			{ID: "t2", Name: "Brighton", LogoRef: "brighton.png"},
			{ID: "t3", Name: "Chelsea", LogoRef: "chelsea.png"},
		}, nil
	}
	store.GetAllPhaseRecordsFunc = func() ([]league.PhaseRecord, error) {
		return []league.PhaseRecord{
			{TeamID: "t1", Phase: "buildup", Metric: phases.MetricCount, RawValue: 340},
			{TeamID: "t2", Phase: "buildup", Metric: phases.MetricCount, RawValue: 306},
			{TeamID: "t3", Phase: "buildup", Metric: phases.MetricCount, RawValue: 374},
			{TeamID: "t1", Phase: "buildup", Metric: phases.MetricWon, RawValue: 10},
			{TeamID: "t2", Phase: "buildup", Metric: phases.MetricWon, RawValue: 50},
			{TeamID: "t3", Phase: "buildup", Metric: phases.MetricWon, RawValue: 90},
			{TeamID: "t1", Phase: "loose_ball", Metric: phases.MetricShare, RawValue: 12.5},
			{TeamID: "t2", Phase: "loose_ball", Metric: phases.MetricShare, RawValue: 9.1},
		}, nil
	}

	metricsSvc := metrics.NewMock()
	return explorer.New(store, metricsSvc), metricsSvc
}

// cellFor finds the cell of a (phase, metric) column in a row.
func cellFor(t *testing.T, vm *explorer.ViewModel, row explorer.ViewRow, phase string, metric phases.Metric) explorer.Cell {
	t.Helper()
	for i, col := range vm.Columns() {
		if col.Phase == phase && col.Metric == metric {
			return row.Cells[i]
		}
	}
	t.Fatalf("column %s/%s not found", phase, metric)
	return explorer.Cell{}
}

func TestViewFullTable(t *testing.T) {
	svc, metricsSvc := setupService(t)

	vm, err := svc.View(explorer.DefaultRequest())
	require.NoError(t, err)

	assert.Len(t, vm.Rows, 3, "one row per team")
	assert.Len(t, vm.Groups, 19, "one group per catalogue phase")
	assert.Len(t, vm.Columns(), 19*3)
	for _, row := range vm.Rows {
		assert.Len(t, row.Cells, 19*3)
	}

	// Rows are sorted by team name.
	assert.Equal(t, "Arsenal", vm.Rows[0].TeamName)
	assert.Equal(t, "Brighton", vm.Rows[1].TeamName)
	assert.Equal(t, "Chelsea", vm.Rows[2].TeamName)

	// Banding alternates per phase group in phase order.
	for i, g := range vm.Groups {
		assert.Equal(t, i%2, g.Band)
	}

	assert.Equal(t, 1, metricsSvc.ViewsBuiltCalls)
	assert.Len(t, metricsSvc.ViewBuildObservations, 1)
}

func TestViewCountIsPerGameRate(t *testing.T) {
	svc, _ := setupService(t)

	vm, err := svc.View(explorer.DefaultRequest())
	require.NoError(t, err)

	cell := cellFor(t, vm, vm.Rows[0], "buildup", phases.MetricCount)
	require.True(t, cell.Valid)
	assert.InDelta(t, 10.0, cell.Value, 1e-9, "raw count 340 over 34 games")
}

func TestViewMissingCellsAreInvalid(t *testing.T) {
	svc, _ := setupService(t)

	vm, err := svc.View(explorer.DefaultRequest())
	require.NoError(t, err)

	// Chelsea has no loose_ball share record.
	cell := cellFor(t, vm, vm.Rows[2], "loose_ball", phases.MetricShare)
	assert.False(t, cell.Valid)
}

func TestViewPercentileMode(t *testing.T) {
	svc, _ := setupService(t)

	vm, err := svc.View(explorer.DefaultRequest().WithMode(explorer.ModePercentile))
	require.NoError(t, err)

	// Won values 10/50/90 rank to 0/50/100 under linear-rank scaling.
	assert.Equal(t, 0.0, cellFor(t, vm, vm.Rows[0], "buildup", phases.MetricWon).Value)
	assert.Equal(t, 50.0, cellFor(t, vm, vm.Rows[1], "buildup", phases.MetricWon).Value)
	assert.Equal(t, 100.0, cellFor(t, vm, vm.Rows[2], "buildup", phases.MetricWon).Value)
}

func TestViewTeamFilterKeepsPercentileDenominator(t *testing.T) {
	svc, _ := setupService(t)

	req := explorer.DefaultRequest().WithMode(explorer.ModePercentile).WithTeam("t2")
	vm, err := svc.View(req)
	require.NoError(t, err)

	require.Len(t, vm.Rows, 1, "single-team filter yields exactly one row")
	assert.Equal(t, "Brighton", vm.Rows[0].TeamName)

	// Brighton still ranks against the full league, not against itself.
	assert.Equal(t, 50.0, cellFor(t, vm, vm.Rows[0], "buildup", phases.MetricWon).Value)
}

func TestViewCategoryFilter(t *testing.T) {
	svc, _ := setupService(t)

	vm, err := svc.View(explorer.DefaultRequest().WithCategory(string(phases.CategoryContested)))
	require.NoError(t, err)

	require.Len(t, vm.Groups, 2)
	assert.Equal(t, "high_ball", vm.Groups[0].Phase)
	assert.Equal(t, "loose_ball", vm.Groups[1].Phase)
	assert.Len(t, vm.Columns(), 6)
	assert.Len(t, vm.Rows, 3, "category filter does not drop teams")
}

func TestViewInvalidSelections(t *testing.T) {
	svc, metricsSvc := setupService(t)

	_, err := svc.View(explorer.DefaultRequest().WithTeam("nope"))
	assert.ErrorIs(t, err, explorer.ErrInvalidSelection)

	_, err = svc.View(explorer.DefaultRequest().WithCategory("Attacking set piece"))
	assert.ErrorIs(t, err, explorer.ErrInvalidSelection)

	_, err = svc.View(explorer.DefaultRequest().WithMode("fancy"))
	assert.ErrorIs(t, err, explorer.ErrInvalidSelection)

	assert.Equal(t, 3, metricsSvc.InvalidSelectionCalls)
}

func TestViewModeToggleRoundTrip(t *testing.T) {
	svc, _ := setupService(t)

	before, err := svc.View(explorer.DefaultRequest())
	require.NoError(t, err)

	_, err = svc.View(explorer.DefaultRequest().WithMode(explorer.ModePercentile))
	require.NoError(t, err)

	after, err := svc.View(explorer.DefaultRequest())
	require.NoError(t, err)

	// Toggling raw -> percentile -> raw reproduces the raw values exactly;
	// each build starts from the immutable source tables.
	assert.Equal(t, before, after)
}
