package explorer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/futi-app/phase-explorer/internal/league"
	"github.com/futi-app/phase-explorer/internal/metrics"
	"github.com/futi-app/phase-explorer/internal/phases"
)

// Service builds view models from the league store. Each call is an
// independent, stateless transformation; nothing is mutated between requests.
type Service struct {
	store   league.LeagueStore
	metrics metrics.Metrics
}

// New creates a new Service.
func New(store league.LeagueStore, metrics metrics.Metrics) *Service {
	return &Service{
		store:   store,
		metrics: metrics,
	}
}

// View builds the grouped table for the given request: filter the teams,
// pick raw or percentile values, and lay the visible phases out as ordered
// column groups with alternating banding.
func (s *Service) View(req ViewRequest) (*ViewModel, error) {
	start := time.Now()

	if req.Mode != ModeRaw && req.Mode != ModePercentile {
		s.metrics.IncInvalidSelections()
		return nil, fmt.Errorf("%w: unknown display mode %q", ErrInvalidSelection, req.Mode)
	}

	teams, err := s.store.GetAllTeams()
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	if err := s.validateFilters(req, teams); err != nil {
		s.metrics.IncInvalidSelections()
		return nil, err
	}

	records, err := s.store.GetAllPhaseRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to get phase records: %w", err)
	}

	// Normalize before anything else so that percentile ranking and display
	// operate on the same unit: counts become per-game rates, Won and Share
	// are already percentages.
	values := normalize(records)

	// The index is built over the full team population, before filtering.
	index := buildPercentileIndex(values)

	visible := visiblePhases(req.Category)
	groups := buildGroups(visible)
	cols := flattenColumns(groups)

	rows := s.buildRows(req, teams, values, index, cols)

	vm := &ViewModel{
		Request: req,
		Groups:  groups,
		Rows:    rows,
	}

	s.metrics.IncViewsBuilt()
	s.metrics.ObserveViewBuildDuration(time.Since(start).Seconds())
	log.Debug("View built", "team", req.Team, "category", req.Category, "mode", req.Mode, "rows", len(rows), "columns", len(cols))
	return vm, nil
}

// validateFilters rejects unknown team and category filters so the caller
// can distinguish bad input from a legitimately empty result.
func (s *Service) validateFilters(req ViewRequest, teams []league.Team) error {
	if req.Team != AllTeams {
		known := false
		for _, t := range teams {
			if t.ID == req.Team {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: unknown team %q", ErrInvalidSelection, req.Team)
		}
	}

	if req.Category != AllCategories && !phases.IsKnownCategory(phases.Category(req.Category)) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSelection, req.Category)
	}
	return nil
}

// normalize converts raw records to display units keyed by team.
func normalize(records []league.PhaseRecord) map[string]map[metricKey]float64 {
	values := make(map[string]map[metricKey]float64)
	for _, rec := range records {
		teamValues, ok := values[rec.TeamID]
		if !ok {
			teamValues = make(map[metricKey]float64)
			values[rec.TeamID] = teamValues
		}

		v := rec.RawValue
		if rec.Metric == phases.MetricCount {
			v = rec.RawValue / phases.GamesPlayed
		}
		teamValues[metricKey{phase: rec.Phase, metric: rec.Metric}] = v
	}
	return values
}

func visiblePhases(category string) []phases.Phase {
	if category == AllCategories {
		return phases.Catalogue
	}
	return phases.ForCategory(phases.Category(category))
}

func buildGroups(visible []phases.Phase) []ColumnGroup {
	groups := make([]ColumnGroup, 0, len(visible))
	for i, p := range visible {
		group := ColumnGroup{
			Phase: p.Name,
			Label: phases.DisplayName(p.Name),
			Band:  i % 2,
		}
		for _, m := range phases.Metrics {
			group.Columns = append(group.Columns, Column{
				Phase:  p.Name,
				Metric: m,
				Label:  phases.MetricDisplayName(m),
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func flattenColumns(groups []ColumnGroup) []Column {
	var cols []Column
	for _, g := range groups {
		cols = append(cols, g.Columns...)
	}
	return cols
}

// buildRows emits one row per team passing the filter, sorted by team name.
func (s *Service) buildRows(req ViewRequest, teams []league.Team, values map[string]map[metricKey]float64, index percentileIndex, cols []Column) []ViewRow {
	var rows []ViewRow
	for _, team := range teams {
		if req.Team != AllTeams && team.ID != req.Team {
			continue
		}

		row := ViewRow{
			TeamID:   team.ID,
			TeamName: team.Name,
			LogoRef:  team.LogoRef,
			Cells:    make([]Cell, 0, len(cols)),
		}
		teamValues := values[team.ID]

		for _, col := range cols {
			v, ok := teamValues[metricKey{phase: col.Phase, metric: col.Metric}]
			if !ok {
				row.Cells = append(row.Cells, Cell{})
				continue
			}

			if req.Mode == ModePercentile {
				v = math.Round(index.rank(col.Phase, col.Metric, v))
			}
			row.Cells = append(row.Cells, Cell{Value: v, Valid: true})
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TeamName < rows[j].TeamName
	})
	return rows
}
