package explorer

import "github.com/futi-app/phase-explorer/internal/phases"

// DisplayMode selects whether a view shows raw metric values or league-wide
// percentiles. The two modes are mutually exclusive within one view.
type DisplayMode string

const (
	ModeRaw        DisplayMode = "raw"
	ModePercentile DisplayMode = "percentile"
)

// Sentinel filter values meaning "no filter".
const (
	AllTeams      = "all"
	AllCategories = "all"
)

// ViewRequest carries the full interaction state for one view build. It is
// passed explicitly through the pipeline; there is no ambient filter state.
type ViewRequest struct {
	Team     string      `json:"team"`
	Category string      `json:"category"`
	Mode     DisplayMode `json:"mode"`
}

// DefaultRequest is the unfiltered raw-value view.
func DefaultRequest() ViewRequest {
	return ViewRequest{Team: AllTeams, Category: AllCategories, Mode: ModeRaw}
}

// WithTeam returns a copy of the request with the team filter applied.
func (r ViewRequest) WithTeam(teamID string) ViewRequest {
	r.Team = teamID
	return r
}

// WithCategory returns a copy of the request with the category filter applied.
func (r ViewRequest) WithCategory(category string) ViewRequest {
	r.Category = category
	return r
}

// WithMode returns a copy of the request with the display mode applied.
func (r ViewRequest) WithMode(mode DisplayMode) ViewRequest {
	r.Mode = mode
	return r
}

// Cell is one value in a view row. Valid is false when the source data has
// no record for the (team, phase, metric); such cells render as "-".
type Cell struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Column is one leaf column of the view: a (phase, metric) pair with its
// display label.
type Column struct {
	Phase  string        `json:"phase"`
	Metric phases.Metric `json:"metric"`
	Label  string        `json:"label"`
}

// ColumnGroup is a phase with its three metric child columns. Band alternates
// 0/1 per visible phase group in phase order; it is purely presentational.
type ColumnGroup struct {
	Phase   string   `json:"phase"`
	Label   string   `json:"label"`
	Band    int      `json:"band"`
	Columns []Column `json:"columns"`
}

// ViewRow is one team passing the filter, with one cell per visible column
// in flattened group order.
type ViewRow struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	LogoRef  string `json:"logo_ref"`
	Cells    []Cell `json:"cells"`
}

// ViewModel is the complete grouped table the rendering layer consumes.
type ViewModel struct {
	Request ViewRequest   `json:"request"`
	Groups  []ColumnGroup `json:"groups"`
	Rows    []ViewRow     `json:"rows"`
}

// Columns returns the leaf columns flattened in group order, matching the
// per-row cell order.
func (vm *ViewModel) Columns() []Column {
	var cols []Column
	for _, g := range vm.Groups {
		cols = append(cols, g.Columns...)
	}
	return cols
}
