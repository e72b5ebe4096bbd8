package league

import (
	"database/sql"
	"sync"

	"github.com/futi-app/phase-explorer/internal/phases"
)

// store handles all database operations for the league data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team is immutable reference data loaded once from teams.csv.
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoRef string `json:"logo_ref"`
}

// PhaseRecord is one (team, phase, metric) raw value loaded from phases.csv.
// Count values are raw season totals; Won and Share are percentages in [0,100].
type PhaseRecord struct {
	TeamID   string        `json:"team_id"`
	Phase    string        `json:"phase"`
	Metric   phases.Metric `json:"metric"`
	RawValue float64       `json:"raw_value"`
}
