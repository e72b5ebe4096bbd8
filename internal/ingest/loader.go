package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/futi-app/phase-explorer/internal/league"
	"github.com/futi-app/phase-explorer/internal/metrics"
	"github.com/futi-app/phase-explorer/internal/phases"
)

// maxSkipRatio is the share of malformed data rows a file may contain before
// the whole load is rejected.
const maxSkipRatio = 0.10

// ErrMissingFile indicates a source CSV is absent or unreadable. It is fatal
// at startup.
var ErrMissingFile = errors.New("missing source file")

// Summary describes the outcome of one load run.
type Summary struct {
	Teams   int `json:"teams"`
	Records int `json:"records"`
	Skipped int `json:"skipped"`
}

// Loader reads the source CSVs into the league store.
type Loader struct {
	store   league.LeagueStore
	metrics metrics.Metrics
}

// New creates a new Loader.
func New(store league.LeagueStore, metrics metrics.Metrics) *Loader {
	return &Loader{
		store:   store,
		metrics: metrics,
	}
}

// LoadDir reads teams.csv and phases.csv from dir and upserts their contents
// into the store. A players.csv in the same directory is ignored; it is
// reserved for future use. When dryRun is set the files are parsed and
// validated but nothing is written.
func (l *Loader) LoadDir(dir string, dryRun bool) (Summary, error) {
	l.metrics.IncLoadRuns()

	teams, teamsSkipped, err := l.readTeams(filepath.Join(dir, "teams.csv"))
	if err != nil {
		return Summary{}, err
	}

	records, recordsSkipped, err := l.readPhaseRecords(filepath.Join(dir, "phases.csv"))
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Teams:   len(teams),
		Records: len(records),
		Skipped: teamsSkipped + recordsSkipped,
	}
	l.metrics.AddRowsSkipped(summary.Skipped)

	if dryRun {
		log.Info("[Dry Run] Would have upserted league data", "teams", summary.Teams, "records", summary.Records, "skipped", summary.Skipped)
		return summary, nil
	}

	if err := l.store.UpsertTeams(teams); err != nil {
		return Summary{}, fmt.Errorf("failed to save teams: %w", err)
	}
	if err := l.store.UpsertPhaseRecords(records); err != nil {
		return Summary{}, fmt.Errorf("failed to save phase records: %w", err)
	}

	log.Info("League data loaded", "teams", summary.Teams, "records", summary.Records, "skipped", summary.Skipped)
	return summary, nil
}

// readTeams parses teams.csv. Expected header columns: team_id, name,
// logo_ref. Extra columns are ignored.
func (l *Loader) readTeams(path string) ([]league.Team, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrMissingFile, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	cols, err := readHeader(r, path, "team_id", "name")
	if err != nil {
		return nil, 0, err
	}

	var teams []league.Team
	skipped := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Warn("Skipping unreadable row", "file", path, "error", err)
			skipped++
			continue
		}

		id := field(rec, cols, "team_id")
		name := field(rec, cols, "name")
		if id == "" || name == "" {
			log.Warn("Skipping malformed team row", "file", path, "row", rec)
			skipped++
			continue
		}

		teams = append(teams, league.Team{
			ID:      id,
			Name:    name,
			LogoRef: field(rec, cols, "logo_ref"),
		})
	}

	if err := checkSkipRatio(path, len(teams), skipped); err != nil {
		return nil, skipped, err
	}
	return teams, skipped, nil
}

// readPhaseRecords parses phases.csv. Expected header columns: team_id,
// phase_name, metric_name, raw_value. Rows referencing a phase or metric
// outside the canonical catalogue count as malformed.
func (l *Loader) readPhaseRecords(path string) ([]league.PhaseRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrMissingFile, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	cols, err := readHeader(r, path, "team_id", "phase_name", "metric_name", "raw_value")
	if err != nil {
		return nil, 0, err
	}

	var records []league.PhaseRecord
	skipped := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Warn("Skipping unreadable row", "file", path, "error", err)
			skipped++
			continue
		}

		teamID := field(rec, cols, "team_id")
		phase := field(rec, cols, "phase_name")
		metric := phases.Metric(field(rec, cols, "metric_name"))
		value, parseErr := strconv.ParseFloat(field(rec, cols, "raw_value"), 64)

		if teamID == "" || !phases.IsKnownPhase(phase) || !phases.IsKnownMetric(metric) || parseErr != nil {
			log.Warn("Skipping malformed phase row", "file", path, "row", rec)
			skipped++
			continue
		}

		records = append(records, league.PhaseRecord{
			TeamID:   teamID,
			Phase:    phase,
			Metric:   metric,
			RawValue: value,
		})
	}

	if err := checkSkipRatio(path, len(records), skipped); err != nil {
		return nil, skipped, err
	}
	return records, skipped, nil
}

// readHeader reads the header row and maps column names to indices,
// verifying that all required columns are present.
func readHeader(r *csv.Reader, path string, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: no header row", ErrMissingFile, path)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrMissingFile, path, name)
		}
	}
	return cols, nil
}

// checkSkipRatio rejects the load when too large a share of rows was malformed.
func checkSkipRatio(path string, kept, skipped int) error {
	total := kept + skipped
	if total == 0 || skipped == 0 {
		return nil
	}
	if ratio := float64(skipped) / float64(total); ratio > maxSkipRatio {
		return fmt.Errorf("%w: %s: %d of %d rows malformed", ErrMissingFile, path, skipped, total)
	}
	return nil
}

func field(rec []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
