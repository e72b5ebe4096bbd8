package league

import (
	"database/sql"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// UpsertTeams inserts or updates teams in bulk inside a single transaction.
func (s *store) UpsertTeams(teams []Team) error {
	if len(teams) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO teams (id, name, logo_ref)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			logo_ref = excluded.logo_ref;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, team := range teams {
		if _, err := stmt.Exec(team.ID, team.Name, team.LogoRef); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// UpsertPhaseRecords inserts or updates phase records in bulk. Records are
// batched into a single multi-row statement per chunk to keep reloads fast.
func (s *store) UpsertPhaseRecords(records []PhaseRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	const batchSize = 200
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		valueStrings := make([]string, 0, len(batch))
		valueArgs := make([]any, 0, len(batch)*4)
		for _, rec := range batch {
			valueStrings = append(valueStrings, "(?, ?, ?, ?)")
			valueArgs = append(valueArgs, rec.TeamID, rec.Phase, string(rec.Metric), rec.RawValue)
		}

		query := `
			INSERT INTO phase_records (team_id, phase, metric, raw_value)
			VALUES ` + strings.Join(valueStrings, ", ") + `
			ON CONFLICT(team_id, phase, metric) DO UPDATE SET
				raw_value = excluded.raw_value;
		`
		if _, err := tx.Exec(query, valueArgs...); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetAllTeams retrieves all teams sorted by name.
func (s *store) GetAllTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, logo_ref FROM teams ORDER BY name")
	if err != nil {
		log.Error("Failed to query all teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		var logoRef sql.NullString
		if err := rows.Scan(&team.ID, &team.Name, &logoRef); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		team.LogoRef = logoRef.String
		teams = append(teams, team)
	}
	return teams, nil
}

// GetAllPhaseRecords retrieves every phase record in the store.
func (s *store) GetAllPhaseRecords() ([]PhaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT team_id, phase, metric, raw_value FROM phase_records")
	if err != nil {
		log.Error("Failed to query phase records", "error", err)
		return nil, err
	}
	defer rows.Close()

	var records []PhaseRecord
	for rows.Next() {
		var rec PhaseRecord
		if err := rows.Scan(&rec.TeamID, &rec.Phase, &rec.Metric, &rec.RawValue); err != nil {
			log.Error("Failed to scan phase record row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *store) IsKnownTeam(teamID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM teams WHERE id = ?)", teamID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if team exists", "error", err, "teamID", teamID)
		return false
	}
	return exists
}

func (s *store) TeamCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	if _, err := tx.Exec("DELETE FROM phase_records"); err != nil {
		log.Error("Failed to clear phase_records table", "error", err)
		tx.Rollback()
		return
	}

	if _, err := tx.Exec("DELETE FROM teams"); err != nil {
		log.Error("Failed to clear teams table", "error", err)
		tx.Rollback()
		return
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
