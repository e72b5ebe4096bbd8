package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertTeamsFunc        func(teams []Team) error
	UpsertPhaseRecordsFunc func(records []PhaseRecord) error
	GetAllTeamsFunc        func() ([]Team, error)
	GetAllPhaseRecordsFunc func() ([]PhaseRecord, error)
	IsKnownTeamFunc        func(teamID string) bool
	TeamCountFunc          func() (int, error)
	ClearFunc              func()

	// Call records
	UpsertTeamsCalls        [][]Team
	UpsertPhaseRecordsCalls [][]PhaseRecord
	ClearCalls              int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertTeams(teams []Team) error {
	m.mu.Lock()
	m.UpsertTeamsCalls = append(m.UpsertTeamsCalls, teams)
	m.mu.Unlock()
	if m.UpsertTeamsFunc != nil {
		return m.UpsertTeamsFunc(teams)
	}
	return nil
}

func (m *MockStore) UpsertPhaseRecords(records []PhaseRecord) error {
	m.mu.Lock()
	m.UpsertPhaseRecordsCalls = append(m.UpsertPhaseRecordsCalls, records)
	m.mu.Unlock()
	if m.UpsertPhaseRecordsFunc != nil {
		return m.UpsertPhaseRecordsFunc(records)
	}
	return nil
}

func (m *MockStore) GetAllTeams() ([]Team, error) {
	if m.GetAllTeamsFunc != nil {
		return m.GetAllTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetAllPhaseRecords() ([]PhaseRecord, error) {
	if m.GetAllPhaseRecordsFunc != nil {
		return m.GetAllPhaseRecordsFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownTeam(teamID string) bool {
	if m.IsKnownTeamFunc != nil {
		return m.IsKnownTeamFunc(teamID)
	}
	return false
}

func (m *MockStore) TeamCount() (int, error) {
	if m.TeamCountFunc != nil {
		return m.TeamCountFunc()
	}
	return 0, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
