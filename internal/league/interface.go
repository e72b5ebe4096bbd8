package league

// LeagueStore defines the interface for interacting with the loaded league data.
type LeagueStore interface {
	UpsertTeams(teams []Team) error
	UpsertPhaseRecords(records []PhaseRecord) error
	GetAllTeams() ([]Team, error)
	GetAllPhaseRecords() ([]PhaseRecord, error)
	IsKnownTeam(teamID string) bool
	TeamCount() (int, error)
	Clear()
}
