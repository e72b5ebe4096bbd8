package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	DataDir       string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
