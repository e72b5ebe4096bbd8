package notifier

import "github.com/futi-app/phase-explorer/internal/ingest"

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// SendLoadSummary announces the outcome of a data load run.
	SendLoadSummary(summary ingest.Summary, dryRun bool) error
}

// Noop is a Notifier that does nothing. Used when no provider is configured.
type Noop struct{}

// NewNoop creates a new no-op notifier.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) SendLoadSummary(summary ingest.Summary, dryRun bool) error {
	return nil
}
