package notifier

import (
	"sync"

	"github.com/futi-app/phase-explorer/internal/ingest"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendLoadSummaryFunc func(summary ingest.Summary, dryRun bool) error

	// Call records
	SendLoadSummaryCalls []ingest.Summary
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendLoadSummary(summary ingest.Summary, dryRun bool) error {
	m.mu.Lock()
	m.SendLoadSummaryCalls = append(m.SendLoadSummaryCalls, summary)
	m.mu.Unlock()
	if m.SendLoadSummaryFunc != nil {
		return m.SendLoadSummaryFunc(summary, dryRun)
	}
	return nil
}
