package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a no-op Metrics implementation that records call counts for tests.
type Mock struct {
	mu sync.Mutex

	LoadRunsCalls          int
	RowsSkippedTotal       int
	ViewsBuiltCalls        int
	InvalidSelectionCalls  int
	ExportsGeneratedCalls  int
	ViewBuildObservations  []float64
	SlackNotifSentCalls    int
	SlackNotifFailedCalls  int
	StartupTimeLastSeconds float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncLoadRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadRunsCalls++
}

func (m *Mock) AddRowsSkipped(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RowsSkippedTotal += count
}

func (m *Mock) IncViewsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ViewsBuiltCalls++
}

func (m *Mock) IncInvalidSelections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidSelectionCalls++
}

func (m *Mock) IncExportsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExportsGeneratedCalls++
}

func (m *Mock) ObserveViewBuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ViewBuildObservations = append(m.ViewBuildObservations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCalls++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCalls++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimeLastSeconds = duration
}
