package phases_test

import (
	"testing"

	"github.com/futi-app/phase-explorer/internal/phases"
	"github.com/stretchr/testify/assert"
)

func TestCatalogueShape(t *testing.T) {
	assert.Len(t, phases.Catalogue, 19, "the canonical catalogue has 19 phases")
	assert.Len(t, phases.Categories, 4)
	assert.Len(t, phases.Metrics, 3)

	// Every phase belongs to a known category, and names are unique.
	seen := make(map[string]bool)
	for _, p := range phases.Catalogue {
		assert.True(t, phases.IsKnownCategory(p.Category), "phase %q has unknown category %q", p.Name, p.Category)
		assert.False(t, seen[p.Name], "duplicate phase %q", p.Name)
		seen[p.Name] = true
	}
}

func TestCatalogueOrderIsStable(t *testing.T) {
	assert.Equal(t, "buildup", phases.Catalogue[0].Name)
	assert.Equal(t, "securing_possession", phases.Catalogue[4].Name)
	assert.Equal(t, "high_ball", phases.Catalogue[7].Name)
	assert.Equal(t, "corner", phases.Catalogue[9].Name)
	assert.Equal(t, "possession_freekick", phases.Catalogue[18].Name)
}

func TestForCategory(t *testing.T) {
	organized := phases.ForCategory(phases.CategoryOrganized)
	assert.Len(t, organized, 4)
	assert.Equal(t, "buildup", organized[0].Name)

	contested := phases.ForCategory(phases.CategoryContested)
	assert.Len(t, contested, 2)

	setPieces := phases.ForCategory(phases.CategorySetPieces)
	assert.Len(t, setPieces, 10)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Buildup", phases.DisplayName("buildup"))
	assert.Equal(t, "High ball", phases.DisplayName("high_ball"))
	assert.Equal(t, "Fast break", phases.DisplayName("accelerated_possession"))
	assert.Equal(t, "Goal kick (long)", phases.DisplayName("long_goalkick"))
	assert.Equal(t, "Goal kick (short)", phases.DisplayName("short_goalkick"))
}

func TestMetricDisplayName(t *testing.T) {
	assert.Equal(t, "Count", phases.MetricDisplayName(phases.MetricCount))
	assert.Equal(t, "Won", phases.MetricDisplayName(phases.MetricWon))
	assert.Equal(t, "Share", phases.MetricDisplayName(phases.MetricShare))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, phases.IsKnownPhase("counterattack"))
	assert.False(t, phases.IsKnownPhase("attacking_freekick_second_phase"))
	assert.True(t, phases.IsKnownMetric(phases.MetricWon))
	assert.False(t, phases.IsKnownMetric(phases.Metric("xg")))
	assert.True(t, phases.IsKnownCategory(phases.CategorySetPieces))
	assert.False(t, phases.IsKnownCategory(phases.Category("Attacking set piece")))
}
