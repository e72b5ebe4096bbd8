package phases

import "strings"

// GamesPlayed is the number of games in a season. Count metrics are shown
// as per-game rates, i.e. raw count divided by this value.
const GamesPlayed = 34

// Category groups phases of play for the category filter.
type Category string

const (
	CategoryOrganized  Category = "Organized possession"
	CategoryTransition Category = "Transition"
	CategoryContested  Category = "Contested"
	CategorySetPieces  Category = "Set pieces"
)

// Metric identifies one of the three values tracked per phase.
// Count is a per-game rate; Won and Share are percentages in [0,100].
type Metric string

const (
	MetricCount Metric = "count"
	MetricWon   Metric = "won"
	MetricShare Metric = "share"
)

// Phase is one entry of the canonical catalogue.
type Phase struct {
	Name     string
	Category Category
}

// Categories lists the filterable categories in display order.
var Categories = []Category{
	CategoryOrganized,
	CategoryTransition,
	CategoryContested,
	CategorySetPieces,
}

// Catalogue is the canonical ordered list of the 19 phases of play.
// The order here determines column-group order in every view and export.
var Catalogue = []Phase{
	{"buildup", CategoryOrganized},
	{"progression", CategoryOrganized},
	{"accelerated_possession", CategoryOrganized},
	{"finishing", CategoryOrganized},
	{"securing_possession", CategoryTransition},
	{"counterattack", CategoryTransition},
	{"high_transition", CategoryTransition},
	{"high_ball", CategoryContested},
	{"loose_ball", CategoryContested},
	{"corner", CategorySetPieces},
	{"corner_second_phase", CategorySetPieces},
	{"attacking_throw_in", CategorySetPieces},
	{"attacking_freekick", CategorySetPieces},
	{"penalty", CategorySetPieces},
	{"kickoff", CategorySetPieces},
	{"long_goalkick", CategorySetPieces},
	{"short_goalkick", CategorySetPieces},
	{"possession_throw_in", CategorySetPieces},
	{"possession_freekick", CategorySetPieces},
}

// Metrics lists the per-phase metrics in display order.
var Metrics = []Metric{MetricCount, MetricWon, MetricShare}

// displayNames overrides the default title-casing for a few phases.
var displayNames = map[string]string{
	"accelerated_possession": "Fast break",
	"long_goalkick":          "Goal kick (long)",
	"short_goalkick":         "Goal kick (short)",
}

var metricDisplayNames = map[Metric]string{
	MetricCount: "Count",
	MetricWon:   "Won",
	MetricShare: "Share",
}

// DisplayName converts an internal phase name to its display name,
// e.g. "buildup" -> "Buildup", "accelerated_possession" -> "Fast break".
func DisplayName(phase string) string {
	if name, ok := displayNames[phase]; ok {
		return name
	}
	name := strings.ReplaceAll(phase, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// MetricDisplayName returns the table-header label for a metric.
func MetricDisplayName(m Metric) string {
	return metricDisplayNames[m]
}

// IsKnownPhase reports whether name is part of the canonical catalogue.
func IsKnownPhase(name string) bool {
	for _, p := range Catalogue {
		if p.Name == name {
			return true
		}
	}
	return false
}

// IsKnownMetric reports whether m is one of the tracked metrics.
func IsKnownMetric(m Metric) bool {
	_, ok := metricDisplayNames[m]
	return ok
}

// IsKnownCategory reports whether c is a filterable category.
func IsKnownCategory(c Category) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// ForCategory returns the catalogue phases belonging to the given category,
// in canonical order.
func ForCategory(c Category) []Phase {
	var out []Phase
	for _, p := range Catalogue {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
