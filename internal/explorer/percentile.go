package explorer

import "github.com/futi-app/phase-explorer/internal/phases"

// Percentile maps a team's value to its league-wide percentile in [0,100]
// using linear rank scaling: the minimum of the population maps to 0, the
// maximum to 100, and tied values share the average of their ranks. The
// population always includes the queried value.
//
// Edge cases, fixed by policy: a population of one maps to 100 (a lone team
// is trivially top of the league); a population where every value is equal
// maps to 50 for all teams.
func Percentile(value float64, population []float64) float64 {
	n := len(population)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 100
	}

	less, equal := 0, 0
	for _, v := range population {
		switch {
		case v < value:
			less++
		case v == value:
			equal++
		}
	}
	if equal == 0 {
		equal = 1
	}

	rank := float64(less) + float64(equal-1)/2
	return rank / float64(n-1) * 100
}

// metricKey identifies one distribution: a (phase, metric) pair.
type metricKey struct {
	phase  string
	metric phases.Metric
}

// percentileIndex holds, per (phase, metric), the values of every team that
// has a record for it. The index is always built from the full, unfiltered
// team population: active filters never change the percentile denominator.
type percentileIndex map[metricKey][]float64

// buildPercentileIndex collects the display-normalized values of all teams.
func buildPercentileIndex(values map[string]map[metricKey]float64) percentileIndex {
	idx := make(percentileIndex)
	for _, teamValues := range values {
		for key, v := range teamValues {
			idx[key] = append(idx[key], v)
		}
	}
	return idx
}

// rank returns the percentile of value within its (phase, metric) population.
func (idx percentileIndex) rank(phase string, metric phases.Metric, value float64) float64 {
	return Percentile(value, idx[metricKey{phase: phase, metric: metric}])
}
