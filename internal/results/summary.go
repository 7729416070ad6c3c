package results

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the time-to-failure distribution a campaign estimated.
type Summary struct {
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
}

// Summarize computes summary statistics over the campaign's failure times.
// The input is not modified. An empty input yields a zero Summary.
func Summarize(times []float64) Summary {
	if len(times) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(times)
	slices.Sort(sorted)

	stddev := 0.0
	if len(sorted) > 1 {
		stddev = stat.StdDev(sorted, nil)
	}

	return Summary{
		Trials: len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: stddev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P10:    stat.Quantile(0.1, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}
