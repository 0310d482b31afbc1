package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a finished sample.
type Summary struct {
	N      int
	Mean   float64
	Stdev  float64
	Min    float64
	Max    float64
	Median float64
	P90    float64
	// CI95 is the half-width of the 95% confidence interval of the mean.
	CI95 float64
}

// Summarize computes a Summary of vals. vals is not modified.
func Summarize(vals []float64) Summary {
	if len(vals) == 0 {
		return Summary{}
	}
	var s Statistic
	for _, v := range vals {
		s.Push(v)
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return Summary{
		N:      s.Iterations(),
		Mean:   s.Mean(),
		Stdev:  s.Stdev(),
		Min:    s.Min(),
		Max:    s.Max(),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		CI95:   ZVal(95) * s.StandardError(),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("mean %.2f ± %.2f (sd %.2f), median %.1f, p90 %.1f, range %.0f-%.0f, n=%d",
		s.Mean, s.CI95, s.Stdev, s.Median, s.P90, s.Min, s.Max, s.N)
}
