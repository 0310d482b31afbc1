package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed z-value for a confidence level given in
// percent, e.g. 1.96 for 95. Levels outside (0, 100) return 0.
func ZVal(confidence float64) float64 {
	if confidence <= 0 || confidence >= 100 {
		return 0
	}
	return distuv.UnitNormal.Quantile((1 + confidence/100) / 2)
}
