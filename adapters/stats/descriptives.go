package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Thin wrappers over the stats library. The library returns errors on
// empty input; callers here always validate sizes first, so the
// zero-on-error fallback never hides a real failure.

func mean(data []float64) float64 {
	m, err := mstats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}

func sampleStd(data []float64) float64 {
	s, err := mstats.StandardDeviationSample(data)
	if err != nil {
		return 0
	}
	return s
}

func sampleVariance(data []float64) float64 {
	v, err := mstats.SampleVariance(data)
	if err != nil {
		return 0
	}
	return v
}

func median(data []float64) float64 {
	m, err := mstats.Median(data)
	if err != nil {
		return 0
	}
	return m
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient of skewness
func sampleSkewness(data []float64) float64 {
	n := float64(len(data))
	if n < 3 {
		return 0
	}
	m := mean(data)
	s := sampleStd(data)
	if s == 0 {
		return 0
	}

	sumCubed := 0.0
	for _, x := range data {
		d := (x - m) / s
		sumCubed += d * d * d
	}
	skew := sumCubed / n

	// Bias correction for sample skewness
	return skew * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleExcessKurtosis computes sample kurtosis minus 3
func sampleExcessKurtosis(data []float64) float64 {
	n := float64(len(data))
	if n < 4 {
		return 0
	}
	m := mean(data)
	s := sampleStd(data)
	if s == 0 {
		return 0
	}

	sumFourth := 0.0
	for _, x := range data {
		d := (x - m) / s
		sumFourth += d * d * d * d
	}
	return sumFourth/n - 3
}

// rank assigns 1-based ranks to the pooled values, averaging ties.
// Returns ranks aligned with the input order.
func rank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Sort indices by value
	for i := 1; i < n; i++ {
		for j := i; j > 0 && values[idx[j-1]] > values[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank across the tie run
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
