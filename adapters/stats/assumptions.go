package stats

import (
	"fmt"
	"math"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
)

// Assumption gates. The normality check is a coarse moment-based
// screen, not a formal test: it costs precision, never correctness,
// because failing it only swaps in the non-parametric alternative.
const (
	maxAbsSkewness   = 2.0
	maxAbsKurtosis   = 2.0
	maxVarianceRatio = 4.0
)

// CheckNormality screens a sample for gross departures from normality
// using sample skewness and excess kurtosis.
func CheckNormality(values []float64, alpha float64) analysis.AssumptionResult {
	if len(values) < 3 {
		return analysis.AssumptionResult{
			Test:   string(analysis.AssumptionNormality),
			Passed: false,
			Reason: "insufficient data for normality check (need at least 3 points)",
		}
	}

	skew := sampleSkewness(values)
	kurt := sampleExcessKurtosis(values)
	passed := math.Abs(skew) < maxAbsSkewness && math.Abs(kurt) < maxAbsKurtosis

	// The combined moment statistic stands in for a formal test statistic
	statistic := math.Max(math.Abs(skew), math.Abs(kurt))

	verdict := "approximately normal"
	if !passed {
		verdict = "non-normal"
	}
	return analysis.AssumptionResult{
		Test:      string(analysis.AssumptionNormality),
		Passed:    passed,
		Statistic: &statistic,
		Reason: fmt.Sprintf("skewness=%.3f, excess kurtosis=%.3f; %s",
			skew, kurt, verdict),
	}
}

// CheckHomogeneityOfVariance compares group variances: the assumption
// holds when the largest is less than four times the smallest.
func CheckHomogeneityOfVariance(table dataset.Table, groupVar, valueVar string, alpha float64) analysis.AssumptionResult {
	groups := table.NumericByGroup(groupVar, valueVar)

	minVar := math.Inf(1)
	maxVar := 0.0
	for label, values := range groups {
		if len(values) < 2 {
			return analysis.AssumptionResult{
				Test:   string(analysis.AssumptionHomogeneity),
				Passed: false,
				Reason: fmt.Sprintf("group %q has fewer than 2 observations", label),
			}
		}
		v := sampleVariance(values)
		if v < minVar {
			minVar = v
		}
		if v > maxVar {
			maxVar = v
		}
	}
	if len(groups) < 2 {
		return analysis.AssumptionResult{
			Test:   string(analysis.AssumptionHomogeneity),
			Passed: false,
			Reason: "variance homogeneity requires at least 2 groups",
		}
	}

	if minVar == 0 {
		zero := 0.0
		return analysis.AssumptionResult{
			Test:      string(analysis.AssumptionHomogeneity),
			Passed:    false,
			Statistic: &zero,
			Reason:    "a group has zero variance",
		}
	}

	ratio := maxVar / minVar
	passed := ratio < maxVarianceRatio
	verdict := "variances comparable"
	if !passed {
		verdict = "variances unequal"
	}
	return analysis.AssumptionResult{
		Test:      string(analysis.AssumptionHomogeneity),
		Passed:    passed,
		Statistic: &ratio,
		Reason:    fmt.Sprintf("max/min variance ratio=%.3f; %s", ratio, verdict),
	}
}
