package stats

import (
	"fmt"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// KruskalWallis is the rank-based alternative to one-way ANOVA. The H
// statistic is referred to a chi-square tail with k-1 degrees of
// freedom, which assumes reasonably sized groups.
func KruskalWallis(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	g, err := splitByGroup(table, roles)
	if err != nil {
		return nil, err
	}
	if err := requireGroupCount(g, analysis.TestKruskalWallis, 2, false); err != nil {
		return nil, err
	}

	var pooled []float64
	bounds := make(map[string][2]int, len(g.labels))
	for _, label := range g.labels {
		values := g.data[label]
		if len(values) < 2 {
			return nil, errors.UnsupportedInputf(
				"Kruskal-Wallis requires at least 2 observations per group; group %q has %d",
				label, len(values))
		}
		start := len(pooled)
		pooled = append(pooled, values...)
		bounds[label] = [2]int{start, len(pooled)}
	}

	n := float64(len(pooled))
	k := float64(len(g.labels))
	ranks := rank(pooled)

	h := 0.0
	for _, label := range g.labels {
		b := bounds[label]
		rankSum := 0.0
		for i := b[0]; i < b[1]; i++ {
			rankSum += ranks[i]
		}
		nj := float64(b[1] - b[0])
		h += rankSum * rankSum / nj
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	df := k - 1
	p := chiSquareTailP(h, df)

	// Epsilon squared, the rank analogue of eta squared
	epsilonSquared := 0.0
	if n > k {
		epsilonSquared = (h - k + 1) / (n - k)
	}

	summary := fmt.Sprintf("H(%.0f) = %.3f, p = %.3f %s", df, h, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestKruskalWallis,
		Statistic: map[string]float64{
			"h_statistic":        h,
			"degrees_of_freedom": df,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Epsilon Squared",
			Value: epsilonSquared,
		},
		Summary:        summary,
		Interpretation: interpretPValue(p),
		Groups:         groupDescriptives(g),
	}, nil
}
