package stats

import (
	"fmt"
	"math"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// MannWhitneyU is the rank-based alternative to the independent t-test.
// The p-value uses the normal approximation of U, which is reasonable
// for moderate-to-large samples and not exact for small n.
func MannWhitneyU(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	g, err := splitByGroup(table, roles)
	if err != nil {
		return nil, err
	}
	if err := requireGroupCount(g, analysis.TestMannWhitneyU, 2, true); err != nil {
		return nil, err
	}

	a, b := g.data[g.labels[0]], g.data[g.labels[1]]
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 1 || n2 < 1 {
		return nil, errors.UnsupportedInput("Mann-Whitney U requires observations in both groups")
	}

	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	ranks := rank(pooled)

	r1 := 0.0
	for i := range a {
		r1 += ranks[i]
	}

	u1 := r1 - n1*(n1+1)/2
	u2 := n1*n2 - u1
	u := math.Min(u1, u2)

	// Normal approximation of U
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 * (n1 + n2 + 1) / 12)
	if sigma == 0 {
		return nil, errors.UnsupportedInput("Mann-Whitney U requires non-degenerate data")
	}
	z := (u - mu) / sigma
	p := normalTwoSidedP(z)

	// Rank-biserial correlation
	rankBiserial := 1 - 2*u/(n1*n2)

	summary := fmt.Sprintf("U = %.1f, z = %.3f, p = %.3f %s", u, z, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestMannWhitneyU,
		Statistic: map[string]float64{
			"u_statistic": u,
			"z_score":     z,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Rank-biserial correlation",
			Value: rankBiserial,
		},
		Summary:        summary,
		Interpretation: interpretPValue(p),
		Groups:         groupDescriptives(g),
	}, nil
}
