package stats

import (
	"fmt"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// OneWayANOVA partitions total variance into between- and within-group
// sums of squares and reports the F-ratio with eta squared.
func OneWayANOVA(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	g, err := splitByGroup(table, roles)
	if err != nil {
		return nil, err
	}
	if err := requireGroupCount(g, analysis.TestOneWayANOVA, 2, false); err != nil {
		return nil, err
	}

	var all []float64
	for _, label := range g.labels {
		if len(g.data[label]) < 2 {
			return nil, errors.UnsupportedInputf(
				"One-Way ANOVA requires at least 2 observations per group; group %q has %d",
				label, len(g.data[label]))
		}
		all = append(all, g.data[label]...)
	}
	grandMean := mean(all)
	n := float64(len(all))
	k := float64(len(g.labels))

	ssBetween := 0.0
	ssWithin := 0.0
	for _, label := range g.labels {
		values := g.data[label]
		groupMean := mean(values)
		diff := groupMean - grandMean
		ssBetween += float64(len(values)) * diff * diff
		for _, v := range values {
			d := v - groupMean
			ssWithin += d * d
		}
	}
	ssTotal := ssBetween + ssWithin
	if ssTotal == 0 {
		return nil, errors.UnsupportedInput("One-Way ANOVA requires non-zero variance")
	}

	dfBetween := k - 1
	dfWithin := n - k
	fStat := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	p := fTailP(fStat, dfBetween, dfWithin)
	etaSquared := ssBetween / ssTotal

	summary := fmt.Sprintf("F(%.0f, %.0f) = %.3f, p = %.3f %s",
		dfBetween, dfWithin, fStat, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestOneWayANOVA,
		Statistic: map[string]float64{
			"f_statistic": fStat,
			"df_between":  dfBetween,
			"df_within":   dfWithin,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Eta Squared",
			Value: etaSquared,
		},
		Summary:        summary,
		Interpretation: interpretPValue(p),
		Groups:         groupDescriptives(g),
	}, nil
}
