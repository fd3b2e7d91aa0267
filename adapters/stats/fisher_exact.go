package stats

import (
	"fmt"
	"math"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// FisherExact tests association in a 2x2 table via the odds ratio.
// The p-value comes from a normal approximation on the log odds ratio
// with a Haldane 0.5 correction for zero cells, NOT the exact
// hypergeometric tail sum. For very small tables the exact test will
// disagree; this is a documented limitation.
func FisherExact(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	cells, groupNames, outcomeNames, err := crosstab(table, roles)
	if err != nil {
		return nil, err
	}
	if len(groupNames) != 2 || len(outcomeNames) != 2 {
		return nil, errors.UnsupportedInputf(
			"Fisher's exact test requires a 2x2 table, found %dx%d", len(groupNames), len(outcomeNames))
	}

	a := float64(cells[0][0])
	b := float64(cells[0][1])
	c := float64(cells[1][0])
	d := float64(cells[1][1])

	// Haldane correction keeps the odds ratio finite with zero cells
	corrected := a == 0 || b == 0 || c == 0 || d == 0
	if corrected {
		a += 0.5
		b += 0.5
		c += 0.5
		d += 0.5
	}

	oddsRatio := (a * d) / (b * c)
	logOR := math.Log(oddsRatio)
	seLogOR := math.Sqrt(1/a + 1/b + 1/c + 1/d)
	z := logOR / seLogOR
	p := normalTwoSidedP(z)

	summary := fmt.Sprintf("OR = %.3f, p = %.3f %s", oddsRatio, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestFisherExact,
		Statistic: map[string]float64{
			"odds_ratio": oddsRatio,
			"z_score":    z,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Odds Ratio",
			Value: oddsRatio,
		},
		Summary:          summary,
		Interpretation:   interpretPValue(p),
		ContingencyTable: cells,
		GroupNames:       groupNames,
		OutcomeNames:     outcomeNames,
	}, nil
}
