package stats

import (
	"fmt"
	"math"
	"sort"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// crosstab builds a groups x outcomes contingency table from two
// categorical columns. Rows missing either cell are dropped. Labels
// are sorted so the cell layout is deterministic.
func crosstab(table dataset.Table, roles analysis.VariableRoles) ([][]int, []string, []string, error) {
	if table.IsEmpty() {
		return nil, nil, nil, errors.InvalidInput("table contains no rows")
	}
	if roles.Group == "" {
		return nil, nil, nil, errors.InvalidInput("group variable is required")
	}
	if !table.HasColumn(roles.Outcome) || !table.HasColumn(roles.Group) {
		return nil, nil, nil, errors.InvalidInput("outcome and group variables must be columns")
	}

	counts := make(map[string]map[string]int)
	outcomeSeen := make(map[string]bool)
	for _, row := range table.Rows {
		groupLabel, ok := dataset.AsLabel(row[roles.Group])
		if !ok {
			continue
		}
		outcomeLabel, ok := dataset.AsLabel(row[roles.Outcome])
		if !ok {
			continue
		}
		if counts[groupLabel] == nil {
			counts[groupLabel] = make(map[string]int)
		}
		counts[groupLabel][outcomeLabel]++
		outcomeSeen[outcomeLabel] = true
	}

	groupNames := make([]string, 0, len(counts))
	for label := range counts {
		groupNames = append(groupNames, label)
	}
	sort.Strings(groupNames)
	outcomeNames := make([]string, 0, len(outcomeSeen))
	for label := range outcomeSeen {
		outcomeNames = append(outcomeNames, label)
	}
	sort.Strings(outcomeNames)

	cells := make([][]int, len(groupNames))
	for i, group := range groupNames {
		cells[i] = make([]int, len(outcomeNames))
		for j, outcome := range outcomeNames {
			cells[i][j] = counts[group][outcome]
		}
	}
	return cells, groupNames, outcomeNames, nil
}

// ChiSquare runs the test of independence between the group and
// outcome variables, with Cramer's V as effect size.
func ChiSquare(table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	cells, groupNames, outcomeNames, err := crosstab(table, roles)
	if err != nil {
		return nil, err
	}
	if len(groupNames) < 2 || len(outcomeNames) < 2 {
		return nil, errors.UnsupportedInputf(
			"Chi-Square requires at least a 2x2 table, found %dx%d", len(groupNames), len(outcomeNames))
	}

	rows, cols := len(cells), len(cells[0])
	rowTotals := make([]int, rows)
	colTotals := make([]int, cols)
	total := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += cells[i][j]
			colTotals[j] += cells[i][j]
			total += cells[i][j]
		}
	}
	if total == 0 {
		return nil, errors.UnsupportedInput("Chi-Square requires non-empty cells")
	}

	chiSq := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := float64(rowTotals[i]*colTotals[j]) / float64(total)
			if expected > 0 {
				observed := float64(cells[i][j])
				chiSq += (observed - expected) * (observed - expected) / expected
			}
		}
	}

	df := float64((rows - 1) * (cols - 1))
	p := chiSquareTailP(chiSq, df)

	minDim := math.Min(float64(rows-1), float64(cols-1))
	cramersV := math.Sqrt(chiSq / (float64(total) * minDim))

	summary := fmt.Sprintf("chi2(%.0f) = %.3f, p = %.3f %s", df, chiSq, p, significanceMarker(p))

	return &analysis.StatisticalResult{
		TestName: analysis.TestChiSquare,
		Statistic: map[string]float64{
			"chi_square":         chiSq,
			"degrees_of_freedom": df,
		},
		PValue: p,
		EffectSize: &analysis.EffectSize{
			Name:  "Cramer's V",
			Value: cramersV,
		},
		Summary:          summary,
		Interpretation:   interpretPValue(p),
		ContingencyTable: cells,
		GroupNames:       groupNames,
		OutcomeNames:     outcomeNames,
	}, nil
}
