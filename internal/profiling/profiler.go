package profiling

import (
	"regexp"
	"strings"

	"scifig/domain/analysis"
	"scifig/domain/core"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// Cardinality thresholds for outcome type inference. Numeric columns
// with very few distinct values behave like coded categories; columns
// where nearly every value is distinct behave like identifiers.
const (
	maxCategoricalDistinct = 10
	minContinuousUniqueRatio = 0.05
	idLikeUniqueRatio        = 0.95
)

var idNamePattern = regexp.MustCompile(`(?i)(^|_)(id|uuid|guid|key)$|^(id|uuid|guid)`)

// ProfileTable inspects a row-oriented table and the caller's variable
// roles and produces the immutable DataProfile consumed by every
// downstream component.
func ProfileTable(table dataset.Table, roles analysis.VariableRoles) (*analysis.DataProfile, error) {
	if table.IsEmpty() {
		return nil, errors.InvalidInput("table contains no rows")
	}
	if roles.Outcome == "" {
		return nil, errors.InvalidInput("outcome variable is required")
	}
	if !table.HasColumn(roles.Outcome) {
		return nil, errors.InvalidInputf("outcome variable %q is not a column: %v",
			roles.Outcome, core.ErrColumnNotFound)
	}
	if roles.Group != "" && !table.HasColumn(roles.Group) {
		return nil, errors.InvalidInputf("group variable %q is not a column: %v",
			roles.Group, core.ErrColumnNotFound)
	}
	if roles.Time != "" && !table.HasColumn(roles.Time) {
		return nil, errors.InvalidInputf("time variable %q is not a column: %v",
			roles.Time, core.ErrColumnNotFound)
	}
	if roles.Event != "" && !table.HasColumn(roles.Event) {
		return nil, errors.InvalidInputf("event variable %q is not a column: %v",
			roles.Event, core.ErrColumnNotFound)
	}

	profile := &analysis.DataProfile{
		SampleSize:      table.Len(),
		OutcomeVariable: roles.Outcome,
		OutcomeType:     inferOutcomeType(table, roles.Outcome),
		GroupVariable:   roles.Group,
		TimeVariable:    roles.Time,
		EventVariable:   roles.Event,
		IsPaired:        roles.IsPaired,
	}

	if roles.Group != "" {
		labels := table.GroupLabels(roles.Group)
		sizes := make(map[string]int, len(labels))
		missing := 0
		for _, row := range table.Rows {
			label, ok := dataset.AsLabel(row[roles.Group])
			if !ok {
				missing++
				continue
			}
			sizes[label]++
		}
		// Rows with a missing group cell count under the empty label so
		// group sizes always sum to the sample size.
		if missing > 0 {
			labels = append([]string{""}, labels...)
			sizes[""] = missing
		}
		profile.GroupLabels = labels
		profile.GroupSizes = sizes
		profile.NGroups = len(labels)
	}

	return profile, nil
}

// inferOutcomeType classifies a column as continuous or categorical.
// Continuous requires every non-missing value to parse as a number and
// the column to be neither low-cardinality (coded categories) nor
// ID-like (near-all-unique identifiers).
func inferOutcomeType(table dataset.Table, column string) analysis.OutcomeType {
	labels := table.StringColumn(column)
	if len(labels) == 0 {
		return analysis.OutcomeCategorical
	}

	numeric := table.NumericColumn(column)
	if len(numeric) != len(labels) {
		// At least one non-missing value failed to parse as a number
		return analysis.OutcomeCategorical
	}

	distinct := make(map[float64]bool, len(numeric))
	allIntegers := true
	for _, v := range numeric {
		distinct[v] = true
		if v != float64(int64(v)) {
			allIntegers = false
		}
	}
	uniqueRatio := float64(len(distinct)) / float64(len(numeric))

	if len(distinct) < maxCategoricalDistinct || uniqueRatio < minContinuousUniqueRatio {
		return analysis.OutcomeCategorical
	}
	if isIDLike(column) || (allIntegers && uniqueRatio >= idLikeUniqueRatio && len(numeric) >= 20) {
		return analysis.OutcomeCategorical
	}
	return analysis.OutcomeContinuous
}

func isIDLike(column string) bool {
	return idNamePattern.MatchString(strings.TrimSpace(column))
}
