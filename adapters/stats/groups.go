package stats

import (
	"sort"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// groupedValues holds a numeric outcome split by group label, labels sorted
type groupedValues struct {
	labels []string
	data   map[string][]float64
}

func (g groupedValues) size(label string) int {
	return len(g.data[label])
}

// splitByGroup extracts the outcome column per group. Rows missing
// either cell are dropped, matching how the source engine cleans data
// before every comparison test.
func splitByGroup(table dataset.Table, roles analysis.VariableRoles) (groupedValues, error) {
	if table.IsEmpty() {
		return groupedValues{}, errors.InvalidInput("table contains no rows")
	}
	if roles.Group == "" {
		return groupedValues{}, errors.InvalidInput("group variable is required")
	}
	if !table.HasColumn(roles.Outcome) {
		return groupedValues{}, errors.InvalidInputf("outcome variable %q is not a column", roles.Outcome)
	}
	if !table.HasColumn(roles.Group) {
		return groupedValues{}, errors.InvalidInputf("group variable %q is not a column", roles.Group)
	}

	data := table.NumericByGroup(roles.Group, roles.Outcome)
	labels := make([]string, 0, len(data))
	for label := range data {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return groupedValues{labels: labels, data: data}, nil
}

// requireGroupCount enforces a test's group-count precondition
func requireGroupCount(g groupedValues, test analysis.TestType, want int, exact bool) error {
	if exact && len(g.labels) != want {
		return errors.UnsupportedInputf("%s requires exactly %d groups, found %d",
			test.Label(), want, len(g.labels))
	}
	if !exact && len(g.labels) < want {
		return errors.UnsupportedInputf("%s requires at least %d groups, found %d",
			test.Label(), want, len(g.labels))
	}
	return nil
}

// groupDescriptives builds the per-group mean/std/n block of a result
func groupDescriptives(g groupedValues) map[string]analysis.GroupStats {
	out := make(map[string]analysis.GroupStats, len(g.labels))
	for _, label := range g.labels {
		values := g.data[label]
		out[label] = analysis.GroupStats{
			N:    len(values),
			Mean: mean(values),
			Std:  sampleStd(values),
		}
	}
	return out
}
