package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Row is a single observation: column name -> scalar value.
// Values arrive from the ingestion layer as strings, numbers, bools or nil.
type Row map[string]any

// Table is a row-oriented dataset with consistent keys across rows.
type Table struct {
	Rows []Row `json:"rows"`
}

// NewTable wraps a slice of rows
func NewTable(rows []Row) Table {
	return Table{Rows: rows}
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.Rows)
}

// IsEmpty checks if the table has no rows
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Columns returns the sorted set of column names seen across rows
func (t Table) Columns() []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		for col := range row {
			seen[col] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// HasColumn checks whether any row carries the column
func (t Table) HasColumn(name string) bool {
	for _, row := range t.Rows {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// NumericColumn extracts the non-missing values of a column that parse as numbers
func (t Table) NumericColumn(name string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := AsFloat(row[name]); ok {
			values = append(values, v)
		}
	}
	return values
}

// StringColumn extracts the non-missing values of a column as labels
func (t Table) StringColumn(name string) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if s, ok := AsLabel(row[name]); ok {
			values = append(values, s)
		}
	}
	return values
}

// NumericByGroup splits a numeric column by the values of a grouping column.
// Rows where either cell is missing are dropped. Keys are group labels.
func (t Table) NumericByGroup(groupVar, valueVar string) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, row := range t.Rows {
		label, ok := AsLabel(row[groupVar])
		if !ok {
			continue
		}
		v, ok := AsFloat(row[valueVar])
		if !ok {
			continue
		}
		groups[label] = append(groups[label], v)
	}
	return groups
}

// GroupLabels returns the distinct non-missing labels of a column in sorted order.
// Label order carries no meaning; sorting keeps output deterministic.
func (t Table) GroupLabels(name string) []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if s, ok := AsLabel(row[name]); ok {
			seen[s] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for s := range seen {
		labels = append(labels, s)
	}
	sort.Strings(labels)
	return labels
}

// AsFloat coerces a scalar cell to float64. Missing values (nil, empty
// strings, NA markers, NaN) report ok=false.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if isMissingMarker(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsLabel coerces a scalar cell to a categorical label. Missing values
// report ok=false. Numbers keep a canonical formatting so 1 and 1.0
// land in the same category.
func AsLabel(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		if isMissingMarker(s) {
			return "", false
		}
		return s, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return fmt.Sprintf("%v", x), true
	}
}

func isMissingMarker(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}
