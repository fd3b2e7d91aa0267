package profiling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

func continuousTwoGroupTable(n int) dataset.Table {
	var rows []dataset.Row
	for i := 0; i < n; i++ {
		label := "control"
		if i%2 == 1 {
			label = "treated"
		}
		rows = append(rows, dataset.Row{
			"group":    label,
			"response": 10.0 + float64(i)*0.37,
		})
	}
	return dataset.NewTable(rows)
}

func TestProfileTable_ContinuousTwoGroups(t *testing.T) {
	table := continuousTwoGroupTable(40)
	roles := analysis.VariableRoles{Outcome: "response", Group: "group"}

	profile, err := ProfileTable(table, roles)
	require.NoError(t, err)

	assert.Equal(t, 40, profile.SampleSize)
	assert.Equal(t, analysis.OutcomeContinuous, profile.OutcomeType)
	assert.Equal(t, 2, profile.NGroups)
	assert.Equal(t, []string{"control", "treated"}, profile.GroupLabels)
	assert.Equal(t, 20, profile.GroupSizes["control"])
	assert.Equal(t, 20, profile.GroupSizes["treated"])
}

func TestProfileTable_GroupSizesSumToSampleSize(t *testing.T) {
	table := continuousTwoGroupTable(20)
	// Two rows lose their group cell; they must still be counted
	table.Rows[3]["group"] = nil
	table.Rows[7]["group"] = ""

	profile, err := ProfileTable(table, analysis.VariableRoles{Outcome: "response", Group: "group"})
	require.NoError(t, err)

	total := 0
	for _, n := range profile.GroupSizes {
		total += n
	}
	assert.Equal(t, profile.SampleSize, total)
	assert.Equal(t, "", profile.GroupLabels[0], "missing-group bucket sorts first")
	assert.Equal(t, 2, profile.GroupSizes[""])
	assert.Equal(t, 3, profile.NGroups)
}

func TestProfileTable_NoGroupVariable(t *testing.T) {
	table := continuousTwoGroupTable(10)
	profile, err := ProfileTable(table, analysis.VariableRoles{Outcome: "response"})
	require.NoError(t, err)

	assert.Equal(t, 0, profile.NGroups)
	assert.Empty(t, profile.GroupLabels)
	assert.Empty(t, profile.GroupSizes)
}

func TestProfileTable_InputErrors(t *testing.T) {
	roles := analysis.VariableRoles{Outcome: "response", Group: "group"}

	t.Run("empty table", func(t *testing.T) {
		_, err := ProfileTable(dataset.Table{}, roles)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("missing outcome role", func(t *testing.T) {
		_, err := ProfileTable(continuousTwoGroupTable(4), analysis.VariableRoles{})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("unknown columns", func(t *testing.T) {
		for _, roles := range []analysis.VariableRoles{
			{Outcome: "nope"},
			{Outcome: "response", Group: "nope"},
			{Outcome: "response", Time: "nope"},
			{Outcome: "response", Event: "nope"},
		} {
			_, err := ProfileTable(continuousTwoGroupTable(4), roles)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		}
	})
}

func TestInferOutcomeType(t *testing.T) {
	makeTable := func(column string, values []any) dataset.Table {
		rows := make([]dataset.Row, len(values))
		for i, v := range values {
			rows[i] = dataset.Row{column: v}
		}
		return dataset.NewTable(rows)
	}

	t.Run("varied numeric is continuous", func(t *testing.T) {
		values := make([]any, 30)
		for i := range values {
			values[i] = 3.7 + float64(i)*1.31
		}
		table := makeTable("response", values)
		assert.Equal(t, analysis.OutcomeContinuous, inferOutcomeType(table, "response"))
	})

	t.Run("text labels are categorical", func(t *testing.T) {
		table := makeTable("status", []any{"mild", "severe", "mild", "moderate"})
		assert.Equal(t, analysis.OutcomeCategorical, inferOutcomeType(table, "status"))
	})

	t.Run("low-cardinality numeric codes are categorical", func(t *testing.T) {
		values := make([]any, 50)
		for i := range values {
			values[i] = i % 3
		}
		table := makeTable("grade", values)
		assert.Equal(t, analysis.OutcomeCategorical, inferOutcomeType(table, "grade"))
	})

	t.Run("id-named column is categorical", func(t *testing.T) {
		values := make([]any, 30)
		for i := range values {
			values[i] = 1000.5 + float64(i)*2.2
		}
		table := makeTable("patient_id", values)
		assert.Equal(t, analysis.OutcomeCategorical, inferOutcomeType(table, "patient_id"))
	})

	t.Run("all-unique integer sequence is categorical", func(t *testing.T) {
		values := make([]any, 40)
		for i := range values {
			values[i] = 1000 + i
		}
		table := makeTable("record", values)
		assert.Equal(t, analysis.OutcomeCategorical, inferOutcomeType(table, "record"))
	})

	t.Run("mixed text and numbers are categorical", func(t *testing.T) {
		var values []any
		for i := 0; i < 20; i++ {
			values = append(values, fmt.Sprintf("%d.5", i))
		}
		values = append(values, "unknown")
		table := makeTable("response", values)
		assert.Equal(t, analysis.OutcomeCategorical, inferOutcomeType(table, "response"))
	})
}
