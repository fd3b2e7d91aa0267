package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scifig/domain/dataset"
)

func TestCheckNormality_SymmetricSamplePasses(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	result := CheckNormality(values, 0.05)
	assert.True(t, result.Passed)
	assert.Equal(t, "normality", result.Test)
	require.NotNil(t, result.Statistic)
	assert.Contains(t, result.Reason, "skewness")
}

func TestCheckNormality_SkewedSampleFails(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}

	result := CheckNormality(values, 0.05)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "non-normal")
}

func TestCheckNormality_TooFewPoints(t *testing.T) {
	result := CheckNormality([]float64{1, 2}, 0.05)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "at least 3")
}

func TestCheckHomogeneity_ComparableVariancesPass(t *testing.T) {
	table := twoGroupTable(
		[]float64{1, 2, 3, 4, 5},
		[]float64{11, 12, 13, 14, 15},
	)

	result := CheckHomogeneityOfVariance(table, "group", "outcome", 0.05)
	assert.True(t, result.Passed)
	require.NotNil(t, result.Statistic)
	assert.InDelta(t, 1.0, *result.Statistic, 1e-9)
}

func TestCheckHomogeneity_UnequalVariancesFail(t *testing.T) {
	table := twoGroupTable(
		[]float64{10, 10.1, 10.2, 9.9, 9.8},
		[]float64{0, 20, 40, 60, 80},
	)

	result := CheckHomogeneityOfVariance(table, "group", "outcome", 0.05)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "unequal")
}

func TestCheckHomogeneity_DegenerateGroups(t *testing.T) {
	t.Run("group too small", func(t *testing.T) {
		rows := []dataset.Row{
			{"group": "a", "outcome": 1.0},
			{"group": "b", "outcome": 2.0},
			{"group": "b", "outcome": 3.0},
		}
		result := CheckHomogeneityOfVariance(dataset.NewTable(rows), "group", "outcome", 0.05)
		assert.False(t, result.Passed)
	})

	t.Run("single group", func(t *testing.T) {
		rows := []dataset.Row{
			{"group": "a", "outcome": 1.0},
			{"group": "a", "outcome": 2.0},
		}
		result := CheckHomogeneityOfVariance(dataset.NewTable(rows), "group", "outcome", 0.05)
		assert.False(t, result.Passed)
		assert.Contains(t, result.Reason, "at least 2 groups")
	})

	t.Run("zero variance group", func(t *testing.T) {
		table := twoGroupTable([]float64{5, 5, 5}, []float64{1, 2, 3})
		result := CheckHomogeneityOfVariance(table, "group", "outcome", 0.05)
		assert.False(t, result.Passed)
		assert.Contains(t, result.Reason, "zero variance")
	})
}
