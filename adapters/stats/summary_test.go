package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scifig/domain/analysis"
	"scifig/internal/errors"
)

func TestSignificanceMarker(t *testing.T) {
	assert.Equal(t, "***", significanceMarker(0.0005))
	assert.Equal(t, "**", significanceMarker(0.005))
	assert.Equal(t, "*", significanceMarker(0.03))
	assert.Equal(t, "ns", significanceMarker(0.05))
	assert.Equal(t, "ns", significanceMarker(0.8))
}

func TestInterpretPValue(t *testing.T) {
	assert.Equal(t, "Highly significant (p < 0.001)", interpretPValue(0.0001))
	assert.Equal(t, "Very significant (p < 0.01)", interpretPValue(0.002))
	assert.Equal(t, "Significant (p < 0.05)", interpretPValue(0.04))
	assert.Equal(t, "Not significant (p >= 0.05)", interpretPValue(0.2))
}

func TestInterpretCohensD(t *testing.T) {
	assert.Equal(t, "negligible", interpretCohensD(0.1))
	assert.Equal(t, "small", interpretCohensD(-0.3))
	assert.Equal(t, "medium", interpretCohensD(0.6))
	assert.Equal(t, "large", interpretCohensD(-1.2))
}

func TestExecute_DispatchesEveryVariant(t *testing.T) {
	gen := twoGroupTable([]float64{1, 2, 3, 4, 5}, []float64{6, 7, 8, 9, 10})

	for _, test := range []analysis.TestType{analysis.TestIndependentTTest, analysis.TestMannWhitneyU} {
		result, err := Execute(test, gen, comparisonRoles)
		require.NoError(t, err, "test %s", test)
		assert.Equal(t, test, result.TestName)
	}
}

func TestExecute_UnknownType(t *testing.T) {
	_, err := Execute(analysis.TestType("bogus"), twoGroupTable([]float64{1}, []float64{2}), comparisonRoles)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedInput, errors.GetCode(err))
}
