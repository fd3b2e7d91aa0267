package stats

import (
	"scifig/domain/analysis"
	"scifig/domain/dataset"
	"scifig/internal/errors"
)

// Execute dispatches a test variant to its calculation. The switch is
// exhaustive over analysis.TestType; an unknown variant can only reach
// here through a corrupted value, never through the registry.
func Execute(test analysis.TestType, table dataset.Table, roles analysis.VariableRoles) (*analysis.StatisticalResult, error) {
	switch test {
	case analysis.TestIndependentTTest:
		return IndependentTTest(table, roles)
	case analysis.TestMannWhitneyU:
		return MannWhitneyU(table, roles)
	case analysis.TestOneWayANOVA:
		return OneWayANOVA(table, roles)
	case analysis.TestKruskalWallis:
		return KruskalWallis(table, roles)
	case analysis.TestChiSquare:
		return ChiSquare(table, roles)
	case analysis.TestFisherExact:
		return FisherExact(table, roles)
	case analysis.TestKaplanMeier:
		return KaplanMeier(table, roles)
	default:
		return nil, errors.UnsupportedInputf("unknown test type %q", string(test))
	}
}
